package inits

import (
	"fmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func Logger(debugMode bool) (*zap.Logger, error) {
	var zcfg zap.Config
	if debugMode {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zcfg = zap.NewProductionConfig()
	}

	l, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	// 第三方库通过标准 log 输出的内容也交给 zap
	zap.RedirectStdLog(l)

	return l.Named("zblog"), nil
}
