package inits

import (
	"fmt"
	"github.com/RahulIB5/zblog/app/server/config"
	"github.com/RahulIB5/zblog/app/server/events"
	"go.uber.org/zap"
	"strings"
)

func Events(cfg *config.Config, l *zap.Logger) (events.Publisher, error) {
	switch cfg.Events.Driver {
	case "none", "":
		l.Info("events driver not configured, activity events will be dropped")
		return events.Noop{}, nil
	case "rabbitmq":
		p, err := events.NewRabbitMQ(cfg.Events.URL, cfg.Events.Topic)
		if err != nil {
			return nil, fmt.Errorf("init rabbitmq publisher: %w", err)
		}
		return p, nil
	case "kafka":
		return events.NewKafka(strings.Split(cfg.Events.URL, ","), cfg.Events.Topic), nil
	default:
		return nil, fmt.Errorf("unsupported events driver: %s", cfg.Events.Driver)
	}
}
