package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/RahulIB5/zblog/app/server/actions"
	"github.com/RahulIB5/zblog/app/server/apidocs"
	"github.com/RahulIB5/zblog/app/server/cache"
	"github.com/RahulIB5/zblog/app/server/handlers"
	"github.com/RahulIB5/zblog/app/server/inits"
	"github.com/RahulIB5/zblog/app/server/jwt"
	"github.com/RahulIB5/zblog/app/server/metrics"
	"github.com/RahulIB5/zblog/app/server/middlewares"
	"github.com/RahulIB5/zblog/app/server/store"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer func() { _ = l.Sync() }()

	l.Debug("logger initialized")

	// 初始化数据库连接
	db, err := inits.DB(cfg.System.DBDriver, cfg.System.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 初始化 redis 连接
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	// 初始化事件投递
	publisher, err := inits.Events(cfg, l)
	if err != nil {
		l.Fatal("error initializing events publisher", zap.Error(err))
	}

	// 初始化 JWT
	j, err := jwt.New(cfg.Security.SessionSecretKey)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// 组装各层
	m := metrics.New()
	s := store.New(db)
	lc := cache.NewListCache(l, rdb, m, cfg.Blog.CacheTTL)
	validate := actions.NewValidator()
	act := actions.New(l, s, lc, publisher, m, validate)
	handlerApp := handlers.NewApp(l, s, lc, act, cfg)

	// 准备 echo 服务
	e := echo.New()
	e.HideBanner = true
	e.Validator = validate
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("method", v.Method),
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.System.CORSOrigins,
		AllowCredentials: true,
	}))

	// 绑定 echo 服务
	handlerApp.Register(e,
		middlewares.Session(j, act, rdb, l),
		middlewares.RateLimit(cfg.System.RateLimit),
	)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	// 添加 API 文档
	if !cfg.System.IsProd {
		if doc, err := apidocs.Load(context.Background()); err != nil {
			l.Error("error initializing openapi document", zap.Error(err))
		} else if docs, err := apidocs.Doc("/api", doc); err != nil {
			l.Error("error initializing api docs", zap.Error(err))
		} else {
			e.Pre(docs)
		}
	}

	// 等待退出信号或服务异常退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	serveErr := serve(e, cfg.System.Listen, quit)
	if serveErr != nil {
		l.Error("server stopped unexpectedly", zap.Error(serveErr))
	} else {
		l.Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		l.Error("failed to shut down server", zap.Error(err))
	}
	if err := publisher.Close(); err != nil {
		l.Error("failed to close events publisher", zap.Error(err))
	}
	if err := rdb.Close(); err != nil {
		l.Error("failed to close redis", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		if err = sqlDB.Close(); err != nil {
			l.Error("failed to close database", zap.Error(err))
		}
	}

	if serveErr != nil {
		_ = l.Sync()
		os.Exit(1)
	}
}

// serve 在后台启动 echo ，阻塞到收到退出信号（返回 nil ）或服务启动失败（返回错误）
func serve(e *echo.Echo, listen string, quit <-chan os.Signal) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-quit:
		return nil
	}
}
