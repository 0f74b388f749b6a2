package inits

import (
	"errors"
	"fmt"
	"github.com/RahulIB5/zblog/app/server/config"
	"github.com/spf13/viper"
	"strings"
	"time"
)

func Config() (*config.Config, error) {
	v := viper.New()

	// 可选的配置文件，环境变量优先
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetDefault("LISTEN", ":1323")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("SIGN_IN_URL", "/sign-in")
	v.SetDefault("PAGE_SIZE", 3)
	v.SetDefault("TOP_ARTICLES", 3)
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("EVENTS_DRIVER", "none")
	v.SetDefault("EVENTS_TOPIC", "blog.events")
	v.SetDefault("RATE_LIMIT", 10)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	return load(v)
}

func load(v *viper.Viper) (*config.Config, error) {
	var cfg config.Config

	cfg.System.IsProd = strings.HasPrefix(strings.ToLower(v.GetString("MODE")), "p")
	cfg.System.Listen = v.GetString("LISTEN")
	cfg.System.DBDriver = strings.ToLower(v.GetString("DB_DRIVER"))
	cfg.System.RateLimit = v.GetFloat64("RATE_LIMIT")
	for _, origin := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.System.CORSOrigins = append(cfg.System.CORSOrigins, origin)
		}
	}

	// 必填项
	required := map[string]*string{
		"DB_CONN":            &cfg.System.DBConnectionString,
		"REDIS_CONN":         &cfg.System.RedisConnectionString,
		"SESSION_SECRET_KEY": &cfg.Security.SessionSecretKey,
	}
	for key, target := range required {
		if *target = v.GetString(key); *target == "" {
			return nil, fmt.Errorf("%s environment variable not set", key)
		}
	}

	cfg.Security.SignInURL = v.GetString("SIGN_IN_URL")

	if cfg.Blog.PageSize = v.GetInt("PAGE_SIZE"); cfg.Blog.PageSize <= 0 {
		return nil, fmt.Errorf("PAGE_SIZE should be a positive integer")
	}
	if cfg.Blog.TopArticles = v.GetInt("TOP_ARTICLES"); cfg.Blog.TopArticles <= 0 {
		return nil, fmt.Errorf("TOP_ARTICLES should be a positive integer")
	}
	if ttl, err := time.ParseDuration(v.GetString("CACHE_TTL")); err != nil {
		return nil, fmt.Errorf("CACHE_TTL should be a valid duration")
	} else {
		cfg.Blog.CacheTTL = ttl
	}

	if cfg.Events.Driver = strings.ToLower(v.GetString("EVENTS_DRIVER")); cfg.Events.Driver == "" {
		cfg.Events.Driver = "none"
	}
	cfg.Events.URL = v.GetString("EVENTS_URL")
	cfg.Events.Topic = v.GetString("EVENTS_TOPIC")
	if cfg.Events.Driver != "none" && cfg.Events.URL == "" {
		return nil, fmt.Errorf("EVENTS_URL environment variable not set for driver %s", cfg.Events.Driver)
	}

	return &cfg, nil
}
