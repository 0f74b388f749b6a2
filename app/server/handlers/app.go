package handlers

import (
	"github.com/RahulIB5/zblog/app/server/actions"
	"github.com/RahulIB5/zblog/app/server/cache"
	"github.com/RahulIB5/zblog/app/server/config"
	"github.com/RahulIB5/zblog/app/server/store"
	"go.uber.org/zap"
)

type App struct {
	l     *zap.Logger      // 日志
	store *store.Store     // 数据库
	cache *cache.ListCache // 文章列表缓存
	act   *actions.Actions // 写操作
	cfg   *config.Config   // 配置

	pageSize    int
	topArticles int
}

func NewApp(l *zap.Logger, s *store.Store, lc *cache.ListCache, act *actions.Actions, cfg *config.Config) *App {
	return &App{
		l:     l,
		store: s,
		cache: lc,
		act:   act,
		cfg:   cfg,

		pageSize:    cfg.Blog.PageSize,
		topArticles: cfg.Blog.TopArticles,
	}
}
