// Package cache 缓存文章列表查询结果。
// 每次文章变更都会递增列表代数，旧代数下的缓存自然失效，等待过期即可
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/RahulIB5/zblog/app/server/constants"
	"github.com/RahulIB5/zblog/app/server/metrics"
	"github.com/RahulIB5/zblog/app/server/models"
	"github.com/RahulIB5/zblog/app/server/store"
	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"strings"
	"time"
)

// ArticleFetcher 是实际执行查询的一方，通常为 *store.Store
type ArticleFetcher interface {
	FetchArticlesByQuery(ctx context.Context, search string, skip int, take int) (*store.ArticlePage, error)
}

// entry 是缓存中的列表结构，作者信息需要随文章一起保存
type entry struct {
	Articles []cachedArticle `json:"articles"`
	Total    int64           `json:"total"`
}

type cachedArticle struct {
	models.Article
	Author models.User `json:"author"`
}

func toEntry(page *store.ArticlePage) *entry {
	e := &entry{
		Articles: make([]cachedArticle, 0, len(page.Articles)),
		Total:    page.Total,
	}
	for _, a := range page.Articles {
		e.Articles = append(e.Articles, cachedArticle{Article: a, Author: a.Author})
	}
	return e
}

func (e *entry) page() *store.ArticlePage {
	page := &store.ArticlePage{
		Articles: make([]models.Article, 0, len(e.Articles)),
		Total:    e.Total,
	}
	for _, ca := range e.Articles {
		a := ca.Article
		a.Author = ca.Author
		a.AuthorID = ca.Author.ID
		page.Articles = append(page.Articles, a)
	}
	return page
}

type ListCache struct {
	l   *zap.Logger
	rdb *redis.Client
	m   *metrics.Metrics
	ttl time.Duration
}

func NewListCache(l *zap.Logger, rdb *redis.Client, m *metrics.Metrics, ttl time.Duration) *ListCache {
	return &ListCache{
		l:   l,
		rdb: rdb,
		m:   m,
		ttl: ttl,
	}
}

func (lc *ListCache) generation(ctx context.Context) (int64, error) {
	gen, err := lc.rdb.Get(ctx, constants.CacheKeyArticleListGeneration).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (lc *ListCache) key(gen int64, search string, skip int, take int) string {
	return fmt.Sprintf(constants.CacheKeyArticleList, gen, xxhash.Sum64String(strings.TrimSpace(search)), skip, take)
}

// FetchArticlesByQuery 先查缓存，未命中时回源并写入缓存。
// Redis 出错时直接回源
func (lc *ListCache) FetchArticlesByQuery(ctx context.Context, src ArticleFetcher, search string, skip int, take int) (*store.ArticlePage, error) {
	gen, err := lc.generation(ctx)
	if err != nil {
		lc.l.Error("failed to get article list generation", zap.Error(err))
		lc.m.CacheLookup(false)
		return src.FetchArticlesByQuery(ctx, search, skip, take)
	}

	cacheKey := lc.key(gen, search, skip, take)

	// 查询缓存
	if cacheBytes, err := lc.rdb.Get(ctx, cacheKey).Bytes(); err != nil {
		if !errors.Is(err, redis.Nil) {
			lc.l.Error("failed to query cache for article list", zap.String("key", cacheKey), zap.Error(err))
		}
	} else {
		var cached entry
		if err = json.Unmarshal(cacheBytes, &cached); err != nil {
			lc.l.Error("failed to unmarshal article list", zap.String("key", cacheKey), zap.Error(err))
			// 可能是无效的缓存，清理掉
			lc.rdb.Del(ctx, cacheKey)
		} else {
			lc.m.CacheLookup(true)
			return cached.page(), nil
		}
	}
	lc.m.CacheLookup(false)

	page, err := src.FetchArticlesByQuery(ctx, search, skip, take)
	if err != nil {
		return nil, err
	}

	if cacheBytes, err := json.Marshal(toEntry(page)); err != nil {
		lc.l.Error("failed to marshal article list", zap.String("key", cacheKey), zap.Error(err))
	} else if err = lc.rdb.Set(ctx, cacheKey, cacheBytes, lc.ttl).Err(); err != nil {
		lc.l.Error("failed to cache article list", zap.String("key", cacheKey), zap.Error(err))
	}

	return page, nil
}

// Invalidate 使所有已缓存的列表失效
func (lc *ListCache) Invalidate(ctx context.Context) {
	if err := lc.rdb.Incr(ctx, constants.CacheKeyArticleListGeneration).Err(); err != nil {
		lc.l.Error("failed to bump article list generation", zap.Error(err))
	}
}
