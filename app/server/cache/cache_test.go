package cache

import (
	"context"
	"errors"
	"github.com/RahulIB5/zblog/app/server/metrics"
	"github.com/RahulIB5/zblog/app/server/models"
	"github.com/RahulIB5/zblog/app/server/store"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"testing"
	"time"
)

// =============================================================================
// Mock Fetcher
// =============================================================================

type mockFetcher struct {
	FetchFunc func(ctx context.Context, search string, skip int, take int) (*store.ArticlePage, error)
	calls     int
}

func (m *mockFetcher) FetchArticlesByQuery(ctx context.Context, search string, skip int, take int) (*store.ArticlePage, error) {
	m.calls++
	return m.FetchFunc(ctx, search, skip, take)
}

// =============================================================================
// Test Helpers
// =============================================================================

func setupTestCache(t *testing.T) (*ListCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewListCache(zap.NewNop(), rdb, metrics.New(), time.Minute), mr
}

func samplePage() *store.ArticlePage {
	author := models.User{Name: "Ada", Email: "ada@example.com", ImageURL: "https://img.example.com/ada.png"}
	author.ID = uuid.New()

	article := models.Article{
		Title:    "Hello",
		Category: "General",
		Content:  "<p>hi</p>",
		AuthorID: author.ID,
		Author:   author,
	}
	article.ID = uuid.New()

	return &store.ArticlePage{
		Articles: []models.Article{article},
		Total:    7,
	}
}

// =============================================================================
// ListCache Tests
// =============================================================================

func TestFetchArticlesByQuery_CachesResult(t *testing.T) {
	lc, _ := setupTestCache(t)
	ctx := context.Background()
	want := samplePage()
	src := &mockFetcher{
		FetchFunc: func(context.Context, string, int, int) (*store.ArticlePage, error) {
			return want, nil
		},
	}

	for i := 0; i < 3; i++ {
		page, err := lc.FetchArticlesByQuery(ctx, src, "hello", 0, 3)
		if err != nil {
			t.Fatalf("FetchArticlesByQuery() error = %v", err)
		}
		if page.Total != 7 || len(page.Articles) != 1 {
			t.Fatalf("page = %+v", page)
		}
		got := page.Articles[0]
		if got.ID != want.Articles[0].ID || got.Title != "Hello" {
			t.Errorf("article = (%s, %q), want (%s, Hello)", got.ID, got.Title, want.Articles[0].ID)
		}
		if got.Author.Name != "Ada" || got.AuthorID != want.Articles[0].AuthorID {
			t.Errorf("author not restored from cache: %+v", got.Author)
		}
	}

	if src.calls != 1 {
		t.Errorf("source calls = %d, want 1", src.calls)
	}
}

func TestFetchArticlesByQuery_KeyedBySearchAndPaging(t *testing.T) {
	lc, _ := setupTestCache(t)
	ctx := context.Background()
	src := &mockFetcher{
		FetchFunc: func(context.Context, string, int, int) (*store.ArticlePage, error) {
			return samplePage(), nil
		},
	}

	calls := []struct {
		search     string
		skip, take int
	}{
		{"go", 0, 3},
		{"  go ", 0, 3}, // 与上一条等价
		{"go", 3, 3},
		{"rust", 0, 3},
		{"go", 0, 5},
	}
	for _, c := range calls {
		if _, err := lc.FetchArticlesByQuery(ctx, src, c.search, c.skip, c.take); err != nil {
			t.Fatalf("FetchArticlesByQuery() error = %v", err)
		}
	}

	if src.calls != 4 {
		t.Errorf("source calls = %d, want 4", src.calls)
	}
}

func TestInvalidate(t *testing.T) {
	lc, _ := setupTestCache(t)
	ctx := context.Background()
	src := &mockFetcher{
		FetchFunc: func(context.Context, string, int, int) (*store.ArticlePage, error) {
			return samplePage(), nil
		},
	}

	if _, err := lc.FetchArticlesByQuery(ctx, src, "", 0, 3); err != nil {
		t.Fatalf("FetchArticlesByQuery() error = %v", err)
	}
	lc.Invalidate(ctx)
	if _, err := lc.FetchArticlesByQuery(ctx, src, "", 0, 3); err != nil {
		t.Fatalf("FetchArticlesByQuery() error = %v", err)
	}

	if src.calls != 2 {
		t.Errorf("source calls = %d, want 2 after invalidation", src.calls)
	}
}

func TestFetchArticlesByQuery_RedisDown(t *testing.T) {
	lc, mr := setupTestCache(t)
	mr.Close()
	src := &mockFetcher{
		FetchFunc: func(context.Context, string, int, int) (*store.ArticlePage, error) {
			return samplePage(), nil
		},
	}

	page, err := lc.FetchArticlesByQuery(context.Background(), src, "", 0, 3)
	if err != nil {
		t.Fatalf("FetchArticlesByQuery() error = %v", err)
	}
	if page.Total != 7 {
		t.Errorf("Total = %d, want 7", page.Total)
	}
	if src.calls != 1 {
		t.Errorf("source calls = %d, want 1", src.calls)
	}
}

func TestFetchArticlesByQuery_SourceError(t *testing.T) {
	lc, mr := setupTestCache(t)
	srcErr := errors.New("db down")
	src := &mockFetcher{
		FetchFunc: func(context.Context, string, int, int) (*store.ArticlePage, error) {
			return nil, srcErr
		},
	}

	if _, err := lc.FetchArticlesByQuery(context.Background(), src, "", 0, 3); !errors.Is(err, srcErr) {
		t.Errorf("FetchArticlesByQuery() error = %v, want %v", err, srcErr)
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Errorf("nothing should be cached on error, got keys %v", keys)
	}
}

func TestFetchArticlesByQuery_CorruptEntryIsDropped(t *testing.T) {
	lc, mr := setupTestCache(t)
	src := &mockFetcher{
		FetchFunc: func(context.Context, string, int, int) (*store.ArticlePage, error) {
			return samplePage(), nil
		},
	}

	key := lc.key(0, "", 0, 3)
	if err := mr.Set(key, "not json"); err != nil {
		t.Fatalf("mr.Set() error = %v", err)
	}

	page, err := lc.FetchArticlesByQuery(context.Background(), src, "", 0, 3)
	if err != nil {
		t.Fatalf("FetchArticlesByQuery() error = %v", err)
	}
	if page.Total != 7 || src.calls != 1 {
		t.Errorf("should fall back to source, got total %d calls %d", page.Total, src.calls)
	}
}
