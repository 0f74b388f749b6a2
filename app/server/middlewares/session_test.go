package middlewares

import (
	"context"
	"github.com/RahulIB5/zblog/app/server/actions"
	"github.com/RahulIB5/zblog/app/server/constants"
	"github.com/RahulIB5/zblog/app/server/events"
	"github.com/RahulIB5/zblog/app/server/jwt"
	"github.com/RahulIB5/zblog/app/server/metrics"
	"github.com/RahulIB5/zblog/app/server/models"
	"github.com/RahulIB5/zblog/app/server/store"
	"github.com/RahulIB5/zblog/app/server/store/storetest"
	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// =============================================================================
// Test Helpers
// =============================================================================

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context) {}

type sessionEnv struct {
	e     *echo.Echo
	j     *jwt.JWT
	store *store.Store
	mr    *miniredis.Miniredis
	seen  *models.User
}

func setupSessionEnv(t *testing.T) *sessionEnv {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	j, err := jwt.New("test-session-secret")
	if err != nil {
		t.Fatalf("jwt.New() error = %v", err)
	}

	s := store.New(storetest.New(t))
	act := actions.New(zap.NewNop(), s, noopInvalidator{}, events.Noop{}, metrics.New(), actions.NewValidator())

	env := &sessionEnv{e: echo.New(), j: j, store: s, mr: mr}
	env.e.Use(Session(j, act, rdb, zap.NewNop()))
	env.e.GET("/whoami", func(c echo.Context) error {
		env.seen = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	})

	return env
}

func (env *sessionEnv) token(t *testing.T, externalID string, ttl time.Duration) string {
	t.Helper()
	token, err := env.j.SignSession(&jwt.Session{
		ExternalID: externalID,
		Name:       "Ada",
		Email:      "ada@example.com",
		Expires:    time.Now().Add(ttl).Unix(),
	})
	if err != nil {
		t.Fatalf("SignSession() error = %v", err)
	}
	return token
}

func (env *sessionEnv) do(req *http.Request) *httptest.ResponseRecorder {
	env.seen = nil
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

// =============================================================================
// Session Tests
// =============================================================================

func TestSession_Anonymous(t *testing.T) {
	env := setupSessionEnv(t)

	tests := []struct {
		name   string
		header string
	}{
		{"no token", ""},
		{"garbage bearer", "Bearer not-a-token"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"expired", "Bearer " + env.token(t, "ext_1", -time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := env.do(req)
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
			if env.seen != nil {
				t.Errorf("CurrentUser() = %+v, want nil", env.seen)
			}
		})
	}

	if count, _ := env.store.CountUsers(context.Background()); count != 0 {
		t.Errorf("CountUsers() = %d, want 0", count)
	}
}

func TestSession_BearerProvisionsUserOnce(t *testing.T) {
	env := setupSessionEnv(t)
	token := env.token(t, "ext_1", time.Hour)

	var ids []string
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := env.do(req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if env.seen == nil {
			t.Fatal("CurrentUser() = nil, want user")
		}
		if env.seen.ExternalID != "ext_1" || env.seen.Name != "Ada" {
			t.Errorf("CurrentUser() = %+v", env.seen)
		}
		ids = append(ids, env.seen.ID.String())
	}

	if ids[0] != ids[1] {
		t.Errorf("user ids differ between requests: %v", ids)
	}
	if count, _ := env.store.CountUsers(context.Background()); count != 1 {
		t.Errorf("CountUsers() = %d, want 1", count)
	}
	if !env.mr.Exists("blog:user:session:ext_1") {
		t.Error("session user should be cached")
	}
}

func TestSession_Cookie(t *testing.T) {
	env := setupSessionEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: constants.AuthTokenCookie, Value: env.token(t, "ext_cookie", time.Hour)})

	env.do(req)
	if env.seen == nil || env.seen.ExternalID != "ext_cookie" {
		t.Errorf("CurrentUser() = %+v, want ext_cookie", env.seen)
	}
}

func TestSession_CorruptCacheFallsBackToStore(t *testing.T) {
	env := setupSessionEnv(t)
	if err := env.mr.Set("blog:user:session:ext_1", "{broken"); err != nil {
		t.Fatalf("mr.Set() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+env.token(t, "ext_1", time.Hour))

	env.do(req)
	if env.seen == nil || env.seen.ExternalID != "ext_1" {
		t.Errorf("CurrentUser() = %+v, want ext_1", env.seen)
	}
}
