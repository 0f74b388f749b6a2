package metrics

import (
	"github.com/prometheus/client_golang/prometheus/testutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAction(t *testing.T) {
	m := New()

	m.Action("article.create", ResultOK)
	m.Action("article.create", ResultOK)
	m.Action("article.delete", ResultDenied)

	if got := testutil.ToFloat64(m.actions.WithLabelValues("article.create", ResultOK)); got != 2 {
		t.Errorf("article.create ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.actions.WithLabelValues("article.delete", ResultDenied)); got != 1 {
		t.Errorf("article.delete denied = %v, want 1", got)
	}
}

func TestCacheLookup(t *testing.T) {
	m := New()

	m.CacheLookup(true)
	m.CacheLookup(false)
	m.CacheLookup(false)

	if got := testutil.ToFloat64(m.cache.WithLabelValues("miss")); got != 2 {
		t.Errorf("miss = %v, want 2", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.Action("like.toggle", ResultOK)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, `blog_actions_total{action="like.toggle",result="ok"} 1`) {
		t.Errorf("metrics output missing action counter:\n%s", body)
	}
}
