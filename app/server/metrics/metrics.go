// Package metrics 统计各类操作的执行结果
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultDenied  = "denied"
	ResultMissing = "not_found"
	ResultError   = "error"
)

type Metrics struct {
	reg     *prometheus.Registry
	actions *prometheus.CounterVec
	cache   *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		reg: reg,
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blog",
			Name:      "actions_total",
			Help:      "Mutating actions by name and result.",
		}, []string{"action", "result"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blog",
			Name:      "listing_cache_total",
			Help:      "Article listing lookups by cache outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.actions, m.cache)

	return m
}

func (m *Metrics) Action(action string, result string) {
	m.actions.WithLabelValues(action, result).Inc()
}

// CacheLookup 记录列表缓存命中或未命中
func (m *Metrics) CacheLookup(hit bool) {
	if hit {
		m.cache.WithLabelValues("hit").Inc()
	} else {
		m.cache.WithLabelValues("miss").Inc()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
