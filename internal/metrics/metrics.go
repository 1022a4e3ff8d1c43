// Package metrics holds the Prometheus collectors for the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "holidayagent"

// Collectors owns a private registry so tests can build as many as they like.
// It satisfies calendarific.Observer.
type Collectors struct {
	reg *prometheus.Registry

	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	upstream    *prometheus.CounterVec
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	toolCalls   *prometheus.CounterVec
}

func New() *Collectors {
	c := &Collectors{
		reg: prometheus.NewRegistry(),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Holiday lookups served from the cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Holiday lookups that went to the provider.",
		}),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calendarific_requests_total",
			Help:      "Provider requests by HTTP status code.",
		}, []string{"code"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Tool invocations by tool and outcome.",
		}, []string{"tool", "outcome"}),
	}
	c.reg.MustRegister(
		c.cacheHits, c.cacheMisses, c.upstream, c.requests, c.duration, c.toolCalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collectors) CacheHit()  { c.cacheHits.Inc() }
func (c *Collectors) CacheMiss() { c.cacheMisses.Inc() }

// Upstream records one provider response; status 0 means the request never
// got a response.
func (c *Collectors) Upstream(status int) {
	c.upstream.WithLabelValues(strconv.Itoa(status)).Inc()
}

func (c *Collectors) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ToolCall counts a tool invocation. Outcome is "ok", "invalid" or "error".
func (c *Collectors) ToolCall(tool, outcome string) {
	c.toolCalls.WithLabelValues(tool, outcome).Inc()
}

func (c *Collectors) Registry() *prometheus.Registry { return c.reg }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{Registry: c.reg})
}
