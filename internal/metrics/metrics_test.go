package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheAndUpstream(t *testing.T) {
	c := New()
	c.CacheHit()
	c.CacheHit()
	c.CacheMiss()
	c.Upstream(200)
	c.Upstream(200)
	c.Upstream(500)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.cacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cacheMisses))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.upstream.WithLabelValues("200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.upstream.WithLabelValues("500")))
}

func TestObserveHTTP(t *testing.T) {
	c := New()
	c.ObserveHTTP("/a2a/agent/{agentID}", "POST", 200, 20*time.Millisecond)
	c.ObserveHTTP("", "GET", 404, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("/a2a/agent/{agentID}", "POST", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("unmatched", "GET", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.duration))
}

func TestHandlerExposesCollectors(t *testing.T) {
	c := New()
	c.ToolCall("search-holidays", "ok")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `holidayagent_tool_calls_total{outcome="ok",tool="search-holidays"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
