package calendarific_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briangreenhill/holidayagent/cache"
	"github.com/briangreenhill/holidayagent/pkg/calendarific"
	"github.com/briangreenhill/holidayagent/pkg/calendarific/calendarifictest"
)

func newCache(t *testing.T) *cache.MemoryCache {
	t.Helper()
	c, err := cache.NewMemory(cache.DefaultSize, cache.DefaultTTL)
	require.NoError(t, err)
	return c
}

func TestHolidaysFetchesAndCaches(t *testing.T) {
	srv := calendarifictest.NewServer(t)
	client := srv.Client(calendarific.WithCache(newCache(t)))
	ctx := context.Background()

	p := calendarific.Params{Country: "ng", Year: 2025}
	first, err := client.Holidays(ctx, p)
	require.NoError(t, err)
	assert.Len(t, first.Response.Holidays, 5)
	for _, h := range first.Response.Holidays {
		assert.Equal(t, "Nigeria", h.Country.Name)
		assert.Equal(t, "NG", h.Country.Code())
	}
	assert.Equal(t, "NG", srv.LastQuery()["country"])
	assert.Equal(t, "2025", srv.LastQuery()["year"])

	second, err := client.Holidays(ctx, calendarific.Params{Country: "NG", Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, srv.Requests(), "second call should be served from cache")
}

func TestHolidaysOptionalParamsOmitted(t *testing.T) {
	srv := calendarifictest.NewServer(t)
	client := srv.Client()

	_, err := client.Holidays(context.Background(), calendarific.Params{Country: "US", Year: 2025})
	require.NoError(t, err)

	q := srv.LastQuery()
	assert.NotContains(t, q, "month")
	assert.NotContains(t, q, "day")
	assert.NotContains(t, q, "type")
	assert.Equal(t, calendarifictest.APIKey, q["api_key"])
}

func TestHolidaysMissingKey(t *testing.T) {
	srv := calendarifictest.NewServer(t)
	client := calendarific.New("", calendarific.WithBaseURL(srv.URL))

	_, err := client.Holidays(context.Background(), calendarific.Params{Country: "US", Year: 2025})
	var cfgErr *calendarific.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, calendarific.APIKeyEnv, cfgErr.Setting)
	assert.Contains(t, err.Error(), "CALENDARIFIC_API_KEY")
	assert.Equal(t, 0, srv.Requests())
}

func TestHolidaysCacheHitWithoutKey(t *testing.T) {
	store := newCache(t)
	srv := calendarifictest.NewServer(t)
	p := calendarific.Params{Country: "US", Year: 2025}

	_, err := srv.Client(calendarific.WithCache(store)).Holidays(context.Background(), p)
	require.NoError(t, err)

	keyless := calendarific.New("", calendarific.WithBaseURL(srv.URL), calendarific.WithCache(store))
	resp, err := keyless.Holidays(context.Background(), p)
	require.NoError(t, err)
	assert.Len(t, resp.Response.Holidays, 4)
}

func TestHolidaysTransportError(t *testing.T) {
	srv := calendarifictest.NewServer(t)
	srv.FailCountry("FR", http.StatusServiceUnavailable)
	store := newCache(t)
	client := srv.Client(calendarific.WithCache(store))

	_, err := client.Holidays(context.Background(), calendarific.Params{Country: "FR", Year: 2025})
	var tErr *calendarific.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, http.StatusServiceUnavailable, tErr.StatusCode)
	assert.Contains(t, tErr.Body, "upstream failure")
	assert.Equal(t, 0, store.Len())
}

func TestHolidaysProviderErrorNotCached(t *testing.T) {
	srv := calendarifictest.NewServer(t)
	srv.ProviderErrorFor("DE", 429)
	store := newCache(t)
	client := srv.Client(calendarific.WithCache(store))
	p := calendarific.Params{Country: "DE", Year: 2025}

	for i := 0; i < 2; i++ {
		_, err := client.Holidays(context.Background(), p)
		var pErr *calendarific.ProviderError
		require.ErrorAs(t, err, &pErr)
		assert.Equal(t, 429, pErr.Code)
		assert.Equal(t, "provider says no", pErr.Detail)
	}
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 2, srv.Requests())
}

func TestHolidaysProviderErrorCachedWhenEnabled(t *testing.T) {
	srv := calendarifictest.NewServer(t)
	srv.ProviderErrorFor("DE", 429)
	store := newCache(t)
	client := srv.Client(calendarific.WithCache(store), calendarific.WithCacheProviderErrors(true))
	p := calendarific.Params{Country: "DE", Year: 2025}

	_, err := client.Holidays(context.Background(), p)
	require.Error(t, err)
	assert.Equal(t, 1, store.Len())

	// replayed from cache without re-checking meta.code
	resp, err := client.Holidays(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 429, resp.Meta.Code)
	assert.Empty(t, resp.Response.Holidays)
	assert.Equal(t, 1, srv.Requests())
}

func TestHolidaysEmptyArrayResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"meta":{"code":200},"response":[]}`))
	}))
	defer srv.Close()

	client := calendarific.New("k", calendarific.WithBaseURL(srv.URL))
	resp, err := client.Holidays(context.Background(), calendarific.Params{Country: "AQ", Year: 2025})
	require.NoError(t, err)
	assert.Empty(t, resp.Response.Holidays)
}

func TestHolidaysMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := calendarific.New("k", calendarific.WithBaseURL(srv.URL))
	_, err := client.Holidays(context.Background(), calendarific.Params{Year: 2025})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestHolidaysCollapsesConcurrentMisses(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"meta":{"code":200},"response":{"holidays":[]}}`))
	}))
	defer srv.Close()

	client := calendarific.New("k", calendarific.WithBaseURL(srv.URL))
	p := calendarific.Params{Country: "US", Year: 2025}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Holidays(context.Background(), p)
			assert.NoError(t, err)
		}()
	}
	// let the callers pile up on the in-flight request
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
}

func TestHolidaysSharedFetchOutlivesFirstCaller(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(150 * time.Millisecond)
		_, _ = w.Write([]byte(`{"meta":{"code":200},"response":{"holidays":[]}}`))
	}))
	defer srv.Close()

	client := calendarific.New("k", calendarific.WithBaseURL(srv.URL))
	p := calendarific.Params{Country: "NG", Year: 2025}

	impatient, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	var wg sync.WaitGroup
	var firstErr, secondErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, firstErr = client.Holidays(impatient, p)
	}()
	go func() {
		defer wg.Done()
		time.Sleep(10 * time.Millisecond)
		_, secondErr = client.Holidays(context.Background(), p)
	}()
	wg.Wait()

	assert.True(t, errors.Is(firstErr, context.DeadlineExceeded))
	assert.NoError(t, secondErr, "a caller with a live context gets the shared result")
}

func TestHolidaysNetworkErrorHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, _, err := w.(http.Hijacker).Hijack()
		if err == nil {
			_ = conn.Close()
		}
	}))
	defer srv.Close()

	client := calendarific.New("SECRET-KEY-123", calendarific.WithBaseURL(srv.URL))
	_, err := client.Holidays(context.Background(), calendarific.Params{Country: "NG", Year: 2025})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET-KEY-123")
	assert.Contains(t, err.Error(), "api_key=REDACTED")

	var ue *url.Error
	assert.True(t, errors.As(err, &ue), "transport cause stays inspectable")
}

func TestHolidaysContextCanceled(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-done:
		}
	}))
	defer srv.Close()
	defer close(done)

	client := calendarific.New("k", calendarific.WithBaseURL(srv.URL))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Holidays(ctx, calendarific.Params{Year: 2025})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

type countingObserver struct {
	hits, misses, upstream int
}

func (o *countingObserver) CacheHit()    { o.hits++ }
func (o *countingObserver) CacheMiss()   { o.misses++ }
func (o *countingObserver) Upstream(int) { o.upstream++ }

func TestHolidaysObserver(t *testing.T) {
	srv := calendarifictest.NewServer(t)
	obs := &countingObserver{}
	client := srv.Client(calendarific.WithCache(newCache(t)), calendarific.WithObserver(obs))
	p := calendarific.Params{Country: "GB", Year: 2025}

	_, err := client.Holidays(context.Background(), p)
	require.NoError(t, err)
	_, err = client.Holidays(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, 1, obs.hits)
	assert.Equal(t, 1, obs.misses)
	assert.Equal(t, 1, obs.upstream)
}

func TestParamsCacheKey(t *testing.T) {
	tests := []struct {
		name string
		p    calendarific.Params
		want string
	}{
		{"country and year", calendarific.Params{Country: "ng", Year: 2025}, "/holidays?country=NG&year=2025"},
		{"with month", calendarific.Params{Country: "NG", Year: 2025, Month: 12}, "/holidays?country=NG&month=12&year=2025"},
		{"all", calendarific.Params{Country: "US", Year: 2025, Month: 7, Day: 4, Type: "national"}, "/holidays?country=US&day=4&month=7&type=national&year=2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.CacheKey())
		})
	}
}

func TestDateHelpers(t *testing.T) {
	d := calendarific.Date{ISO: "2025-12-25T00:00:00+01:00", DateTime: calendarific.DateTime{Year: 2025, Month: 12, Day: 25}}
	assert.Equal(t, "2025-12-25", d.ISODate())
	assert.True(t, d.Consistent())

	d.DateTime.Day = 24
	assert.False(t, d.Consistent())

	empty := calendarific.Date{DateTime: calendarific.DateTime{Year: 2025, Month: 1, Day: 1}}
	assert.Equal(t, "2025-01-01", empty.ISODate())
}
