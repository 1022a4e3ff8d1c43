package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(t *testing.T, size int, ttl time.Duration) (*MemoryCache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 12, 25, 9, 0, 0, 0, time.UTC)}
	c, err := NewMemory(size, ttl, WithClock(clock.now))
	require.NoError(t, err)
	return c, clock
}

func body(s string) *Entry {
	return &Entry{Body: json.RawMessage(s)}
}

func TestMemoryCacheReadWrite(t *testing.T) {
	c, clock := newTestCache(t, 10, time.Hour)

	_, ok := c.Read("missing")
	assert.False(t, ok)

	require.NoError(t, c.Write("k", body(`{"a":1}`)))
	e, ok := c.Read("k")
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(e.Body))
	assert.Equal(t, clock.t, e.FetchedAt)
}

func TestMemoryCacheTTL(t *testing.T) {
	c, clock := newTestCache(t, 10, time.Hour)
	require.NoError(t, c.Write("k", body(`1`)))

	clock.advance(59 * time.Minute)
	_, ok := c.Read("k")
	assert.True(t, ok, "entry should still be fresh")

	clock.advance(2 * time.Minute)
	_, ok = c.Read("k")
	assert.False(t, ok, "entry older than ttl should miss")
	assert.Equal(t, 0, c.Len(), "expired entry should be removed")

	// a fresh write replaces the expired one
	require.NoError(t, c.Write("k", body(`2`)))
	e, ok := c.Read("k")
	require.True(t, ok)
	assert.Equal(t, "2", string(e.Body))
}

func TestMemoryCacheZeroTTLNeverExpires(t *testing.T) {
	c, clock := newTestCache(t, 10, 0)
	require.NoError(t, c.Write("k", body(`1`)))
	clock.advance(365 * 24 * time.Hour)
	_, ok := c.Read("k")
	assert.True(t, ok)
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestCache(t, 2, time.Hour)

	require.NoError(t, c.Write("a", body(`"a"`)))
	require.NoError(t, c.Write("b", body(`"b"`)))

	// touch a so b becomes the least recently used
	_, ok := c.Read("a")
	require.True(t, ok)

	require.NoError(t, c.Write("c", body(`"c"`)))
	assert.Equal(t, 2, c.Len())

	_, ok = c.Read("b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = c.Read("a")
	assert.True(t, ok)
	_, ok = c.Read("c")
	assert.True(t, ok)
}

func TestMemoryCacheWriteDoesNotAliasCaller(t *testing.T) {
	c, _ := newTestCache(t, 2, time.Hour)
	e := body(`1`)
	require.NoError(t, c.Write("k", e))
	e.Body = json.RawMessage(`2`)

	got, ok := c.Read("k")
	require.True(t, ok)
	assert.Equal(t, "1", string(got.Body))
}

func TestNewMemoryRejectsBadConfig(t *testing.T) {
	_, err := NewMemory(0, time.Hour)
	assert.Error(t, err)
	_, err = NewMemory(1, -time.Second)
	assert.Error(t, err)
	c, err := NewMemory(1, time.Hour)
	require.NoError(t, err)
	assert.Error(t, c.Write("k", nil))
}
