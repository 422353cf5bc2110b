package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/konjug-backend/internal/domain"
)

func TestSearchCache_SetGet(t *testing.T) {
	t.Parallel()

	c := NewSearchCache(time.Minute, 0)
	hits := []domain.VerbSummary{{Verb: "sein", Level: "A1"}}

	assert.True(t, c.Set("se", 10, c.Generation(), hits))

	got, ok := c.Get("se", 10)
	require.True(t, ok)
	assert.Equal(t, hits, got)

	_, ok = c.Get("se", 5)
	assert.False(t, ok, "limit is part of the key")
	_, ok = c.Get("s", 10)
	assert.False(t, ok, "prefix is part of the key")
}

func TestSearchCache_Flush(t *testing.T) {
	t.Parallel()

	c := NewSearchCache(time.Minute, 0)
	c.Set("se", 10, c.Generation(), []domain.VerbSummary{{Verb: "sein"}})
	c.Set("ha", 10, c.Generation(), []domain.VerbSummary{{Verb: "haben"}})
	require.Equal(t, 2, c.Len())

	c.Flush()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("se", 10)
	assert.False(t, ok)
}

func TestSearchCache_Expiry(t *testing.T) {
	t.Parallel()

	c := NewSearchCache(20*time.Millisecond, 0)
	c.Set("se", 10, c.Generation(), []domain.VerbSummary{{Verb: "sein"}})

	time.Sleep(40 * time.Millisecond)

	_, ok := c.Get("se", 10)
	assert.False(t, ok, "expired entry must not be returned")
}

func TestSearchCache_ZeroTTLDisables(t *testing.T) {
	t.Parallel()

	c := NewSearchCache(0, 0)
	c.Set("se", 10, c.Generation(), []domain.VerbSummary{{Verb: "sein"}})

	_, ok := c.Get("se", 10)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestSearchCache_SetDropsResultsReadBeforeFlush(t *testing.T) {
	t.Parallel()

	c := NewSearchCache(time.Minute, 0)
	gen := c.Generation()

	c.Flush()

	assert.False(t, c.Set("se", 10, gen, []domain.VerbSummary{{Verb: "sein"}}))
	_, ok := c.Get("se", 10)
	assert.False(t, ok, "stale result must not be cached")

	assert.True(t, c.Set("se", 10, c.Generation(), []domain.VerbSummary{{Verb: "sein"}}))
	_, ok = c.Get("se", 10)
	assert.True(t, ok)
}
