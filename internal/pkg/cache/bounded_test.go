package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedSetGet(t *testing.T) {
	c := NewBounded(0, 0)
	c.Set("k", "v")

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestBoundedUpdateInPlace(t *testing.T) {
	c := NewBounded(3, 1)
	c.Set("k", "old")
	c.Set("k", "new")

	got, _ := c.Get("k")
	assert.Equal(t, "new", got)
	assert.Equal(t, 1, c.Len())
}

func TestBoundedEvictsOldestBatch(t *testing.T) {
	c := NewBounded(50, 10)
	for i := 0; i < 51; i++ {
		c.Set(fmt.Sprintf("key-%02d", i), "v")
	}

	// 51st insert trips eviction of the 10 oldest, leaving 41.
	assert.Equal(t, 41, c.Len())

	for i := 0; i < 10; i++ {
		_, ok := c.Get(fmt.Sprintf("key-%02d", i))
		assert.False(t, ok, "key-%02d should have been evicted", i)
	}
	for i := 10; i < 51; i++ {
		_, ok := c.Get(fmt.Sprintf("key-%02d", i))
		assert.True(t, ok, "key-%02d should survive", i)
	}
}

func TestBoundedDelete(t *testing.T) {
	c := NewBounded(5, 2)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Delete("a")

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	// Deleting an absent key is a no-op.
	c.Delete("zzz")
	assert.Equal(t, 1, c.Len())
}
