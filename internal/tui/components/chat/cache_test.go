package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderCacheEviction(t *testing.T) {
	c := NewRenderCache(2)

	a, b, d := c.Key("a", 80, "default"), c.Key("b", 80, "default"), c.Key("d", 80, "default")
	c.Set(a, "A")
	c.Set(b, "B")

	// touch a so b becomes the oldest
	got, ok := c.Get(a)
	assert.True(t, ok)
	assert.Equal(t, "A", got)

	c.Set(d, "D")
	assert.Equal(t, 2, c.Size())

	_, ok = c.Get(b)
	assert.False(t, ok)
	_, ok = c.Get(a)
	assert.True(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestRenderCacheKeyVariesWithWidth(t *testing.T) {
	c := NewRenderCache(0)
	assert.NotEqual(t, c.Key("id", 80, "default"), c.Key("id", 60, "default"))
	assert.NotEqual(t, c.Key("id", 80, "default"), c.Key("id", 80, "mocha"))
}

func TestRenderCacheOverwrite(t *testing.T) {
	c := NewRenderCache(1)
	c.Set("k", "1")
	c.Set("k", "2")

	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "2", got)
	assert.Equal(t, 1, c.Size())
}
