package unitconv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cache.db")

	c, err := NewCache(file)
	require.NoError(t, err)

	_, ok, err := c.Find("abc", "text")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Store("abc", "text", "{a:1}"))
	require.NoError(t, c.Store("abc", "zip", "{a:`x`}"))
	require.NoError(t, c.Store("abc", "text", "{a:2}"))

	body, ok, err := c.Find("abc", "text")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{a:2}", body)

	require.NoError(t, c.Close())

	// Documents survive reopening
	c, err = NewCache(file)
	require.NoError(t, err)
	defer c.Close()

	body, ok, err = c.Find("abc", "zip")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{a:`x`}", body)
}
