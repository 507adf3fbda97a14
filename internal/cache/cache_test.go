package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetRoundTrip(t *testing.T) {
	c := New("")
	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("scope", "alex")
	v, ok := c.Get("scope")
	assert.True(t, ok)
	assert.Equal(t, "alex", v)

	c.SetInt("requests", 42)
	assert.Equal(t, 42, c.GetInt("requests", 0))
	assert.Equal(t, 7, c.GetInt("absent", 7))
}

func TestFlushAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.bin")

	c := New(path)
	c.Set("scope", "alex")
	c.SetInt("requests", 3)
	require.NoError(t, c.Flush())

	reloaded := New(path)
	v, ok := reloaded.Get("scope")
	assert.True(t, ok)
	assert.Equal(t, "alex", v)
	assert.Equal(t, 3, reloaded.GetInt("requests", 0))
	assert.Equal(t, 2, reloaded.Len())
}

func TestFlushSkipsWhenClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.bin")
	c := New(path)
	require.NoError(t, c.Flush())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "clean cache should not touch disk")
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.bin")
	require.NoError(t, os.WriteFile(path, []byte("not msgpack at all"), 0644))

	c := New(path)
	assert.Zero(t, c.Len())
}
