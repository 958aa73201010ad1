package filecache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-odk-sync/internal/utils"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "state", "hashes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache_Hash(t *testing.T) {
	c := openTestCache(t)
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	got, err := c.Hash(path)
	require.NoError(t, err)
	assert.Equal(t, utils.MD5Hash([]byte("hello")), got)
}

func TestCache_Hash_UsesCachedEntryWhileStatUnchanged(t *testing.T) {
	c := openTestCache(t)
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))
	mtime := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	first, err := c.Hash(path)
	require.NoError(t, err)

	// Same size and mtime: the cache cannot tell the content changed.
	require.NoError(t, os.WriteFile(path, []byte("jello"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	second, err := c.Hash(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, c.Forget(path))
	third, err := c.Hash(path)
	require.NoError(t, err)
	assert.Equal(t, utils.MD5Hash([]byte("jello")), third)
}

func TestCache_Hash_RehashesOnSizeChange(t *testing.T) {
	c := openTestCache(t)
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	_, err := c.Hash(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("hello, world"), 0o644))
	got, err := c.Hash(path)
	require.NoError(t, err)
	assert.Equal(t, utils.MD5Hash([]byte("hello, world")), got)
}

func TestCache_Hash_Errors(t *testing.T) {
	c := openTestCache(t)

	_, err := c.Hash(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = c.Hash(t.TempDir())
	assert.Error(t, err)
}

func TestCache_Meta(t *testing.T) {
	c := openTestCache(t)

	_, err := c.Meta("installation_id")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.SetMeta("installation_id", "dev-1"))
	got, err := c.Meta("installation_id")
	require.NoError(t, err)
	assert.Equal(t, "dev-1", got)
}

func TestCache_ReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hashes.db")
	c, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, c.SetMeta("k", "v"))
	require.NoError(t, c.Close())

	c, err = Open(path)
	require.NoError(t, err)
	defer c.Close()

	got, err := c.Meta("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}
