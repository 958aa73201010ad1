package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMD5Hash(t *testing.T) {
	assert.Equal(t, "md5:d41d8cd98f00b204e9800998ecf8427e", MD5Hash(nil))
	assert.Equal(t, "md5:5d41402abc4b2a76b9719d911017c592", MD5Hash([]byte("hello")))
}

func TestMD5HashFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(p, []byte("hello"), 0o600))

	got, err := MD5HashFile(p)
	require.NoError(t, err)
	assert.Equal(t, MD5Hash([]byte("hello")), got)
}

func TestMD5HashFile_Missing(t *testing.T) {
	_, err := MD5HashFile(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestSameHash(t *testing.T) {
	assert.True(t, SameHash("md5:ABC", "abc"))
	assert.True(t, SameHash("md5:abc", "md5:abc"))
	assert.False(t, SameHash("md5:abc", "md5:abd"))
	assert.False(t, SameHash("", ""))
}
