// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package filecache remembers the content hashes of local files so that
// unchanged attachments and config files are not re-read on every sync.
package filecache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/MKhiriev/go-odk-sync/internal/utils"
)

const (
	cacheDirPerm     = fs.FileMode(0o700)
	cacheFilePerm    = fs.FileMode(0o600)
	cacheOpenTimeout = 5 * time.Second
)

var (
	hashesBucket = []byte("hashes")
	metaBucket   = []byte("meta")
)

// ErrNotFound is returned by Meta for keys that were never stored.
var ErrNotFound = errors.New("filecache: key not found")

// entry is the cached hash of a file. It is valid while the file's
// modification time and size are unchanged.
type entry struct {
	MTime int64  `json:"mtime"`
	Size  int64  `json:"size"`
	Hash  string `json:"hash"`
}

// Cache is a bbolt-backed md5 cache keyed by absolute file path.
type Cache struct {
	db *bolt.DB
}

// Open opens the cache database at path, creating it if needed.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), cacheDirPerm); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := bolt.Open(path, cacheFilePerm, &bolt.Options{Timeout: cacheOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(hashesBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(metaBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache db: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the database file lock.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Hash returns the "md5:<hex>" digest of the file at path, reading the file
// only when its size or modification time differ from the cached entry.
func (c *Cache) Hash(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("hash %s: is a directory", path)
	}

	key := []byte(filepath.Clean(path))
	mtime := info.ModTime().UnixNano()

	var cached entry
	found := false
	err = c.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(hashesBucket).Get(key)
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &cached)
	})
	if err != nil {
		return "", fmt.Errorf("reading cached hash: %w", err)
	}
	if found && cached.MTime == mtime && cached.Size == info.Size() && cached.Hash != "" {
		return cached.Hash, nil
	}

	hash, err := utils.MD5HashFile(path)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(entry{MTime: mtime, Size: info.Size(), Hash: hash})
	if err != nil {
		return "", fmt.Errorf("marshaling cache entry: %w", err)
	}
	err = c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(hashesBucket).Put(key, data)
	})
	if err != nil {
		return "", fmt.Errorf("storing cached hash: %w", err)
	}

	return hash, nil
}

// Forget drops the cached hash of path. Forgetting an unknown path is not
// an error.
func (c *Cache) Forget(path string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(hashesBucket).Delete([]byte(filepath.Clean(path)))
	})
}

// Meta returns a value stored with SetMeta, or ErrNotFound.
func (c *Cache) Meta(key string) (string, error) {
	var value string
	err := c.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(metaBucket).Get([]byte(key))
		if data == nil {
			return ErrNotFound
		}
		value = string(data)
		return nil
	})
	return value, err
}

// SetMeta stores a small piece of client state, such as the installation id.
func (c *Cache) SetMeta(key, value string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(metaBucket).Put([]byte(key), []byte(value))
	})
}
