package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// md5Prefix is the scheme prefix of content hashes exchanged with the server.
const md5Prefix = "md5:"

// MD5Hash returns the protocol form ("md5:<hex>") of the md5 digest of data.
func MD5Hash(data []byte) string {
	sum := md5.Sum(data)
	return md5Prefix + hex.EncodeToString(sum[:])
}

// MD5HashFile streams the file at path through md5 and returns the digest in
// protocol form.
func MD5HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for hashing: %w", err)
	}
	defer f.Close()

	h := md5.New()
	if _, err = io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file %s: %w", path, err)
	}
	return md5Prefix + hex.EncodeToString(h.Sum(nil)), nil
}

// SameHash compares two content hashes, tolerating a missing "md5:" prefix
// and differences in hex case.
func SameHash(a, b string) bool {
	a = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(a)), md5Prefix)
	b = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(b)), md5Prefix)
	return a != "" && a == b
}
