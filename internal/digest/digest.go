// Package digest computes the content digests used for deduplication.
// The digest is identity only, not a security boundary: two items are the
// same capture exactly when their canonical bytes produce the same digest.
package digest

import (
	"crypto/md5"
	"encoding/hex"
)

// Bytes returns the lowercase hex MD5 digest of data.
func Bytes(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// String returns the digest of the UTF-8 encoding of s.
func String(s string) string {
	return Bytes([]byte(s))
}
