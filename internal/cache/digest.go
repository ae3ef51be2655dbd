package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the lowercase hex sha256 of data. Identical bytes always
// produce the same digest regardless of file name or upload time, which is
// what makes it usable as a dedup and cache key.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
