package source

import (
	"fmt"

	"github.com/minio/highwayhash"
)

var hashKey = []byte("fire-source-hash-key-0123456789!")

// ContentHash returns the 64-bit HighwayHash of normalized file content.
// It is stable across runs and keys the token cache.
func ContentHash(content []byte) uint64 {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		panic(fmt.Errorf("highwayhash key: %w", err))
	}
	_, _ = h.Write(content)
	return h.Sum64()
}
