package project

import (
	"encoding/binary"

	"github.com/minio/highwayhash"
)

var fingerprintKey = []byte("fire-project-fingerprint-key-32b")

// Fingerprint folds per-file content hashes into one project hash:
// H(h1 || h2 || ...). Callers pass hashes in a deterministic order.
func Fingerprint(hashes ...uint64) uint64 {
	h, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		panic(err)
	}
	var buf [8]byte
	for _, v := range hashes {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
