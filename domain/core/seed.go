package core

import (
	"crypto/sha256"
	"encoding/binary"
)

// StreamSeed derives a deterministic sub-stream seed from a base seed, a
// stream name, and a stream index. Two streams with different names or
// indices never share a seed, so draws taken from them are independent
// regardless of execution order.
func StreamSeed(base int64, name string, index int) int64 {
	h := sha256.New()

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(base))
	h.Write(buf[:])

	h.Write([]byte(name))

	binary.BigEndian.PutUint64(buf[:], uint64(int64(index)))
	h.Write(buf[:])

	sum := h.Sum(nil)
	return int64(binary.BigEndian.Uint64(sum[:8]))
}
