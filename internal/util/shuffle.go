package util

import (
	crand "crypto/rand"
	"encoding/binary"
	"hash/fnv"
	"math/rand"
)

// NewExamSeed draws a fresh non-deterministic 63-bit seed. It is drawn once
// per exam; every shuffle after that derives from the stored value only.
func NewExamSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b[:]) >> 1), nil
}

// SeededRand returns a deterministic source: same seed, same sequence.
func SeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// SeedFromString hashes an arbitrary string (e.g. a content fingerprint)
// into a usable 63-bit seed.
func SeedFromString(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64() >> 1)
}
