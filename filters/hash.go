package filters

import (
	"github.com/dgryski/go-metro"
)

const hashSeed = 1373

// getHashes returns the two base hash values from which the per-seed keys
// are derived. Deterministic for identical _data_ within a process run.
func getHashes(data []byte) [2]uint64 {
	hash1, hash2 := metro.Hash128(data, hashSeed)
	return [2]uint64{hash1, hash2}
}

// getIndex derives the key for hash seed _i_ in [0, size) via enhanced
// double hashing: h1 + i*h2 + (i^3 - i)/6. Distinct seeds yield pairwise
// distinguishable keys for typical inputs.
func getIndex(hashes [2]uint64, i, size uint) uint {
	j := uint64(i)
	return uint((hashes[0] + j*hashes[1] + (j*j*j-j)/6) % uint64(size))
}
