/*
Package growbloom provides space-efficient approximate set-membership filters.
The root package holds the pieces shared by the bitset backends: the Redis
client bootstrap and the selection of the backing bitset type.
*/
package growbloom

import (
	"math/rand"
	"time"
	"unsafe"
)

// BitSetType selects the backend used for the bitsets backing a filter.
type BitSetType int

const (
	RedisBitSet BitSetType = iota
	InMemoryBitSet
)

var src = rand.NewSource(time.Now().UnixNano())

const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
const (
	letterIdxBits = 6                    // 6 bits to represent a letter index
	letterIdxMask = 1<<letterIdxBits - 1 // All 1-bits, as many as letterIdxBits
	letterIdxMax  = 63 / letterIdxBits   // # of letter indices fitting in 63 bits
)

// GenerateRandomString returns a random alpha-numeric string of length _n_.
// Used to mint Redis keys for the Redis-backed bitsets.
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	// A src.Int63() generates 63 random bits, enough for letterIdxMax characters!
	for i, cache, remain := n-1, src.Int63(), letterIdxMax; i >= 0; {
		if remain == 0 {
			cache, remain = src.Int63(), letterIdxMax
		}
		if idx := int(cache & letterIdxMask); idx < len(letterBytes) {
			b[i] = letterBytes[idx]
			i--
		}
		cache >>= letterIdxBits
		remain--
	}

	return *(*string)(unsafe.Pointer(&b))
}
