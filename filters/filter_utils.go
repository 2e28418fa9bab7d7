package filters

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameters is returned by constructors when the capacity,
// bitset size, hash count, error rate or growth parameters are out of
// their documented domains.
var ErrInvalidParameters = errors.New("growbloom: invalid filter parameters")

// CalculateNumHashes returns the minimal number of hash functions for which
// the per-hash error contribution matches _errorRate_: ceil(log2(1/f)).
func CalculateNumHashes(errorRate float64) (uint, error) {
	if err := validateErrorRate(errorRate); err != nil {
		return 0, err
	}
	return uint(math.Ceil(math.Log2(1 / errorRate))), nil
}

// CalculateFilterSize returns the minimal shared-bitmap size holding
// _capacity_ elements at _errorRate_: ceil(-n*ln(f) / ln(2)^2).
func CalculateFilterSize(capacity uint, errorRate float64) uint {
	return uint(math.Ceil(-(float64(capacity) * math.Log(errorRate)) / math.Pow(math.Log(2), 2)))
}

// CalculateSliceSize returns the minimal per-slice size for a filter of
// _numHashes_ slices holding _capacity_ elements at _errorRate_:
// ceil(-n*ln(f) / (k*ln(2)^2)).
func CalculateSliceSize(capacity, numHashes uint, errorRate float64) uint {
	return uint(math.Ceil(-(float64(capacity) * math.Log(errorRate)) / (float64(numHashes) * math.Pow(math.Log(2), 2))))
}

// FalsePositiveRate estimates the error rate of a shared bitmap of _size_
// bits probed by _numHashes_ hash functions after _count_ insertions:
// (1 - (1 - 1/m)^(k*n))^k. The estimate is non-decreasing in _count_.
func FalsePositiveRate(numHashes, size uint, count uint64) float64 {
	fill := 1 - math.Pow(1-1/float64(size), float64(numHashes)*float64(count))
	return math.Pow(fill, float64(numHashes))
}

func validateErrorRate(errorRate float64) error {
	if errorRate <= 0 || errorRate >= 1 {
		return fmt.Errorf("%w: error rate %v must lie strictly between 0 and 1", ErrInvalidParameters, errorRate)
	}
	return nil
}

func validateCapacity(capacity uint) error {
	if capacity == 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidParameters)
	}
	return nil
}

func powUint(base, exp uint) uint {
	result := uint(1)
	for ; exp > 0; exp-- {
		result *= base
	}
	return result
}
