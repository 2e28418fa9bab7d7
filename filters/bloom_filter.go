package filters

import (
	"fmt"
	"math"

	"github.com/probkit/growbloom/bitset"
)

// BloomFilter is the classic filter variant where all hash functions write
// into one shared bitset.
// _filter_ is the backing bitset, either a BitSetMem or a BitSetRedis.
// _size_ is the number of bits in the backing bitset.
// _numHashes_ is the number of hash functions probed per element.
// _count_ is the number of elements inserted so far.
// _errorRate_ is the target false positive rate the filter was sized for.
type BloomFilter struct {
	filter    bitset.IBitSet
	size      uint
	numHashes uint
	count     uint64
	errorRate float64
}

// NewBloomFilterWithBitSet creates a BloomFilter on top of an already
// constructed bitset _filter_. Callers using this path supply their own
// sizing; _numHashes_ and the bitset size must be positive and
// _errorRate_ must lie strictly between 0 and 1.
func NewBloomFilterWithBitSet(filter bitset.IBitSet, numHashes uint, errorRate float64) (*BloomFilter, error) {
	if err := validateErrorRate(errorRate); err != nil {
		return nil, err
	}
	if numHashes == 0 {
		return nil, fmt.Errorf("%w: number of hash functions must be positive", ErrInvalidParameters)
	}
	if filter.Size() == 0 {
		return nil, fmt.Errorf("%w: bitset size must be positive", ErrInvalidParameters)
	}
	return &BloomFilter{
		filter:    filter,
		size:      filter.Size(),
		numHashes: numHashes,
		errorRate: errorRate,
	}, nil
}

// NewMemBloomFilterWithParameters creates an in-memory BloomFilter sized
// for _capacity_ elements at the target _errorRate_. The number of hash
// functions and the bitset size are derived from the two parameters.
func NewMemBloomFilterWithParameters(capacity uint, errorRate float64) (*BloomFilter, error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}
	numHashes, err := CalculateNumHashes(errorRate)
	if err != nil {
		return nil, err
	}
	size := CalculateFilterSize(capacity, errorRate)
	return NewBloomFilterWithBitSet(bitset.NewBitSetMem(size), numHashes, errorRate)
}

// NewRedisBloomFilterWithParameters creates a redis-backed BloomFilter sized
// for _capacity_ elements at the target _errorRate_. MakeRedisClient must
// have been called beforehand.
func NewRedisBloomFilterWithParameters(capacity uint, errorRate float64) (*BloomFilter, error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}
	numHashes, err := CalculateNumHashes(errorRate)
	if err != nil {
		return nil, err
	}
	size := CalculateFilterSize(capacity, errorRate)
	filter, err := bitset.NewBitSetRedis(size)
	if err != nil {
		return nil, err
	}
	return NewBloomFilterWithBitSet(filter, numHashes, errorRate)
}

// Insert writes _data_ into the filter and reports whether any bit was
// newly set. Colliding values may have set all probed bits already, so a
// false return does not prove the value was inserted before.
func (bf *BloomFilter) Insert(data []byte) (bool, error) {
	bf.count++
	hashes := getHashes(data)
	if bitset.IsBitSetMem(bf.filter) {
		inserted := false
		for i := uint(0); i < bf.numHashes; i++ {
			ok, err := bf.filter.Insert(getIndex(hashes, i, bf.size))
			if err != nil {
				return false, err
			}
			inserted = inserted || ok
		}
		return inserted, nil
	}
	indexes := make([]uint, bf.numHashes)
	for i := uint(0); i < bf.numHashes; i++ {
		indexes[i] = getIndex(hashes, i, bf.size)
	}
	set, err := bf.filter.InsertMulti(indexes)
	if err != nil {
		return false, err
	}
	return set > 0, nil
}

// Lookup returns true if all bits probed for _data_ are set. It never
// returns false for data previously inserted into this filter.
func (bf *BloomFilter) Lookup(data []byte) (bool, error) {
	hashes := getHashes(data)
	if bitset.IsBitSetMem(bf.filter) {
		for i := uint(0); i < bf.numHashes; i++ {
			ok, err := bf.filter.Has(getIndex(hashes, i, bf.size))
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}
	indexes := make([]uint, bf.numHashes)
	for i := uint(0); i < bf.numHashes; i++ {
		indexes[i] = getIndex(hashes, i, bf.size)
	}
	result, err := bf.filter.HasMulti(indexes)
	if err != nil {
		return false, err
	}
	for i := range result {
		if !result[i] {
			return false, nil
		}
	}
	return true, nil
}

// InsertString accepts a string value as _data_ for inserting into the filter
func (bf *BloomFilter) InsertString(data string) (bool, error) {
	return bf.Insert([]byte(data))
}

// LookupString accepts a string value as _data_ to lookup the filter
func (bf *BloomFilter) LookupString(data string) (bool, error) {
	return bf.Lookup([]byte(data))
}

// TargetFalsePositiveRate returns the error rate the filter was sized for
func (bf *BloomFilter) TargetFalsePositiveRate() float64 {
	return bf.errorRate
}

// FalsePositiveRate estimates the current false positive probability as
// (bits set / m)^k, the chance that k independently chosen positions are
// all already occupied.
func (bf *BloomFilter) FalsePositiveRate() float64 {
	count, _ := bf.filter.BitCount()
	return math.Pow(float64(count)/float64(bf.size), float64(bf.numHashes))
}

// IsEmpty returns true if nothing has been written to the filter
func (bf *BloomFilter) IsEmpty() bool {
	ok, _ := bf.filter.IsEmpty()
	return ok
}

// IsFull returns true once the estimated false positive rate has reached
// the target rate. Inserts are still accepted after that point, but the
// error guarantee no longer holds.
func (bf *BloomFilter) IsFull() bool {
	return bf.FalsePositiveRate() >= bf.errorRate
}

// Size returns the number of elements inserted so far
func (bf *BloomFilter) Size() uint64 {
	return bf.count
}

// BitCount returns the number of set bits in the backing bitset
func (bf *BloomFilter) BitCount() uint64 {
	count, _ := bf.filter.BitCount()
	return uint64(count)
}

// GetCap returns the number of bits in the backing bitset
func (bf *BloomFilter) GetCap() uint {
	return bf.size
}

// GetNumHashes returns the number of hash functions used by the filter
func (bf *BloomFilter) GetNumHashes() uint {
	return bf.numHashes
}
