package filters

import (
	"fmt"

	"github.com/probkit/growbloom"
	"github.com/probkit/growbloom/bitset"
)

// PartitionedBloomFilter is a filter variant where every hash function owns
// its own bitset slice instead of sharing one bitmap. Slice _i_ is written
// only by hash seed _i_, so no two hash indices ever alias the same bits.
// That independence is what the scalable filter builds on.
// _slices_ are the backing bitsets, one per hash function.
// _sliceSize_ is the number of bits in each slice.
// _numHashes_ is the number of hash functions, which equals the slice count.
// _count_ is the number of elements inserted so far.
// _errorRate_ is the target false positive rate the filter was sized for.
type PartitionedBloomFilter struct {
	slices    []bitset.IBitSet
	sliceSize uint
	numHashes uint
	count     uint64
	errorRate float64
}

// NewPartitionedBloomFilterFromScratch creates a PartitionedBloomFilter with
// explicit sizing: _numHashes_ slices of _sliceSize_ bits each. _setType_
// selects the in-memory or the redis bitset backend.
func NewPartitionedBloomFilterFromScratch(numHashes, sliceSize uint, errorRate float64, setType growbloom.BitSetType) (*PartitionedBloomFilter, error) {
	if err := validateErrorRate(errorRate); err != nil {
		return nil, err
	}
	if numHashes == 0 {
		return nil, fmt.Errorf("%w: number of hash functions must be positive", ErrInvalidParameters)
	}
	if sliceSize == 0 {
		return nil, fmt.Errorf("%w: slice size must be positive", ErrInvalidParameters)
	}
	slices := make([]bitset.IBitSet, numHashes)
	for i := range slices {
		if setType == growbloom.InMemoryBitSet {
			slices[i] = bitset.NewBitSetMem(sliceSize)
		} else {
			slice, err := bitset.NewBitSetRedis(sliceSize)
			if err != nil {
				return nil, err
			}
			slices[i] = slice
		}
	}
	return &PartitionedBloomFilter{
		slices:    slices,
		sliceSize: sliceSize,
		numHashes: numHashes,
		errorRate: errorRate,
	}, nil
}

// NewPartitionedBloomFilter creates a PartitionedBloomFilter sized for
// _capacity_ elements at the target _errorRate_.
func NewPartitionedBloomFilter(capacity uint, errorRate float64, setType growbloom.BitSetType) (*PartitionedBloomFilter, error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}
	numHashes, err := CalculateNumHashes(errorRate)
	if err != nil {
		return nil, err
	}
	sliceSize := CalculateSliceSize(capacity, numHashes, errorRate)
	return NewPartitionedBloomFilterFromScratch(numHashes, sliceSize, errorRate, setType)
}

// Insert writes _data_ into the filter, one key per slice, and reports
// whether any slice's bit was newly set.
func (pbf *PartitionedBloomFilter) Insert(data []byte) (bool, error) {
	pbf.count++
	hashes := getHashes(data)
	inserted := false
	for i := uint(0); i < pbf.numHashes; i++ {
		ok, err := pbf.slices[i].Insert(getIndex(hashes, i, pbf.sliceSize))
		if err != nil {
			return false, err
		}
		inserted = inserted || ok
	}
	return inserted, nil
}

// Lookup returns true if every slice contains the key derived for its hash
// seed. It never returns false for data previously inserted into this filter.
func (pbf *PartitionedBloomFilter) Lookup(data []byte) (bool, error) {
	hashes := getHashes(data)
	for i := uint(0); i < pbf.numHashes; i++ {
		ok, err := pbf.slices[i].Has(getIndex(hashes, i, pbf.sliceSize))
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// InsertString accepts a string value as _data_ for inserting into the filter
func (pbf *PartitionedBloomFilter) InsertString(data string) (bool, error) {
	return pbf.Insert([]byte(data))
}

// LookupString accepts a string value as _data_ to lookup the filter
func (pbf *PartitionedBloomFilter) LookupString(data string) (bool, error) {
	return pbf.Lookup([]byte(data))
}

// TargetFalsePositiveRate returns the error rate the filter was sized for
func (pbf *PartitionedBloomFilter) TargetFalsePositiveRate() float64 {
	return pbf.errorRate
}

// FalsePositiveRate estimates the current false positive probability as the
// product of each slice's fill ratio. Occupancy is tracked per slice rather
// than pooled, which is what distinguishes this estimate from the shared
// bitmap variant's.
func (pbf *PartitionedBloomFilter) FalsePositiveRate() float64 {
	rate := 1.0
	for i := range pbf.slices {
		count, _ := pbf.slices[i].BitCount()
		rate *= float64(count) / float64(pbf.sliceSize)
	}
	return rate
}

// IsEmpty returns true if no slice has any bit set
func (pbf *PartitionedBloomFilter) IsEmpty() bool {
	for i := range pbf.slices {
		ok, _ := pbf.slices[i].IsEmpty()
		if !ok {
			return false
		}
	}
	return true
}

// IsFull returns true once the estimated false positive rate has reached
// the target rate. Inserts are still accepted after that point, but the
// error guarantee no longer holds.
func (pbf *PartitionedBloomFilter) IsFull() bool {
	return pbf.FalsePositiveRate() >= pbf.errorRate
}

// Size returns the number of elements inserted so far
func (pbf *PartitionedBloomFilter) Size() uint64 {
	return pbf.count
}

// BitCount returns the total number of set bits across all slices. Keys are
// not deduplicated across slices; this is a diagnostic bit count, not an
// element count.
func (pbf *PartitionedBloomFilter) BitCount() uint64 {
	var total uint64
	for i := range pbf.slices {
		count, _ := pbf.slices[i].BitCount()
		total += uint64(count)
	}
	return total
}

// GetCap returns the number of bits in each slice
func (pbf *PartitionedBloomFilter) GetCap() uint {
	return pbf.sliceSize
}

// GetNumHashes returns the number of hash functions used by the filter
func (pbf *PartitionedBloomFilter) GetNumHashes() uint {
	return pbf.numHashes
}
