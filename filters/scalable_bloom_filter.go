package filters

import (
	"fmt"
	"math"

	"github.com/probkit/growbloom"
)

// Default growth parameters used by NewScalableBloomFilter.
const (
	DefaultGrowthFactor    = 4
	DefaultTighteningRatio = 0.9
)

// ScalableBloomFilter chains partitioned filters so that capacity is not
// fixed up front. When the active filter saturates, a new one is appended
// with _growthFactor_ times as many hash functions and a _tighteningRatio_
// times smaller error budget, keeping the compound error rate of the whole
// chain near the target. Only the last filter is ever written; all filters
// are read during lookup.
// _filters_ is the append-only sequence of partitioned filters.
// _numHashes_ is the hash count of the first filter (k0).
// _sliceSize_ is the slice size shared by every filter in the chain.
// _setType_ selects the bitset backend used for appended filters.
type ScalableBloomFilter struct {
	filters         []*PartitionedBloomFilter
	numHashes       uint
	sliceSize       uint
	growthFactor    uint
	tighteningRatio float64
	errorRate       float64
	setType         growbloom.BitSetType
}

// NewScalableBloomFilterFromScratch creates a ScalableBloomFilter with
// explicit sizing for the first filter: _numHashes_ slices of _sliceSize_
// bits. _growthFactor_ multiplies the hash count per appended filter
// (2 or 4 are the customary choices) and _tighteningRatio_ multiplies the
// error budget, 0.8 to 0.9 being typical.
func NewScalableBloomFilterFromScratch(numHashes, sliceSize, growthFactor uint, tighteningRatio, errorRate float64, setType growbloom.BitSetType) (*ScalableBloomFilter, error) {
	if err := validateErrorRate(errorRate); err != nil {
		return nil, err
	}
	if growthFactor < 2 {
		return nil, fmt.Errorf("%w: growth factor %d must be at least 2", ErrInvalidParameters, growthFactor)
	}
	if tighteningRatio <= 0 || tighteningRatio >= 1 {
		return nil, fmt.Errorf("%w: tightening ratio %v must lie strictly between 0 and 1", ErrInvalidParameters, tighteningRatio)
	}
	first, err := NewPartitionedBloomFilterFromScratch(numHashes, sliceSize, errorRate, setType)
	if err != nil {
		return nil, err
	}
	return &ScalableBloomFilter{
		filters:         []*PartitionedBloomFilter{first},
		numHashes:       numHashes,
		sliceSize:       sliceSize,
		growthFactor:    growthFactor,
		tighteningRatio: tighteningRatio,
		errorRate:       errorRate,
		setType:         setType,
	}, nil
}

// NewScalableBloomFilter creates a ScalableBloomFilter whose first filter is
// sized for _capacity_ elements at the target _errorRate_, with the default
// growth factor of 4 and tightening ratio of 0.9.
func NewScalableBloomFilter(capacity uint, errorRate float64, setType growbloom.BitSetType) (*ScalableBloomFilter, error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}
	numHashes, err := CalculateNumHashes(errorRate)
	if err != nil {
		return nil, err
	}
	sliceSize := CalculateSliceSize(capacity, numHashes, errorRate)
	return NewScalableBloomFilterFromScratch(numHashes, sliceSize, DefaultGrowthFactor, DefaultTighteningRatio, errorRate, setType)
}

// extend appends filter number i with k0*s^i hash functions and an error
// budget of f*r^i.
func (sbf *ScalableBloomFilter) extend() error {
	i := uint(len(sbf.filters))
	numHashes := sbf.numHashes * powUint(sbf.growthFactor, i)
	errorRate := sbf.errorRate * math.Pow(sbf.tighteningRatio, float64(i))
	next, err := NewPartitionedBloomFilterFromScratch(numHashes, sbf.sliceSize, errorRate, sbf.setType)
	if err != nil {
		return err
	}
	sbf.filters = append(sbf.filters, next)
	return nil
}

// Insert writes _data_ into the active filter, extending the chain first if
// the active filter is already full. The fullness check happens before the
// write, so at most one filter is appended per call and the appended filter
// always receives the insert that triggered it.
func (sbf *ScalableBloomFilter) Insert(data []byte) (bool, error) {
	if sbf.filters[len(sbf.filters)-1].IsFull() {
		if err := sbf.extend(); err != nil {
			return false, err
		}
	}
	return sbf.filters[len(sbf.filters)-1].Insert(data)
}

// Lookup returns true if any filter in the chain reports containment.
// Every filter has to be checked: membership may have been recorded in an
// earlier, since-closed filter.
func (sbf *ScalableBloomFilter) Lookup(data []byte) (bool, error) {
	for i := range sbf.filters {
		ok, err := sbf.filters[i].Lookup(data)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// InsertString accepts a string value as _data_ for inserting into the filter
func (sbf *ScalableBloomFilter) InsertString(data string) (bool, error) {
	return sbf.Insert([]byte(data))
}

// LookupString accepts a string value as _data_ to lookup the filter
func (sbf *ScalableBloomFilter) LookupString(data string) (bool, error) {
	return sbf.Lookup([]byte(data))
}

// TargetFalsePositiveRate returns the compound error rate the chain aims for
func (sbf *ScalableBloomFilter) TargetFalsePositiveRate() float64 {
	return sbf.errorRate
}

// FalsePositiveRate estimates the probability that at least one filter in
// the chain produces a false positive: 1 - prod(1 - rate_i).
func (sbf *ScalableBloomFilter) FalsePositiveRate() float64 {
	missRate := 1.0
	for i := range sbf.filters {
		missRate *= 1 - sbf.filters[i].FalsePositiveRate()
	}
	return 1 - missRate
}

// IsEmpty returns true if nothing has been written to the chain
func (sbf *ScalableBloomFilter) IsEmpty() bool {
	return sbf.filters[0].IsEmpty()
}

// IsFull always returns false: the chain extends instead of saturating.
func (sbf *ScalableBloomFilter) IsFull() bool {
	return false
}

// Size returns the number of elements inserted across all filters
func (sbf *ScalableBloomFilter) Size() uint64 {
	var total uint64
	for i := range sbf.filters {
		total += sbf.filters[i].Size()
	}
	return total
}

// BitCount returns the total number of set bits across all filters
func (sbf *ScalableBloomFilter) BitCount() uint64 {
	var total uint64
	for i := range sbf.filters {
		total += sbf.filters[i].BitCount()
	}
	return total
}

// Generations returns the number of filters in the chain
func (sbf *ScalableBloomFilter) Generations() uint {
	return uint(len(sbf.filters))
}
