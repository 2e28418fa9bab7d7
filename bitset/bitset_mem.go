package bitset

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// BitSetMem is an in-memory implementation of IBitSet.
// _size_ is the number of bits in the bitset
// _set_ is the bitset adopted from https://github.com/bits-and-blooms/bitset
type BitSetMem struct {
	set  *bitset.BitSet
	size uint
}

// NewBitSetMem creates a new BitSetMem of size _size_
func NewBitSetMem(size uint) *BitSetMem {
	return &BitSetMem{bitset.New(size), size}
}

// FromDataMem creates an instance of BitSetMem from the words
// passed in _data_
func FromDataMem(data []uint64) *BitSetMem {
	return &BitSetMem{bitset.From(data), uint(len(data) * 64)}
}

// Size returns the number of bits in the bitset
func (bitSet *BitSetMem) Size() uint {
	return bitSet.size
}

// Has returns true if the bit is set at _index_, else false
func (bitSet *BitSetMem) Has(index uint) (bool, error) {
	return bitSet.set.Test(index), nil
}

// HasMulti returns the set/unset state of every index in _indexes_
func (bitSet *BitSetMem) HasMulti(indexes []uint) ([]bool, error) {
	if len(indexes) == 0 {
		return nil, fmt.Errorf("growbloom: at least 1 index is required")
	}
	result := make([]bool, len(indexes))
	for i := range indexes {
		result[i] = bitSet.set.Test(indexes[i])
	}
	return result, nil
}

// Insert sets the bit at _index_ and reports whether the bit was
// previously clear
func (bitSet *BitSetMem) Insert(index uint) (bool, error) {
	inserted := !bitSet.set.Test(index)
	bitSet.set.Set(index)
	return inserted, nil
}

// InsertMulti sets the bits at _indexes_ and returns the number of bits
// that were previously clear
func (bitSet *BitSetMem) InsertMulti(indexes []uint) (uint, error) {
	if len(indexes) == 0 {
		return 0, fmt.Errorf("growbloom: at least 1 index is required")
	}
	var inserted uint
	for i := range indexes {
		if !bitSet.set.Test(indexes[i]) {
			inserted++
		}
		bitSet.set.Set(indexes[i])
	}
	return inserted, nil
}

// BitCount returns the total number of set bits in the bitset
func (bitSet *BitSetMem) BitCount() (uint, error) {
	return bitSet.set.Count(), nil
}

// IsEmpty returns true if no bit in the bitset is set
func (bitSet *BitSetMem) IsEmpty() (bool, error) {
	return bitSet.set.None(), nil
}

// Equals checks if two BitSetMem's are equal
func (bitSet *BitSetMem) Equals(otherBitSet IBitSet) (bool, error) {
	secondBitSet, ok := otherBitSet.(*BitSetMem)
	if !ok {
		return false, fmt.Errorf("growbloom: invalid bitset type, should be BitSetMem")
	}
	return bitSet.set.Equal(secondBitSet.set), nil
}
