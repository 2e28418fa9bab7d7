/*
Package bitset implements the sparse integer sets backing the filters - both
in-memory and redis. For in-memory, https://github.com/bits-and-blooms/bitset
is used while for redis, the bitset operations of redis are used.
*/
package bitset

// IBitSet is the contract a set must satisfy to back a filter. Any
// implementation can be substituted without changing filter semantics,
// only the memory and performance profile.
type IBitSet interface {
	// Size returns the number of bits in the bitset
	Size() uint

	// Has returns true if the bit is set at index, else false
	Has(index uint) (bool, error)

	// HasMulti returns an array of boolean values for the queried
	// index values in the indexes array
	HasMulti(indexes []uint) ([]bool, error)

	// Insert sets the bit at index and reports whether the bit
	// was previously clear
	Insert(index uint) (bool, error)

	// InsertMulti sets the bits at the indices passed in the indexes
	// array and returns the number of bits that were previously clear
	InsertMulti(indexes []uint) (uint, error)

	// BitCount returns the total number of set bits in the bitset
	BitCount() (uint, error)

	// IsEmpty returns true if no bit in the bitset is set
	IsEmpty() (bool, error)

	// Equals checks if two bitsets are equal
	Equals(otherBitSet IBitSet) (bool, error)
}

// IsBitSetMem is used to check if the passed bitset _t_
// is of type *BitSetMem or not
func IsBitSetMem(t IBitSet) bool {
	switch t.(type) {
	case *BitSetMem:
		return true
	default:
		return false
	}
}
