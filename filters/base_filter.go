/*
Package filters provides three cooperating bloom filter variants for
approximate set-membership testing: given a stream of inserted elements,
answer "is X a member?" in sub-linear memory with a bounded false positive
rate and no false negatives.

BloomFilter is the classic variant where all hash functions share one bitmap.
Best choice for a relatively small dataset of known size.
Refer: https://web.stanford.edu/~balaji/papers/bloom.pdf

PartitionedBloomFilter gives every hash function its own slice of the bitmap,
so no two hash indices ever touch the same bits.

ScalableBloomFilter chains partitioned filters of geometrically increasing
hash counts and geometrically tightening error budgets, extending itself when
the active filter saturates. It serves data streams whose size isn't known
up front while still promising the target false positive rate.
Refer: http://gsd.di.uminho.pt/members/cbm/ps/dbloom.pdf
*/
package filters

// Filter is the contract shared by all the filter variants.
type Filter interface {
	// Insert writes _data_ into the filter and reports whether any bit
	// was newly set. A false return does not prove prior insertion:
	// colliding values may have set all probed bits already.
	Insert(data []byte) (bool, error)

	// Lookup returns true if all bits probed for _data_ are set, which
	// may be a false positive. It never returns false for inserted data.
	Lookup(data []byte) (bool, error)

	// TargetFalsePositiveRate returns the error rate the filter was
	// sized for.
	TargetFalsePositiveRate() float64

	// FalsePositiveRate estimates the current false positive probability
	// from the occupancy of the backing bitsets.
	FalsePositiveRate() float64

	// IsEmpty returns true if nothing has been written to the filter.
	IsEmpty() bool

	// IsFull returns true once the estimated false positive rate has
	// reached the target rate. Inserts are still accepted after that
	// point, but the error guarantee no longer holds.
	IsFull() bool

	// Size returns the number of elements inserted so far.
	Size() uint64

	// BitCount returns the total number of set bits across the backing
	// bitsets. It's a diagnostic count, not a deduplicated element count.
	BitCount() uint64
}
