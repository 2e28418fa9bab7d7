package filters

import (
	"errors"
	"testing"

	"github.com/probkit/growbloom"
)

func TestPartitionedBloomFilterInvalidParameters(t *testing.T) {
	if _, err := NewPartitionedBloomFilter(0, 0.01, growbloom.InMemoryBitSet); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("zero capacity should be rejected, got %v", err)
	}
	if _, err := NewPartitionedBloomFilter(100, 1.5, growbloom.InMemoryBitSet); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("error rate above 1 should be rejected, got %v", err)
	}
	if _, err := NewPartitionedBloomFilterFromScratch(0, 100, 0.01, growbloom.InMemoryBitSet); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("zero hash count should be rejected, got %v", err)
	}
	if _, err := NewPartitionedBloomFilterFromScratch(4, 0, 0.01, growbloom.InMemoryBitSet); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("zero slice size should be rejected, got %v", err)
	}
}

func TestPartitionedOneKeyPerSlice(t *testing.T) {
	filter, err := NewPartitionedBloomFilter(100, 0.01, growbloom.InMemoryBitSet)
	if err != nil {
		t.Fatalf("could not create filter: %v", err)
	}
	filter.Insert([]byte("solo"))
	if filter.BitCount() != uint64(filter.GetNumHashes()) {
		t.Errorf("one insert should set exactly one bit per slice, got %v bits for %v slices",
			filter.BitCount(), filter.GetNumHashes())
	}
}

func TestPartitionedNoFalseNegatives(t *testing.T) {
	filter, _ := NewPartitionedBloomFilter(1000, 0.01, growbloom.InMemoryBitSet)
	for i := uint32(0); i < 1000; i++ {
		filter.Insert(encodeUint32(i))
	}
	for i := uint32(0); i < 1000; i++ {
		if ok, _ := filter.Lookup(encodeUint32(i)); !ok {
			t.Fatalf("%v should be in filter", i)
		}
	}
}

func TestPartitionedLookupNegative(t *testing.T) {
	filter, _ := NewPartitionedBloomFilter(1000, 0.001, growbloom.InMemoryBitSet)
	for i := uint32(0); i < 10; i++ {
		filter.Insert(encodeUint32(i))
	}
	if ok, _ := filter.Lookup(encodeUint32(999999)); ok {
		t.Error("999999 should not be in filter")
	}
	if ok, _ := filter.LookupString("not there"); ok {
		t.Error("uninserted string should not be in filter")
	}
}

func TestPartitionedSizeAndBitCount(t *testing.T) {
	filter, _ := NewPartitionedBloomFilter(100, 0.01, growbloom.InMemoryBitSet)
	data := []byte("repeat")
	filter.Insert(data)
	bits := filter.BitCount()
	filter.Insert(data)
	filter.Insert(data)
	if filter.Size() != 3 {
		t.Errorf("size should count every insert call, got %v", filter.Size())
	}
	if filter.BitCount() != bits {
		t.Errorf("duplicate inserts should not set new bits: %v vs %v", filter.BitCount(), bits)
	}
}

func TestPartitionedInsertReportsNewlySetBits(t *testing.T) {
	filter, _ := NewPartitionedBloomFilter(100, 0.01, growbloom.InMemoryBitSet)
	inserted, _ := filter.InsertString("fresh")
	if !inserted {
		t.Error("first insert should set new bits")
	}
	inserted, _ = filter.InsertString("fresh")
	if inserted {
		t.Error("repeated insert should not set new bits")
	}
}

func TestPartitionedFalsePositiveRate(t *testing.T) {
	filter, err := NewPartitionedBloomFilterFromScratch(2, 4, 0.25, growbloom.InMemoryBitSet)
	if err != nil {
		t.Fatalf("could not create filter: %v", err)
	}
	if filter.FalsePositiveRate() != 0 {
		t.Errorf("fresh filter rate should be 0, got %v", filter.FalsePositiveRate())
	}
	previous := 0.0
	for i := uint32(0); i < 8; i++ {
		filter.Insert(encodeUint32(i))
		rate := filter.FalsePositiveRate()
		if rate < previous {
			t.Fatalf("rate decreased from %v to %v", previous, rate)
		}
		previous = rate
	}
	if !filter.IsFull() {
		t.Errorf("tiny filter should be full after 8 inserts, rate %v", filter.FalsePositiveRate())
	}
	if _, err := filter.Insert(encodeUint32(100)); err != nil {
		t.Errorf("full filter should still accept inserts, got %v", err)
	}
}

func TestPartitionedEmpty(t *testing.T) {
	filter, _ := NewPartitionedBloomFilter(100, 0.01, growbloom.InMemoryBitSet)
	if !filter.IsEmpty() {
		t.Error("fresh filter should be empty")
	}
	filter.InsertString("occupied")
	if filter.IsEmpty() {
		t.Error("filter with data should not be empty")
	}
}

func TestRedisPartitionedBloomFilter(t *testing.T) {
	setupRedisClient(t)
	filter, err := NewPartitionedBloomFilter(100, 0.01, growbloom.RedisBitSet)
	if err != nil {
		t.Fatalf("could not create redis filter: %v", err)
	}
	for i := uint32(0); i < 20; i++ {
		filter.Insert(encodeUint32(i))
	}
	for i := uint32(0); i < 20; i++ {
		if ok, _ := filter.Lookup(encodeUint32(i)); !ok {
			t.Fatalf("%v should be in filter", i)
		}
	}
	if ok, _ := filter.Lookup(encodeUint32(100000)); ok {
		t.Error("100000 should not be in filter")
	}
}
