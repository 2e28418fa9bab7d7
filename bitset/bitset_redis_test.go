package bitset

import (
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/probkit/growbloom"
)

var redisSetup sync.Once

func setupRedisClient(t *testing.T) {
	t.Helper()
	redisSetup.Do(func() {
		mr, err := miniredis.Run()
		if err != nil {
			t.Fatalf("could not start miniredis: %v", err)
		}
		connOptions, err := growbloom.ParseRedisURI("redis://" + mr.Addr())
		if err != nil {
			t.Fatalf("could not parse miniredis uri: %v", err)
		}
		growbloom.MakeRedisClient(*connOptions)
	})
}

func TestBitSetRedisHas(t *testing.T) {
	setupRedisClient(t)
	bitset, err := NewBitSetRedis(16)
	if err != nil {
		t.Fatalf("could not create redis bitset: %v", err)
	}
	bitset.Insert(1)
	bitset.Insert(3)
	bitset.Insert(7)
	if ok, _ := bitset.Has(1); !ok {
		t.Fatalf("should be true at index 1, got %v", ok)
	}
	if ok, _ := bitset.Has(4); ok {
		t.Fatalf("should be false at index 4, got %v", ok)
	}
}

func TestBitSetRedisInsertNovelty(t *testing.T) {
	setupRedisClient(t)
	bitset, _ := NewBitSetRedis(16)
	if ok, _ := bitset.Insert(5); !ok {
		t.Error("insert of a clear bit should report true")
	}
	if ok, _ := bitset.Insert(5); ok {
		t.Error("insert of an already set bit should report false")
	}
}

func TestBitSetRedisInsertMulti(t *testing.T) {
	setupRedisClient(t)
	bitset, _ := NewBitSetRedis(16)
	inserted, _ := bitset.InsertMulti([]uint{1, 3, 7, 9})
	if inserted != 4 {
		t.Errorf("4 bits should be newly set, got %v", inserted)
	}
	inserted, _ = bitset.InsertMulti([]uint{3, 9, 11})
	if inserted != 1 {
		t.Errorf("1 bit should be newly set, got %v", inserted)
	}
}

func TestBitSetRedisHasMulti(t *testing.T) {
	setupRedisClient(t)
	bitset, _ := NewBitSetRedis(16)
	bitset.InsertMulti([]uint{1, 3, 7})
	has, _ := bitset.HasMulti([]uint{1, 4, 7})
	if !has[0] || has[1] || !has[2] {
		t.Errorf("expected [true false true], got %v", has)
	}
}

func TestBitSetRedisBitCountAndEmpty(t *testing.T) {
	setupRedisClient(t)
	bitset, _ := NewBitSetRedis(16)
	if ok, _ := bitset.IsEmpty(); !ok {
		t.Error("fresh bitset should be empty")
	}
	bitset.InsertMulti([]uint{2, 5, 8})
	count, _ := bitset.BitCount()
	if count != 3 {
		t.Errorf("bit count should be 3, got %v", count)
	}
	if ok, _ := bitset.IsEmpty(); ok {
		t.Error("bitset with set bits should not be empty")
	}
}

func TestBitSetRedisEquals(t *testing.T) {
	setupRedisClient(t)
	aBitset, _ := NewBitSetRedis(16)
	bBitset, _ := NewBitSetRedis(16)
	aBitset.InsertMulti([]uint{2, 5, 8})
	bBitset.InsertMulti([]uint{2, 5, 8})
	if ok, _ := aBitset.Equals(bBitset); !ok {
		t.Error("bitsets with identical bits should be equal")
	}
	bBitset.Insert(9)
	if ok, _ := aBitset.Equals(bBitset); ok {
		t.Error("bitsets with different bits should not be equal")
	}
}

func TestBitSetTypeMismatch(t *testing.T) {
	setupRedisClient(t)
	memBitset := NewBitSetMem(16)
	redisBitset, _ := NewBitSetRedis(16)
	if _, err := memBitset.Equals(redisBitset); err == nil {
		t.Error("comparing a mem bitset against a redis bitset should error out")
	}
	if _, err := redisBitset.Equals(memBitset); err == nil {
		t.Error("comparing a redis bitset against a mem bitset should error out")
	}
}
