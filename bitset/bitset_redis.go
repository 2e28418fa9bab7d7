package bitset

import (
	"context"
	"fmt"

	"github.com/probkit/growbloom"
	"github.com/redis/go-redis/v9"
)

// BitSetRedis is a redis-backed implementation of IBitSet.
// _size_ is the number of bits in the bitset
// _key_ is the redis key against which the bitset value is stored
type BitSetRedis struct {
	size uint
	key  string
}

// NewBitSetRedis creates a new BitSetRedis of size _size_. The bitset is
// stored as a zeroed string value at a randomly generated key.
func NewBitSetRedis(size uint) (*BitSetRedis, error) {
	bytes := make([]byte, (size+7)/8)
	key := growbloom.GenerateRandomString(16)
	err := growbloom.GetRedisClient().Set(context.Background(), key, string(bytes), 0).Err()
	if err != nil {
		return nil, fmt.Errorf("growbloom: error while creating redis bitset: %v", err)
	}
	return &BitSetRedis{size, key}, nil
}

// Size returns the number of bits in the bitset
func (bitSet *BitSetRedis) Size() uint {
	return bitSet.size
}

// Key returns the redis key at which the bitset value is stored
func (bitSet *BitSetRedis) Key() string {
	return bitSet.key
}

// Has returns true if the bit is set at _index_, else false
func (bitSet *BitSetRedis) Has(index uint) (bool, error) {
	val, err := growbloom.GetRedisClient().GetBit(context.Background(), bitSet.key, int64(index)).Result()
	if err != nil {
		return false, err
	}
	return val != 0, nil
}

// HasMulti returns the set/unset state of every index in _indexes_
// using a single pipelined round trip
func (bitSet *BitSetRedis) HasMulti(indexes []uint) ([]bool, error) {
	if len(indexes) == 0 {
		return nil, fmt.Errorf("growbloom: at least 1 index is required")
	}
	pipe := growbloom.GetRedisClient().Pipeline()
	ctx := context.Background()
	values := make([]*redis.IntCmd, len(indexes))
	for i := range indexes {
		values[i] = pipe.GetBit(ctx, bitSet.key, int64(indexes[i]))
	}
	_, err := pipe.Exec(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]bool, len(values))
	for i := range values {
		result[i] = values[i].Val() != 0
	}
	return result, nil
}

// Insert sets the bit at _index_ and reports whether the bit was
// previously clear
func (bitSet *BitSetRedis) Insert(index uint) (bool, error) {
	prev, err := growbloom.GetRedisClient().SetBit(context.Background(), bitSet.key, int64(index), 1).Result()
	if err != nil {
		return false, err
	}
	return prev == 0, nil
}

// InsertMulti sets the bits at _indexes_ using a single pipelined round
// trip and returns the number of bits that were previously clear
func (bitSet *BitSetRedis) InsertMulti(indexes []uint) (uint, error) {
	if len(indexes) == 0 {
		return 0, fmt.Errorf("growbloom: at least 1 index is required")
	}
	pipe := growbloom.GetRedisClient().Pipeline()
	ctx := context.Background()
	values := make([]*redis.IntCmd, len(indexes))
	for i := range indexes {
		values[i] = pipe.SetBit(ctx, bitSet.key, int64(indexes[i]), 1)
	}
	_, err := pipe.Exec(ctx)
	if err != nil {
		return 0, err
	}
	var inserted uint
	for i := range values {
		if values[i].Val() == 0 {
			inserted++
		}
	}
	return inserted, nil
}

// BitCount returns the total number of set bits in the bitset
func (bitSet *BitSetRedis) BitCount() (uint, error) {
	count, err := growbloom.GetRedisClient().BitCount(context.Background(), bitSet.key, nil).Result()
	if err != nil {
		return 0, err
	}
	return uint(count), nil
}

// IsEmpty returns true if no bit in the bitset is set
func (bitSet *BitSetRedis) IsEmpty() (bool, error) {
	count, err := bitSet.BitCount()
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// Equals checks if two BitSetRedis' are equal
func (bitSet *BitSetRedis) Equals(otherBitSet IBitSet) (bool, error) {
	secondBitSet, ok := otherBitSet.(*BitSetRedis)
	if !ok {
		return false, fmt.Errorf("growbloom: invalid bitset type, should be BitSetRedis")
	}
	ctx := context.Background()
	first, err := growbloom.GetRedisClient().Get(ctx, bitSet.key).Result()
	if err != nil {
		return false, err
	}
	second, err := growbloom.GetRedisClient().Get(ctx, secondBitSet.key).Result()
	if err != nil {
		return false, err
	}
	return first == second, nil
}
