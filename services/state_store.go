package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// KV is the narrow local store the engine keeps hot state in: streak
// snapshots live under namespaced keys. Get returns (nil, nil) when
// the key is absent.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

func streakKey(userID uint) string {
	return fmt.Sprintf("sugarreset:streak:%d", userID)
}

// RedisKV backs the KV store with Redis.
type RedisKV struct {
	rdb *redis.Client
}

func NewRedisKV(rdb *redis.Client) *RedisKV {
	return &RedisKV{rdb: rdb}
}

func (kv *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := kv.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (kv *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	return kv.rdb.Set(ctx, key, value, 0).Err()
}

func (kv *RedisKV) Remove(ctx context.Context, key string) error {
	return kv.rdb.Del(ctx, key).Err()
}

// MemoryKV is the in-process fallback used when Redis is not configured
// and in tests.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (kv *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()
	val, ok := kv.data[key]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(val))
	copy(cp, val)
	return cp, nil
}

func (kv *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	kv.data[key] = cp
	return nil
}

func (kv *MemoryKV) Remove(_ context.Context, key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.data, key)
	return nil
}
