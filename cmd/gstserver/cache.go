package main

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/hoisie/redis"
)

type KeyNotFound struct {
	key string
}

func (e KeyNotFound) Error() string {
	return e.key + " " + "not found"
}

type KeyExpired struct {
	Key string
}

func (e KeyExpired) Error() string {
	return e.Key + " " + "expired"
}

type CacheIsFull struct{}

func (e CacheIsFull) Error() string {
	return "cache is full"
}

type SerializerError struct {
	err error
}

func (e SerializerError) Error() string {
	return fmt.Sprintf("serializer error: got %v", e.err)
}

type cacheEntry struct {
	Result queryResult
	Expire time.Time
}

// Cache caches GST query answers (sub/suf/enum) keyed by a digest of
// namespace+generation+op+payload, the same three-backend shape the
// teacher used to cache resolved DNS messages.
type Cache interface {
	Get(key string) (queryResult, error)
	Set(key string, result queryResult) error
	Exists(key string) bool
	Remove(key string) error
	Full() bool
}

type MemoryCache struct {
	Backend  map[string]cacheEntry
	Expire   time.Duration
	Maxcount int
	mu       sync.RWMutex
}

func NewMemoryCache(expire time.Duration, maxcount int) *MemoryCache {
	return &MemoryCache{
		Backend:  make(map[string]cacheEntry),
		Expire:   expire,
		Maxcount: maxcount,
	}
}

func (c *MemoryCache) Get(key string) (queryResult, error) {
	c.mu.RLock()
	entry, ok := c.Backend[key]
	c.mu.RUnlock()
	if !ok {
		return queryResult{}, KeyNotFound{key}
	}

	if entry.Expire.Before(time.Now()) {
		c.Remove(key)
		return queryResult{}, KeyExpired{key}
	}

	return entry.Result, nil
}

func (c *MemoryCache) Set(key string, result queryResult) error {
	if c.Full() && !c.Exists(key) {
		return CacheIsFull{}
	}

	entry := cacheEntry{Result: result, Expire: time.Now().Add(c.Expire)}
	c.mu.Lock()
	c.Backend[key] = entry
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Remove(key string) error {
	c.mu.Lock()
	delete(c.Backend, key)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Exists(key string) bool {
	c.mu.RLock()
	_, ok := c.Backend[key]
	c.mu.RUnlock()
	return ok
}

func (c *MemoryCache) Length() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.Backend)
}

func (c *MemoryCache) Full() bool {
	if c.Maxcount == 0 {
		return false
	}
	return c.Length() >= c.Maxcount
}

// Memcached-backed cache.

func NewMemcachedCache(servers []string, expire int32) *MemcachedCache {
	return &MemcachedCache{backend: memcache.New(servers...), expire: expire}
}

type MemcachedCache struct {
	backend *memcache.Client
	expire  int32
}

func (m *MemcachedCache) Set(key string, result queryResult) error {
	val, err := json.Marshal(result)
	if err != nil {
		return SerializerError{err}
	}
	return m.backend.Set(&memcache.Item{Key: key, Value: val, Expiration: m.expire})
}

func (m *MemcachedCache) Get(key string) (queryResult, error) {
	item, err := m.backend.Get(key)
	if err != nil {
		return queryResult{}, KeyNotFound{key}
	}
	var result queryResult
	if err := json.Unmarshal(item.Value, &result); err != nil {
		return queryResult{}, SerializerError{err}
	}
	return result, nil
}

func (m *MemcachedCache) Exists(key string) bool {
	_, err := m.backend.Get(key)
	return err == nil
}

func (m *MemcachedCache) Remove(key string) error {
	return m.backend.Delete(key)
}

func (m *MemcachedCache) Full() bool {
	return false
}

// Redis-backed cache.

func NewRedisCache(rs RedisSettings, expire int64) *RedisCache {
	rc := &redis.Client{Addr: rs.Addr(), Db: rs.DB, Password: rs.Password}
	return &RedisCache{Backend: rc, Expire: expire}
}

type RedisCache struct {
	Backend *redis.Client
	Expire  int64
}

func (r *RedisCache) Get(key string) (queryResult, error) {
	item, err := r.Backend.Get(key)
	if err != nil {
		return queryResult{}, KeyNotFound{key}
	}
	var result queryResult
	if err := json.Unmarshal(item, &result); err != nil {
		return queryResult{}, SerializerError{err}
	}
	return result, nil
}

func (r *RedisCache) Set(key string, result queryResult) error {
	val, err := json.Marshal(result)
	if err != nil {
		return SerializerError{err}
	}
	return r.Backend.Setex(key, r.Expire, val)
}

func (r *RedisCache) Exists(key string) bool {
	_, err := r.Backend.Get(key)
	return err == nil
}

func (r *RedisCache) Remove(key string) error {
	_, err := r.Backend.Del(key)
	return err
}

func (r *RedisCache) Full() bool {
	return false
}

// CacheKey hashes namespace+generation+op+payload the way the teacher
// hashed a DNS Question into a cache key. generation is the owning
// namespace's add-count: folding it in invalidates every previously
// cached sub/suf/enum answer for that namespace the instant a new
// string is added, without tracking or sweeping individual keys.
func CacheKey(namespace string, generation int, o op, payload []byte) string {
	h := md5.New()
	h.Write([]byte(namespace))
	fmt.Fprintf(h, ":%d:", generation)
	h.Write([]byte(o))
	h.Write(payload)
	return fmt.Sprintf("%x", h.Sum(nil))
}
