package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis-backed response cache for the expensive read-only aggregations.
// The whole package is optional: when REDIS_ADDR is unset every call is a
// no-op and handlers hit the store directly.

var client *redis.Client

// Init connects the package-level client. Returns the ping error without
// setting the client, so a bad Redis never takes the API down.
func Init(addr, password string, db int) error {
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		return err
	}

	client = c
	log.Println("✅ Successfully connected to Redis cache")
	return nil
}

// Enabled reports whether a cache client is connected.
func Enabled() bool {
	return client != nil
}

// Get returns the cached value and whether it was present.
func Get(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	val, err := client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("⚠️ Cache get %s failed: %v", key, err)
		return nil, false
	}
	return val, true
}

// Set stores a value with a TTL. Failures are logged and swallowed.
func Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	if err := client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("⚠️ Cache set %s failed: %v", key, err)
	}
}

// Delete drops a key, used when a write invalidates a cached aggregate.
func Delete(ctx context.Context, key string) {
	if client == nil {
		return
	}
	if err := client.Del(ctx, key).Err(); err != nil {
		log.Printf("⚠️ Cache delete %s failed: %v", key, err)
	}
}
