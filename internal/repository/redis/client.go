package redis

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens a client and checks it with a ping. Callers treat an error as
// "run without Redis"; the returned client is already closed in that case.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		log.Printf("[REDIS] Warning: Could not connect to Redis at %s: %v. Live boards will not be cached.", addr, err)
		return nil, err
	}

	log.Println("[REDIS] Connected successfully")
	return client, nil
}

// RedisCache acts as a wrapper around redis.Client for the game service's
// CacheRepository.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Set stores a key-value pair with expiration
func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value by key. A missing key is reported as an error that
// satisfies IsMiss.
func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *RedisCache) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}
