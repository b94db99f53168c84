// File: utils/cache.go
package utils

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"yumres/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client.
var CacheClient *redis.Client

// InitCache initializes the generic Redis cache client (using DB from AppConfig for general caching).
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// GetOrSetJSON reads a JSON value from the cache into dest, calling produce
// and caching its result with the given TTL on a miss. A cache read or write
// failure falls back to the producer; only producer errors are returned.
func GetOrSetJSON(ctx context.Context, key string, ttl time.Duration, dest interface{}, produce func() (interface{}, error)) error {
	client := GetCacheClient()

	data, err := client.Get(ctx, key).Result()
	if err == nil {
		if unmarshalErr := json.Unmarshal([]byte(data), dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry; drop it and repopulate.
		client.Del(ctx, key)
	}

	value, err := produce()
	if err != nil {
		return err
	}

	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := client.Set(ctx, key, b, ttl).Err(); err != nil {
		GetLogger().Sugar().Warnf("cache: failed to set key %s: %v", key, err)
	}
	return json.Unmarshal(b, dest)
}

// InvalidateCache removes a cached entry.
func InvalidateCache(ctx context.Context, key string) error {
	return GetCacheClient().Del(ctx, key).Err()
}
