// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"walegrills/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionClient stores checkout and meal sessions.
	SessionClient *redis.Client
	// CacheClient caches catalog listings and distance lookups.
	CacheClient *redis.Client
)

func newClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitSessionStore initializes the Redis client used for checkout sessions.
func InitSessionStore() {
	SessionClient = newClient(config.AppConfig.RedisSessionDB, "Sessions")
}

// GetSessionClient returns the session client.
func GetSessionClient() *redis.Client {
	if SessionClient == nil {
		InitSessionStore()
	}
	return SessionClient
}

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = newClient(config.AppConfig.RedisCacheDB, "Cache")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// SessionTTL returns the configured session lifetime.
func SessionTTL() time.Duration {
	if config.AppConfig.SessionTTLMins <= 0 {
		return DefaultSessionTTL
	}
	return time.Duration(config.AppConfig.SessionTTLMins) * time.Minute
}
