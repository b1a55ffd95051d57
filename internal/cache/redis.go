// Package cache provides the Redis client and small cache-aside helpers.
// Every helper is a no-op when Redis is unavailable; the API works without it.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

// InitRedis connects to Redis at addr. On failure the client stays nil and
// all cache operations fall through to their sources.
func InitRedis(addr string) {
	Client = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without cache)", err)
		Client = nil
	} else {
		log.Println("Redis connected successfully")
	}
}

// GetClient returns the shared Redis client, or nil when unavailable.
func GetClient() *redis.Client {
	return Client
}

// Close releases the Redis connection if one was established.
func Close() {
	if Client != nil {
		if err := Client.Close(); err != nil {
			log.Printf("error closing redis: %v", err)
		}
		Client = nil
	}
}
