package adapter

import (
	"os"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds the client used by the redisstream transport.
// REDIS_ADDR overrides the default local address.
func NewRedisClient() redis.UniversalClient {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
	})
}
