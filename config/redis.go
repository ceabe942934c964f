package config

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis opens the read-model cache client. Returns nil when
// REDIS_ADDR is unset or unreachable; the cache layer treats a nil
// client as a no-op.
func ConnectRedis() *redis.Client {
	addr := envOrDefault("REDIS_ADDR", "")
	if addr == "" {
		log.Println("REDIS_ADDR not set; read-model cache disabled")
		return nil
	}

	db, _ := strconv.Atoi(envOrDefault("REDIS_DB", "0"))
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: envOrDefault("REDIS_PASSWORD", ""),
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("warning: redis ping failed (%v); read-model cache disabled", err)
		return nil
	}
	return client
}
