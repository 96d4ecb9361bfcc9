package database

import (
	"context"
	"log"
	"time"

	"loanlink/config"

	"github.com/redis/go-redis/v9"
)

// Redis is the global cache client. Nil when REDIS_ADDR is not configured;
// callers must treat a nil client as "no cache".
var Redis *redis.Client

// ConnectRedis opens the role-cache connection. The cache is optional:
// a missing or unreachable Redis only disables caching, it never blocks startup.
func ConnectRedis() {
	if config.AppConfig.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, role cache disabled.")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr: config.AppConfig.RedisAddr,
		DB:   config.AppConfig.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable at %s, role cache disabled: %v", config.AppConfig.RedisAddr, err)
		return
	}

	Redis = client
	log.Printf("Connected to Redis at %s", config.AppConfig.RedisAddr)
}
