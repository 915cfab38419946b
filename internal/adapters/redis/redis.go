package redis

import (
	"context"
	"time"

	"ewaste-lifecycle-service/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewClient builds the client backing the auction expiry schedule. The
// scheduler issues small sorted-set commands on a tight tick, so timeouts
// stay short and the pool stays small.
func NewClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     5,
		MaxRetries:   2,
	})
}

// PingRedis verifies the connection before the scheduler starts; a dead
// schedule store should fail startup, not the first expiry tick
func PingRedis(client *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return client.Ping(ctx).Err()
}
