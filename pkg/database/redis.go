package database

import (
	"context"
	"time"

	"hotel-reservation/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// InitRedis connects the cache client. Returns nil when no address is
// configured or the server is unreachable; callers treat nil as
// caching disabled.
func InitRedis(config utils.RedisConfig, log *zap.Logger) *redis.Client {
	if config.Addr == "" {
		log.Info("Redis not configured, caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, caching disabled",
			zap.String("addr", config.Addr),
			zap.Error(err))
		client.Close()
		return nil
	}

	log.Info("Redis connected", zap.String("addr", config.Addr))
	return client
}
