package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConnectRedis returns nil when Redis cannot be reached. Callers that only cache
// tolerate a nil client; the cart store does not and main refuses to start.
func ConnectRedis(ctx context.Context, cfg *Config, log *zap.Logger) *redis.Client {
	var opt *redis.Options
	if cfg.RedisURL != "" {
		parsedOpt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Warn("Failed to parse Redis URL", zap.Error(err))
			return nil
		}
		opt = parsedOpt
	} else {
		opt = &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		}
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis connection failed", zap.Error(err))
		client.Close()
		return nil
	}

	log.Info("Redis connected", zap.String("addr", opt.Addr))
	return client
}
