package redis

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/SidS12345/Family-Connections/internal/config"
	"github.com/SidS12345/Family-Connections/pkg/errorx"
)

// Init connects to Redis and returns the cache. It returns (nil, nil) when no
// host is configured, which callers treat as "caching disabled".
func Init(ctx context.Context, cfg *config.RedisConfig) (*RedisCache, *redis.Client, error) {
	if cfg.Host == "" {
		return nil, nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.Db,
		PoolSize:     50,
		MinIdleConns: cfg.WorkerNum,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, errorx.Wrap(err, errorx.CodeCacheError, "redis ping")
	}
	return NewRedisCache(client, cfg.WorkerNum, cfg.TaskBuffer), client, nil
}
