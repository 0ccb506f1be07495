package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis backs the catalog cache and the email job queues. The worker pool's
// BRPOP consumers hold connections for long stretches, so the pool is sized
// above the default worker count.
const (
	redisPoolSize     = 20
	redisMinIdleConns = 2
	redisDialTimeout  = 5 * time.Second
)

// NewRedis creates and validates a go-redis client connection.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	opts.PoolSize = redisPoolSize
	opts.MinIdleConns = redisMinIdleConns
	opts.DialTimeout = redisDialTimeout

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
