package helpers

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions describes one Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	UseTLS   bool
}

// NewRedisClient builds a client without contacting the server.
func NewRedisClient(o RedisOptions) *redis.Client {
	opts := &redis.Options{
		Addr:     o.Addr,
		Password: o.Password,
		DB:       o.DB,
	}
	if o.UseTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(opts)
}

// ConnectRedis builds a client and pings it within timeout. On failure the
// client is closed and nil is returned.
func ConnectRedis(ctx context.Context, o RedisOptions, timeout time.Duration) (*redis.Client, error) {
	rdb := NewRedisClient(o)
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", o.Addr, err)
	}
	return rdb, nil
}
