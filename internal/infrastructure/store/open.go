// Package store selects the key/value backend named by STORE_DRIVER.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-profile-manager/config"
	"github.com/oksasatya/go-profile-manager/internal/domain/repository"
	"github.com/oksasatya/go-profile-manager/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-profile-manager/internal/infrastructure/postgres"
	"github.com/oksasatya/go-profile-manager/internal/infrastructure/redisstore"
	"github.com/oksasatya/go-profile-manager/internal/infrastructure/sqlite"
)

var ErrRedisRequired = errors.New("redis client not configured")

// Open builds the configured backend. The returned func releases it.
func Open(ctx context.Context, cfg *config.Config, rdb *redis.Client, logger *logrus.Logger) (repository.KVStore, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return memory.NewKVStore(cfg.MemoryQuotaBytes), func() {}, nil
	case config.DriverSQLite:
		s, err := sqlite.NewKVStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.WithField("path", s.Path()).Info("using sqlite store")
		return s, func() { _ = s.Close() }, nil
	case config.DriverPostgres:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
			MaxConns:    cfg.DBMaxConns,
			MinConns:    cfg.DBMinConns,
			MaxConnLife: cfg.DBMaxConnLife,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		return pginfra.NewKVStore(pool), pool.Close, nil
	case config.DriverRedis:
		if rdb == nil {
			return nil, nil, ErrRedisRequired
		}
		return redisstore.NewKVStore(rdb, cfg.RedisKeyPrefix), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
