package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/portfolio-hub/internal/config"
	"github.com/khoahotran/portfolio-hub/pkg/logger"
)

// Store owns the process-wide connections. Build it once in main, pass it
// down, and Close it on shutdown.
type Store struct {
	Pool  *pgxpool.Pool
	Redis *redis.Client
	log   logger.Logger
}

// OpenStore validates the configuration before dialing anything, so a
// placeholder URL or key fails here rather than on the first request.
func OpenStore(ctx context.Context, cfg config.Config, log logger.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := NewPostgresPool(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	rdb, err := NewRedisClient(ctx, cfg, log)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &Store{Pool: pool, Redis: rdb, log: log}, nil
}

func (s *Store) Close() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.log.Error("Failed to close Redis client", err)
		}
	}
	if s.Pool != nil {
		s.Pool.Close()
	}
	s.log.Info("Store connections closed.")
}
