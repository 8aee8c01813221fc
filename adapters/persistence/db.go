package persistence

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-hub/internal/config"
	"github.com/khoahotran/portfolio-hub/pkg/apperror"
	"github.com/khoahotran/portfolio-hub/pkg/auth"
	"github.com/khoahotran/portfolio-hub/pkg/logger"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// NewPostgresPool opens the pool behind backend.url. A URL pgx cannot parse is
// a configuration error; a server that does not answer is a Transport error.
func NewPostgresPool(ctx context.Context, cfg config.Config, log logger.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Backend.URL)
	if err != nil {
		return nil, apperror.NewAppError(apperror.ErrConfig, "Invalid backend URL", "backend.url", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, apperror.NewTransport("create postgres pool", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, apperror.NewTransport("ping postgres", err)
	}

	log.Info("PostgreSQL connected",
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("database", poolCfg.ConnConfig.Database),
		zap.Int32("max_conns", poolCfg.MaxConns),
	)
	return pool, nil
}

// withViewer runs fn in a transaction with app.user_id set to the caller, so
// the row-level policies on profiles see who is asking. Anonymous callers run
// without it and the policies reject their writes.
func withViewer(ctx context.Context, db DBTX, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		if userID, ok := auth.UserIDFromContext(ctx); ok {
			if _, err := tx.Exec(ctx, `SELECT set_config('app.user_id', $1, true)`, userID.String()); err != nil {
				return err
			}
		}
		return fn(tx)
	})
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// readAs binds a signed-in caller the same way withViewer does. Anonymous
// reads have nothing to bind and go straight to db.
func readAs(ctx context.Context, db DBTX, fn func(q querier) error) error {
	if _, ok := auth.UserIDFromContext(ctx); !ok {
		return fn(db)
	}
	return withViewer(ctx, db, func(tx pgx.Tx) error { return fn(tx) })
}
