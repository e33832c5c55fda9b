package pgsql

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rahmannascenia/accountingbolt/internal/middleware"
)

// BaseRepository provides the shared pgx pool and request-scoped logging
// helpers for the concrete repositories.
type BaseRepository struct {
	pool *pgxpool.Pool
}

func newBaseRepository(pool *pgxpool.Pool) BaseRepository {
	return BaseRepository{pool: pool}
}

func (r *BaseRepository) logger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}
