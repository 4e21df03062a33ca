package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ptcgsim/ptcg-server-go/internal/config"
)

// DB wraps the pgx connection pool shared by all repositories.
type DB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewDB connects to PostgreSQL and verifies the connection with a ping.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{pool: pool, logger: logger}, nil
}

// Pool exposes the underlying pool for ad-hoc queries.
func (db *DB) Pool() *pgxpool.Pool { return db.pool }

// Stats returns connection pool statistics.
func (db *DB) Stats() *pgxpool.Stat { return db.pool.Stat() }

// Close releases all pooled connections.
func (db *DB) Close() { db.pool.Close() }
