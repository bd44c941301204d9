package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitorsdevstuff/file-energy/pkg/logger"
)

// Размеры пула по умолчанию, когда конфигурация их не задает
const (
	defaultMaxConns = 10
	defaultMinConns = 2
)

// Config параметры подключения к PostgreSQL
type Config struct {
	DSN      string
	MaxConns int32
	MinConns int32
}

// NewConnection создает пул соединений с PostgreSQL и проверяет его пингом
func NewConnection(ctx context.Context, cfg Config, log *logger.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	if poolConfig.MaxConns <= 0 {
		poolConfig.MaxConns = defaultMaxConns
	}
	poolConfig.MinConns = cfg.MinConns
	if poolConfig.MinConns <= 0 || poolConfig.MinConns > poolConfig.MaxConns {
		poolConfig.MinConns = defaultMinConns
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	log.Infow("Connecting to PostgreSQL",
		"max_conns", poolConfig.MaxConns, "min_conns", poolConfig.MinConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	log.Infow("Successfully connected to PostgreSQL")
	return pool, nil
}
