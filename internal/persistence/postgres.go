package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/aastha-chatbot/internal/config"
)

// Postgres wraps access to a pgx connection pool.
type Postgres struct {
	Pool *pgxpool.Pool
}

// DatabaseInfo describes the connected server and pool.
type DatabaseInfo struct {
	Connected         bool   `json:"connected"`
	DatabaseName      string `json:"database_name,omitempty"`
	User              string `json:"user,omitempty"`
	Version           string `json:"version,omitempty"`
	ActiveConnections int64  `json:"active_connections"`
	PoolMaxSize       int32  `json:"pool_max_size,omitempty"`
	PoolMinSize       int32  `json:"pool_min_size,omitempty"`
	PoolCurrentSize   int32  `json:"pool_current_size"`
	Error             string `json:"error,omitempty"`
}

// NewPostgres establishes a connection pool when DSN is provided.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	if cfg.DSN == "" {
		logger.Warn("DATABASE_URL not provided; ticket lookups will report the database as unavailable")
		return &Postgres{Pool: nil}, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	pg := &Postgres{Pool: pool}
	info := pg.Info(ctx)
	logger.Info("connected to postgres",
		zap.String("database", info.DatabaseName),
		zap.String("version", shortVersion(info.Version)),
	)
	return pg, nil
}

// Connected reports whether a pool was configured.
func (p *Postgres) Connected() bool {
	return p != nil && p.Pool != nil
}

// Ping verifies database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	if !p.Connected() {
		return errors.New("postgres pool not configured")
	}
	return p.Pool.Ping(ctx)
}

// Info gathers server and pool details. Failures are reported in the result.
func (p *Postgres) Info(ctx context.Context) DatabaseInfo {
	if !p.Connected() {
		return DatabaseInfo{Connected: false}
	}

	info := DatabaseInfo{Connected: true}
	err := p.Pool.QueryRow(ctx, `SELECT current_database(), current_user, version()`).
		Scan(&info.DatabaseName, &info.User, &info.Version)
	if err != nil {
		return DatabaseInfo{Connected: false, Error: err.Error()}
	}

	// pg_stat_activity may be restricted for the application role
	_ = p.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM pg_stat_activity WHERE state = 'active'`).
		Scan(&info.ActiveConnections)

	stat := p.Pool.Stat()
	info.PoolMaxSize = stat.MaxConns()
	info.PoolMinSize = p.Pool.Config().MinConns
	info.PoolCurrentSize = stat.TotalConns()
	return info
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}

// PoolHandle returns the underlying pgx pool.
func (p *Postgres) PoolHandle() *pgxpool.Pool {
	if p == nil {
		return nil
	}
	return p.Pool
}

func shortVersion(v string) string {
	if i := strings.IndexByte(v, ','); i > 0 {
		return v[:i]
	}
	return v
}
