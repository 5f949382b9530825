package infra

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/registra-api/registra/internal/config"
	"github.com/registra-api/registra/internal/retry"
)

const (
	dialAttempts = 3
	dialDelay    = 3 * time.Second
)

// Connect configures and returns a PostgreSQL connection pool, verifying
// connectivity before handing it back.
func Connect(ctx context.Context, cfg config.Database) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	poolCfg.MaxConns = cfg.PoolMax
	poolCfg.MinConns = cfg.PoolMin
	poolCfg.MaxConnIdleTime = cfg.IdleTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

// Manager owns the shared connection pool handle. The handle is dialed
// lazily, health-checked on every acquisition, and replaced when it reports
// itself disconnected. Dialing is bounded by a fixed-backoff retry policy.
type Manager struct {
	mu        sync.Mutex
	pool      *pgxpool.Pool
	policy    retry.Policy
	logger    *slog.Logger
	dial      func(ctx context.Context) (*pgxpool.Pool, error)
	onConnect func(ctx context.Context, pool *pgxpool.Pool) error
}

// NewManager builds a pool manager for the given database settings. The
// optional onConnect hook runs after every successful (re)establishment;
// the service uses it to apply schema migrations.
func NewManager(cfg config.Database, logger *slog.Logger, onConnect func(ctx context.Context, pool *pgxpool.Pool) error) *Manager {
	return &Manager{
		policy:    retry.Policy{Attempts: dialAttempts, Delay: dialDelay},
		logger:    logger,
		dial:      func(ctx context.Context) (*pgxpool.Pool, error) { return Connect(ctx, cfg) },
		onConnect: onConnect,
	}
}

// Acquire returns the shared pool handle, establishing it first if needed.
// Safe to call from concurrent request handlers; re-acquiring a healthy pool
// is a no-op.
func (m *Manager) Acquire(ctx context.Context) (*pgxpool.Pool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pool != nil {
		if err := m.pool.Ping(ctx); err == nil {
			return m.pool, nil
		}
		m.logger.Warn("database pool disconnected, discarding handle")
		m.pool.Close()
		m.pool = nil
	}

	var pool *pgxpool.Pool
	err := m.policy.Do(ctx, func(ctx context.Context) error {
		p, err := m.dial(ctx)
		if err != nil {
			m.logger.Warn("database dial failed", "error", err)
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("establish database pool: %w", err)
	}

	if m.onConnect != nil {
		if err := m.onConnect(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("on-connect hook: %w", err)
		}
	}

	m.pool = pool
	m.logger.Info("database pool established")
	return m.pool, nil
}

// Close releases the cached pool handle if one exists.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pool != nil {
		m.pool.Close()
		m.pool = nil
	}
}
