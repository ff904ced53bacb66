package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/phrazzld/addok/internal/config"
	"github.com/phrazzld/addok/internal/redact"
	"github.com/phrazzld/addok/internal/store"
)

// Connector opens pgx connection pools from STORAGE settings.
type Connector struct {
	logger *slog.Logger

	// Verify pings the backend before returning the pool. Without it the
	// pool connects lazily on first use.
	Verify bool
}

// NewConnector creates a Connector.
func NewConnector(logger *slog.Logger, verify bool) *Connector {
	return &Connector{
		logger: logger.With("component", "postgres_connector"),
		Verify: verify,
	}
}

// PoolConfig builds the pool configuration for s. Zero values keep the pgx
// defaults.
func PoolConfig(s config.StorageSettings) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(s.URL)
	if err != nil {
		return nil, store.NewStoreError("connect", "parsing storage url: "+redact.Error(err), store.ErrInvalidSettings)
	}
	if s.MaxConns > 0 {
		poolCfg.MaxConns = s.MaxConns
	}
	if s.MinConns > 0 {
		poolCfg.MinConns = s.MinConns
	}
	if s.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = s.ConnectTimeout
	}
	return poolCfg, nil
}

// Connect opens a pool for s.
func (c *Connector) Connect(ctx context.Context, s config.StorageSettings) (store.DB, error) {
	poolCfg, err := PoolConfig(s)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, store.NewStoreError("connect", "creating pool", MapError(err))
	}

	if c.Verify {
		pingCtx := ctx
		if s.ConnectTimeout > 0 {
			var cancel context.CancelFunc
			pingCtx, cancel = context.WithTimeout(ctx, s.ConnectTimeout)
			defer cancel()
		}
		if err := pool.Ping(pingCtx); err != nil {
			pool.Close()
			return nil, store.NewStoreError("ping", redact.URL(s.URL), MapError(err))
		}
	}

	c.logger.Info("storage connection established",
		"url", redact.URL(s.URL),
		"max_conns", poolCfg.MaxConns,
		"verified", c.Verify)
	return pool, nil
}
