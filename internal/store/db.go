package store

import (
	"context"
)

// DB is a live connection to the storage backend. It is implemented by
// *pgxpool.Pool.
type DB interface {
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases every connection held by the handle.
	Close()
}
