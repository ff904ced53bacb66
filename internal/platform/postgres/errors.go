package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/addok/internal/store"
)

// PostgreSQL error codes
const (
	// invalidPasswordCode is returned when password authentication fails
	invalidPasswordCode = "28P01"

	// invalidAuthorizationCode is returned when the role may not connect
	invalidAuthorizationCode = "28000"

	// invalidCatalogNameCode is returned when the database does not exist
	invalidCatalogNameCode = "3D000"

	// cannotConnectNowCode is returned while the server is starting or
	// shutting down
	cannotConnectNowCode = "57P03"
)

// MapError maps a driver error to the matching store error, wrapping the
// original to keep its detail.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case invalidPasswordCode, invalidAuthorizationCode:
			return fmt.Errorf("%w: %w", store.ErrAuthFailed, err)
		case invalidCatalogNameCode:
			return fmt.Errorf("%w: %w", store.ErrUnknownDatabase, err)
		case cannotConnectNowCode:
			return fmt.Errorf("%w: %w", store.ErrUnreachable, err)
		}
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", store.ErrUnreachable, err)
	}

	return err
}

// IsAuthFailure checks if the error is a PostgreSQL authentication failure.
func IsAuthFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		(pgErr.Code == invalidPasswordCode || pgErr.Code == invalidAuthorizationCode)
}
