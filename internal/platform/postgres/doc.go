// Package postgres connects addok to its PostgreSQL storage backend.
//
// The Connector turns the STORAGE settings into a pgxpool.Pool, which is
// published under the DB setting once configuration loading completes.
// MapError translates driver errors into the store package's sentinels.
package postgres
