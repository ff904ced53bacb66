package testutils

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/phrazzld/addok/internal/config"
	"github.com/phrazzld/addok/internal/store"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FakeDB is a storage handle that never touches the network.
type FakeDB struct {
	PingErr error

	mu     sync.Mutex
	closed bool
}

// Ping implements store.DB.
func (f *FakeDB) Ping(context.Context) error { return f.PingErr }

// Close implements store.DB.
func (f *FakeDB) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

// Closed reports whether Close was called.
func (f *FakeDB) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// FakeConnector records the settings it is asked to connect with.
type FakeConnector struct {
	Err error
	DB  *FakeDB

	mu    sync.Mutex
	calls []config.StorageSettings
}

// Connect returns DB, or Err when set.
func (f *FakeConnector) Connect(_ context.Context, s config.StorageSettings) (store.DB, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, s)
	if f.Err != nil {
		return nil, f.Err
	}
	if f.DB == nil {
		f.DB = &FakeDB{}
	}
	return f.DB, nil
}

// Calls returns the settings of every Connect call.
func (f *FakeConnector) Calls() []config.StorageSettings {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]config.StorageSettings(nil), f.calls...)
}
