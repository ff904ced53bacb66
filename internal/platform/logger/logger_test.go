package logger_test

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/addok/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"DEBUG", slog.LevelDebug, true},
		{"Info", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := logger.ParseLevel(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantOK, ok)
		})
	}
}

func TestSetup(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	t.Run("json output respects level", func(t *testing.T) {
		var buf logger.Buffer
		log, err := logger.Setup(logger.Config{Level: "warn"}, &buf)
		require.NoError(t, err)

		log.Info("hidden")
		log.Warn("shown", "key", "value")

		entries, err := buf.Entries()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "shown", entries[0]["msg"])
		assert.Equal(t, "value", entries[0]["key"])
		assert.Same(t, log, slog.Default())
	})

	t.Run("text output", func(t *testing.T) {
		var buf logger.Buffer
		log, err := logger.Setup(logger.Config{Level: "info", Format: "text"}, &buf)
		require.NoError(t, err)

		log.Info("hello")
		assert.True(t, strings.Contains(buf.String(), "msg=hello"))
	})

	t.Run("unknown level falls back to info with a warning", func(t *testing.T) {
		var buf logger.Buffer
		log, err := logger.Setup(logger.Config{Level: "loud"}, &buf)
		require.NoError(t, err)

		log.Debug("hidden")
		log.Info("shown")
		assert.Equal(t, []string{"invalid log level configured, using default level", "shown"}, buf.Messages())
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf logger.Buffer
		_, err := logger.Setup(logger.Config{Format: "xml"}, &buf)
		assert.Error(t, err)
	})
}
