package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that drops everything. Service
// constructors require a logger; tests have no use for the output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
