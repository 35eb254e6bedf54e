package testutil

import (
	"io"
	"log/slog"
)

// NopLogger hands out a logger wired to io.Discard, keeping engine and
// handler log lines out of test output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
