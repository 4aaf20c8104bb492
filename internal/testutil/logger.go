package testutil

import (
	"io"

	"github.com/dtroode/provider-server/internal/logger"
)

// MakeNoopLogger returns a logger that discards all output.
func MakeNoopLogger() *logger.Logger {
	return logger.NewWithOutput(io.Discard, 0)
}
