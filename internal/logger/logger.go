package logger

import (
	"io"
	"log/slog"
	"os"
)

const serviceName = "marketplace"

var output io.Writer = os.Stdout

// New creates the application slog.Logger writing JSON to stdout. Every
// record carries the service attribute so aggregated logs stay filterable.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", serviceName))
}
