package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. JSON output so log
// pipelines can index request_id and carer_id fields.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
