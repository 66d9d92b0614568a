package core

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// SetupLogging installs the default logger: tinted, timestamped,
// writing to stderr so stdout stays reserved for machine-readable
// output. Verbosity 0 logs info and up, anything higher adds debug.
func SetupLogging(verbose int) {
	level := slog.LevelInfo
	if verbose > 0 {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
	})

	slog.SetDefault(slog.New(handler))
}
