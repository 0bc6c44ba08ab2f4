package shared

import (
	"io"
	"log/slog"
	"os"
)

// SetupLogger installs the process-wide slog logger. Production gets JSON,
// everything else the human readable text handler.
func SetupLogger(config *ServiceConfig) *slog.Logger {
	return setupLogger(os.Stderr, config)
}

func setupLogger(w io.Writer, config *ServiceConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(GetLogLevel(config))}

	var handler slog.Handler
	if IsProduction(config) {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler).With("service", config.ServiceName)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
