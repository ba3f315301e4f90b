package resthandlers

import (
	"log/slog"
	"time"

	"github.com/avoltra/restkit/rest"
)

// AccessLogConfig configures the AccessLog handler behaviour.
type AccessLogConfig struct {
	// Logger receives the access log records. Defaults to slog.Default.
	Logger *slog.Logger
}

// AccessLog returns a handler that logs one structured record per
// request after the rest of the chain has run. Requests halted by a
// handler that never called its continuation are logged with a zero
// status.
func AccessLog(cfg AccessLogConfig) rest.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(req *rest.Request, res *rest.Response, next func()) {
		next()

		logger.LogAttrs(req.Context(), slog.LevelInfo, "request",
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.Int("status", res.Status()),
			slog.Duration("duration", time.Since(req.Start)),
			slog.String("requestId", req.ID),
		)
	}
}
