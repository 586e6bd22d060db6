package handler

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/saasbilling/pkg/clientip"
	"github.com/dmitrymomot/saasbilling/pkg/logger"
)

// NewErrorHandler logs the failure and renders the JSON error envelope.
// Client errors log at warn, everything else at error.
func NewErrorHandler(log *slog.Logger, component string) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx Context, err error) {
		r := ctx.Request()
		status := StatusOf(err)

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(ctx, level, "request failed",
			logger.Component(component),
			logger.Error(err),
			slog.Int("status", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("client_ip", clientip.FromRequest(r)),
		)

		_ = JSONError(err).Render(ctx.ResponseWriter(), r)
	}
}
