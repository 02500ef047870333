// Package context carries per-request values between the echo middleware chain,
// handlers and usecases.
package context

import (
	"context"
	"log/slog"

	"checklist/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is echoed back on every response.
const HeaderXRequestID = "X-Request-Id"

type key string

const (
	keyRequestID key = "request_id"
	keyIdentity  key = "identity"
	keyLogger    key = "logger"
)

// SetRequestID records the request ID on echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(keyRequestID), requestID)
}

// GetRequestID returns the ID set by the request-id middleware, or "" outside it.
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(string(keyRequestID)).(string)

	return id
}

// SetIdentity attaches the authorized identity. Its credential must already be stripped.
func SetIdentity(c echo.Context, identity *entity.Identity) {
	c.Set(string(keyIdentity), identity)
}

// GetIdentity returns the identity attached by the access guard, if any.
func GetIdentity(c echo.Context) (*entity.Identity, bool) {
	identity, ok := c.Get(string(keyIdentity)).(*entity.Identity)
	if !ok || identity == nil {
		return nil, false
	}

	return identity, true
}

// WithLogger returns ctx carrying a request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// GetLoggerOrDefault returns the request-scoped logger, falling back when ctx has none.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(keyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}
