package middleware

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jaevor/go-nanoid"
	"github.com/lucid-hq/lucid-api/internal/handlers"
)

const requestIDLength = 12

// RequestMeta is a middleware that tags each request with a short request id
// and captures client IP and user agent for downstream analytics events.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	newRequestID, _ := nanoid.Standard(requestIDLength)

	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMeta{
			RequestID: newRequestID(),
			ClientIP:  extractClientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
		}

		ctx.SetHeader("X-Request-Id", meta.RequestID)

		newCtx := handlers.ContextWithRequestMeta(ctx.Context(), meta)
		next(huma.WithContext(ctx, newCtx))
	}
}

func extractClientIP(ctx huma.Context) string {
	// X-Forwarded-For may carry multiple IPs; the first is the client.
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	host := ctx.Host()
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		return host[:idx]
	}

	return host
}
