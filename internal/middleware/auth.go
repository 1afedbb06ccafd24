package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/lucid-hq/lucid-api/internal/auth"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// Authenticate returns a Huma middleware that resolves the Authorization
// bearer token to a user and attaches it to the request context. Requests
// without a valid token are rejected with 401.
func Authenticate(
	api huma.API,
	authenticator auth.Authenticator,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if isPublic(ctx) {
			next(ctx)

			return
		}

		header := ctx.Header("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized,
				"missing or invalid Authorization header")

			return
		}

		token := strings.TrimPrefix(header, bearerPrefix)

		user, err := authenticator.Authenticate(ctx.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				_ = huma.WriteErr(api, ctx, http.StatusUnauthorized,
					"invalid or expired token")

				return
			}

			logger.Error("token lookup failed", zap.Error(err))
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError,
				"internal server error", err)

			return
		}

		newCtx := auth.ContextWithUser(ctx.Context(), user)
		next(huma.WithContext(ctx, newCtx))
	}
}
