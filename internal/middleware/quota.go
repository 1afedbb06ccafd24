package middleware

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/lucid-hq/lucid-api/internal/auth"
	"github.com/lucid-hq/lucid-api/internal/quota"
	"go.uber.org/zap"
)

// AdmissionGate is the one operation the request path needs from the quota
// subsystem.
type AdmissionGate interface {
	Admit(principal, plan string, now time.Time) (quota.Result, error)
}

// Quota returns a Huma middleware enforcing per-user rate limits via the
// admission gate. Allowed requests carry the minute window's limit state in
// X-RateLimit headers; denials answer 429 with Retry-After. A request without
// an authenticated user is rejected: the gate never silently admits.
func Quota(
	api huma.API,
	gate AdmissionGate,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if isPublic(ctx) {
			next(ctx)

			return
		}

		user, ok := auth.UserFromContext(ctx.Context())
		if !ok {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized,
				"authentication required for rate limiting")

			return
		}

		now := time.Now()

		res, err := gate.Admit(user.ID, user.Plan, now)
		if err != nil {
			if errors.Is(err, quota.ErrUnknownPlan) {
				// Upstream misconfiguration, not load. Logged so operators
				// can tell the two apart.
				logger.Warn("unknown plan on admission",
					zap.String("userId", user.ID),
					zap.String("plan", user.Plan),
				)
				_ = huma.WriteErr(api, ctx, http.StatusForbidden, "invalid plan")

				return
			}

			logger.Error("admission check failed", zap.Error(err))
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError,
				"internal server error", err)

			return
		}

		setRateLimitHeaders(ctx, res, now)

		if !res.Allowed {
			logger.Debug("rate limit exceeded",
				zap.String("userId", user.ID),
				zap.String("plan", user.Plan),
				zap.String("scope", string(res.Scope)),
				zap.Int64("limit", res.Limit),
			)

			msg := "rate limit exceeded"
			if res.Scope == quota.ScopeDay {
				msg = "daily rate limit exceeded"
			}

			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, msg)

			return
		}

		next(ctx)
	}
}

func setRateLimitHeaders(ctx huma.Context, res quota.Result, now time.Time) {
	ctx.SetHeader("X-RateLimit-Limit", fmt.Sprintf("%d", res.Limit))
	ctx.SetHeader("X-RateLimit-Remaining", fmt.Sprintf("%d", res.Remaining))
	ctx.SetHeader("X-RateLimit-Reset", fmt.Sprintf("%d", res.ResetAt.Unix()))

	if !res.Allowed {
		retryAfter := int64(math.Ceil(res.ResetAt.Sub(now).Seconds()))
		if retryAfter < 0 {
			retryAfter = 0
		}

		ctx.SetHeader("Retry-After", fmt.Sprintf("%d", retryAfter))
	}
}
