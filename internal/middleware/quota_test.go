package middleware_test

import (
	"errors"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/lucid-hq/lucid-api/internal/auth"
	"github.com/lucid-hq/lucid-api/internal/middleware"
	"github.com/lucid-hq/lucid-api/internal/quota"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type mockGate struct {
	result        quota.Result
	err           error
	lastPrincipal string
	lastPlan      string
}

func (m *mockGate) Admit(principal, plan string, _ time.Time) (quota.Result, error) {
	m.lastPrincipal = principal
	m.lastPlan = plan

	return m.result, m.err
}

func authedContext(plan string) *mockHumaContext {
	ctx := newMockHumaContext()
	ctx.ctx = auth.ContextWithUser(ctx.ctx, &auth.User{ID: "user-1", Email: "a@example.com", Plan: plan})

	return ctx
}

func TestQuota(t *testing.T) {
	t.Run("admits request and sets rate limit headers", func(t *testing.T) {
		api := newTestAPI()
		resetAt := time.Now().Add(30 * time.Second)
		gate := &mockGate{result: quota.Result{
			Allowed:   true,
			Scope:     quota.ScopeMinute,
			Limit:     30,
			Remaining: 29,
			ResetAt:   resetAt,
		}}
		mw := middleware.Quota(api, gate, zap.NewNop())

		ctx := authedContext("pro")

		nextCalled := false

		mw(ctx, func(_ huma.Context) {
			nextCalled = true
		})

		assert.True(t, nextCalled)
		assert.Equal(t, "user-1", gate.lastPrincipal)
		assert.Equal(t, "pro", gate.lastPlan)
		assert.Equal(t, "30", ctx.setHeaders["X-RateLimit-Limit"])
		assert.Equal(t, "29", ctx.setHeaders["X-RateLimit-Remaining"])
		assert.NotEmpty(t, ctx.setHeaders["X-RateLimit-Reset"])
		assert.Empty(t, ctx.setHeaders["Retry-After"])
	})

	t.Run("returns 429 with Retry-After on minute denial", func(t *testing.T) {
		api := newTestAPI()
		gate := &mockGate{result: quota.Result{
			Allowed:   false,
			Scope:     quota.ScopeMinute,
			Limit:     5,
			Remaining: 0,
			ResetAt:   time.Now().Add(42 * time.Second),
		}}
		mw := middleware.Quota(api, gate, zap.NewNop())

		ctx := authedContext("free")

		nextCalled := false

		mw(ctx, func(_ huma.Context) {
			nextCalled = true
		})

		assert.False(t, nextCalled)
		assert.Equal(t, 429, ctx.statusCode)
		assert.Contains(t, string(ctx.written), "rate limit exceeded")
		assert.Equal(t, "0", ctx.setHeaders["X-RateLimit-Remaining"])
		assert.NotEmpty(t, ctx.setHeaders["Retry-After"])
	})

	t.Run("names the daily limit on day denial", func(t *testing.T) {
		api := newTestAPI()
		gate := &mockGate{result: quota.Result{
			Allowed:   false,
			Scope:     quota.ScopeDay,
			Limit:     20,
			Remaining: 0,
			ResetAt:   time.Now().Add(5 * time.Hour),
		}}
		mw := middleware.Quota(api, gate, zap.NewNop())

		ctx := authedContext("free")

		mw(ctx, func(_ huma.Context) {})

		assert.Equal(t, 429, ctx.statusCode)
		assert.Contains(t, string(ctx.written), "daily rate limit exceeded")
	})

	t.Run("returns 401 without an authenticated user", func(t *testing.T) {
		api := newTestAPI()
		gate := &mockGate{result: quota.Result{Allowed: true}}
		mw := middleware.Quota(api, gate, zap.NewNop())

		ctx := newMockHumaContext()

		nextCalled := false

		mw(ctx, func(_ huma.Context) {
			nextCalled = true
		})

		assert.False(t, nextCalled, "the gate never silently admits")
		assert.Equal(t, 401, ctx.statusCode)
	})

	t.Run("returns 403 on unknown plan", func(t *testing.T) {
		api := newTestAPI()
		gate := &mockGate{err: quota.ErrUnknownPlan}
		mw := middleware.Quota(api, gate, zap.NewNop())

		ctx := authedContext("legacy-gold")

		nextCalled := false

		mw(ctx, func(_ huma.Context) {
			nextCalled = true
		})

		assert.False(t, nextCalled)
		assert.Equal(t, 403, ctx.statusCode)
		assert.Contains(t, string(ctx.written), "invalid plan")
	})

	t.Run("returns 500 on gate error", func(t *testing.T) {
		api := newTestAPI()
		gate := &mockGate{err: errors.New("store unavailable")}
		mw := middleware.Quota(api, gate, zap.NewNop())

		ctx := authedContext("pro")

		nextCalled := false

		mw(ctx, func(_ huma.Context) {
			nextCalled = true
		})

		assert.False(t, nextCalled)
		assert.Equal(t, 500, ctx.statusCode)
	})

	t.Run("skips rate limiting for public operations", func(t *testing.T) {
		api := newTestAPI()
		gate := &mockGate{result: quota.Result{Allowed: false, Scope: quota.ScopeMinute}}
		mw := middleware.Quota(api, gate, zap.NewNop())

		ctx := newMockHumaContext()
		ctx.operation = publicOperation()

		nextCalled := false

		mw(ctx, func(_ huma.Context) {
			nextCalled = true
		})

		assert.True(t, nextCalled, "public operations bypass the gate")
		assert.Empty(t, gate.lastPrincipal)
	})
}

func TestQuotaEndToEnd(t *testing.T) {
	// Exercise the middleware against a real gate rather than a mock so the
	// minute and day windows interact the way they do in production.
	resolver := fixedResolver{limits: quota.Limits{PerMinute: 2, PerDay: 100}}
	gate := quota.NewGate(
		resolver,
		quota.NewChecker(quota.NewStore(), time.Minute),
		quota.NewChecker(quota.NewStore(), 24*time.Hour),
	)

	api := newTestAPI()
	mw := middleware.Quota(api, gate, zap.NewNop())

	for i := range 2 {
		ctx := authedContext("fixed")

		nextCalled := false

		mw(ctx, func(_ huma.Context) {
			nextCalled = true
		})

		assert.True(t, nextCalled, "request %d should be admitted", i+1)
	}

	ctx := authedContext("fixed")

	nextCalled := false

	mw(ctx, func(_ huma.Context) {
		nextCalled = true
	})

	assert.False(t, nextCalled, "third request in the same minute should be denied")
	assert.Equal(t, 429, ctx.statusCode)
}

type fixedResolver struct {
	limits quota.Limits
}

func (f fixedResolver) LimitsFor(_ string) (quota.Limits, bool) {
	return f.limits, true
}
