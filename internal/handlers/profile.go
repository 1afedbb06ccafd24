package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/lucid-hq/lucid-api/internal/analytics"
	"github.com/lucid-hq/lucid-api/internal/auth"
	"github.com/lucid-hq/lucid-api/internal/plans"
	"go.uber.org/zap"
)

// ProfileHandler serves the authenticated user's account and usage summary.
type ProfileHandler struct {
	usage   analytics.UsageReader
	catalog *plans.Catalog
	logger  *zap.Logger
}

// NewProfileHandler creates a profile handler.
func NewProfileHandler(usage analytics.UsageReader, catalog *plans.Catalog, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{usage: usage, catalog: catalog, logger: logger}
}

func (h *ProfileHandler) Get(ctx context.Context, _ *struct{}) (*ProfileResponse, error) {
	user, ok := auth.UserFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	plan, ok := h.catalog.Get(user.Plan)
	if !ok {
		return nil, huma.Error403Forbidden("invalid user plan")
	}

	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	usedToday, err := h.usage.CountSince(ctx, user.ID, midnight)
	if err != nil {
		h.logger.Error("usage lookup failed", zap.String("userId", user.ID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to load usage")
	}

	usedMonth, err := h.usage.CountSince(ctx, user.ID, now.AddDate(0, 0, -30))
	if err != nil {
		h.logger.Error("usage lookup failed", zap.String("userId", user.ID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to load usage")
	}

	resp := &ProfileResponse{}
	resp.Body.UserID = user.ID
	resp.Body.Email = user.Email
	resp.Body.Plan = user.Plan
	resp.Body.PerMinuteLimit = plan.Limits.PerMinute
	resp.Body.PerDayLimit = plan.Limits.PerDay
	resp.Body.UsedToday = usedToday
	resp.Body.UsedLast30Days = usedMonth

	return resp, nil
}
