package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/lucid-hq/lucid-api/internal/analytics"
	"github.com/lucid-hq/lucid-api/internal/auth"
	"github.com/lucid-hq/lucid-api/internal/enhance"
	"github.com/lucid-hq/lucid-api/internal/messaging"
	"github.com/lucid-hq/lucid-api/internal/plans"
	"go.uber.org/zap"
)

// EnhanceHandler handles the core prompt enhancement endpoint.
type EnhanceHandler struct {
	pipeline         enhance.Pipeline
	catalog          *plans.Catalog
	publishCompleted messaging.Publish[analytics.EnhancementCompletedEvent]
	logger           *zap.Logger
}

// NewEnhanceHandler creates an enhancement handler.
func NewEnhanceHandler(
	pipeline enhance.Pipeline,
	catalog *plans.Catalog,
	publishCompleted messaging.Publish[analytics.EnhancementCompletedEvent],
	logger *zap.Logger,
) *EnhanceHandler {
	return &EnhanceHandler{
		pipeline:         pipeline,
		catalog:          catalog,
		publishCompleted: publishCompleted,
		logger:           logger,
	}
}

func (h *EnhanceHandler) Enhance(ctx context.Context, req *EnhanceRequest) (*EnhanceResponse, error) {
	user, ok := auth.UserFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	plan, ok := h.catalog.Get(user.Plan)
	if !ok {
		return nil, huma.Error403Forbidden("invalid user plan")
	}

	if !plan.AllowsModel(req.Body.TargetModel) {
		return nil, huma.Error403Forbidden(fmt.Sprintf(
			"your %s plan does not include access to %s", user.Plan, req.Body.TargetModel))
	}

	result, err := h.pipeline.Enhance(ctx, enhance.Request{
		Intent:      req.Body.Intent,
		Mode:        enhance.Mode(req.Body.Mode),
		TargetModel: enhance.TargetModel(req.Body.TargetModel),
	})
	if err != nil {
		if errors.Is(err, enhance.ErrEmptyIntent) {
			return nil, huma.Error400BadRequest("intent is required")
		}

		h.logger.Error("enhancement failed",
			zap.String("userId", user.ID),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("enhancement failed, please try again")
	}

	enhancementID := uuid.NewString()
	meta := RequestMetaFromContext(ctx)

	event := &analytics.EnhancementCompletedEvent{
		EnhancementID: enhancementID,
		UserID:        user.ID,
		Plan:          user.Plan,
		Mode:          req.Body.Mode,
		TargetModel:   req.Body.TargetModel,
		Category:      string(result.Category),
		DurationMs:    result.Duration.Milliseconds(),
		CreatedAt:     time.Now(),
		ClientIP:      meta.ClientIP,
		UserAgent:     meta.UserAgent,
	}

	if err := h.publishCompleted(event); err != nil {
		h.logger.Error("failed to publish enhancement event",
			zap.String("enhancementId", enhancementID),
			zap.Error(err),
		)
	}

	resp := &EnhanceResponse{}
	resp.Body.EnhancementID = enhancementID
	resp.Body.Enhanced = result.Prompt.Assembled
	resp.Body.Structured = result.Prompt
	resp.Body.Mode = req.Body.Mode
	resp.Body.TargetModel = req.Body.TargetModel
	resp.Body.Category = string(result.Category)
	resp.Body.DurationMs = result.Duration.Milliseconds()

	return resp, nil
}
