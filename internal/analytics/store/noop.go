package store

import (
	"context"

	"github.com/lucid-hq/lucid-api/internal/analytics"
	"go.uber.org/zap"
)

// Noop is an analytics.Store that only logs events. Used when the consumer
// runs without a database.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a logging no-op analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveEnhancement(_ context.Context, event *analytics.EnhancementCompletedEvent) error {
	n.logger.Info("enhancement completed",
		zap.String("enhancementId", event.EnhancementID),
		zap.String("userId", event.UserID),
		zap.String("plan", event.Plan),
		zap.String("mode", event.Mode),
		zap.String("targetModel", event.TargetModel),
		zap.String("category", event.Category),
		zap.Int64("durationMs", event.DurationMs),
	)

	return nil
}
