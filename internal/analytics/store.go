package analytics

import (
	"context"
	"time"

	"github.com/lucid-hq/lucid-api/internal/messaging"
)

// Store persists enhancement usage events.
type Store interface {
	SaveEnhancement(ctx context.Context, event *EnhancementCompletedEvent) error
}

// UsageReader answers usage questions for the profile endpoint.
type UsageReader interface {
	// CountSince returns how many enhancements the user completed at or
	// after since.
	CountSince(ctx context.Context, userID string, since time.Time) (int64, error)
}

// SaveHandler adapts a Store into a consumer handler for
// TopicEnhancementCompleted.
func SaveHandler(store Store) messaging.Handler[EnhancementCompletedEvent] {
	return func(ctx context.Context, event *EnhancementCompletedEvent) error {
		return store.SaveEnhancement(ctx, event)
	}
}
