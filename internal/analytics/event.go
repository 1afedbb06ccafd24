package analytics

import "time"

// TopicEnhancementCompleted carries one event per admitted, successfully
// processed enhancement.
const TopicEnhancementCompleted = "enhancement.completed"

// EnhancementCompletedEvent records enhancement metadata for usage analytics.
// The prompt text itself is never included.
type EnhancementCompletedEvent struct {
	EnhancementID          string    `json:"enhancementId"`
	UserID                 string    `json:"userId"`
	Plan                   string    `json:"plan"`
	Mode                   string    `json:"mode"`
	TargetModel            string    `json:"targetModel"`
	Category               string    `json:"category"`
	DurationMs             int64     `json:"durationMs"`
	PersonalizationApplied bool      `json:"personalizationApplied"`
	CreatedAt              time.Time `json:"createdAt"`
	ClientIP               string    `json:"clientIp,omitempty"`
	UserAgent              string    `json:"userAgent,omitempty"`
}
