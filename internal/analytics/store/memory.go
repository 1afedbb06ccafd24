package store

import (
	"context"
	"sync"
	"time"

	"github.com/lucid-hq/lucid-api/internal/analytics"
)

// Memory is an in-memory analytics store for tests and local development.
type Memory struct {
	mu     sync.RWMutex
	events []*analytics.EnhancementCompletedEvent
}

// NewMemory creates an empty in-memory analytics store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) SaveEnhancement(_ context.Context, event *analytics.EnhancementCompletedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, event)

	return nil
}

func (m *Memory) CountSince(_ context.Context, userID string, since time.Time) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64

	for _, e := range m.events {
		if e.UserID == userID && !e.CreatedAt.Before(since) {
			count++
		}
	}

	return count, nil
}

// Events returns a snapshot of everything stored so far.
func (m *Memory) Events() []*analytics.EnhancementCompletedEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*analytics.EnhancementCompletedEvent, len(m.events))
	copy(out, m.events)

	return out
}
