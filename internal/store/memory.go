package store

import (
	"context"
	"sync"

	"github.com/lucid-hq/lucid-api/internal/auth"
)

// MemoryAccounts is an in-memory auth.Authenticator for tests and local
// development.
type MemoryAccounts struct {
	mu     sync.RWMutex
	tokens map[string]auth.User
}

// NewMemoryAccounts creates an empty in-memory account store.
func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{tokens: make(map[string]auth.User)}
}

// AddToken registers a token for a user.
func (m *MemoryAccounts) AddToken(token string, user auth.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens[token] = user
}

func (m *MemoryAccounts) Authenticate(_ context.Context, token string) (*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.tokens[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}

	return &user, nil
}
