package store_test

import (
	"context"
	"testing"

	"github.com/lucid-hq/lucid-api/internal/auth"
	"github.com/lucid-hq/lucid-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAccounts(t *testing.T) {
	t.Run("resolves a registered token", func(t *testing.T) {
		accounts := store.NewMemoryAccounts()
		accounts.AddToken("tok-1", auth.User{ID: "u1", Email: "u1@example.com", Plan: "pro"})

		user, err := accounts.Authenticate(context.Background(), "tok-1")

		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, "pro", user.Plan)
	})

	t.Run("rejects an unknown token", func(t *testing.T) {
		accounts := store.NewMemoryAccounts()

		_, err := accounts.Authenticate(context.Background(), "nope")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
