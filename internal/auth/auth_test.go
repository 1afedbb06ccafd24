package auth_test

import (
	"context"
	"testing"

	"github.com/lucid-hq/lucid-api/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext(t *testing.T) {
	t.Run("round trips a user", func(t *testing.T) {
		user := &auth.User{ID: "u1", Email: "u1@example.com", Plan: "pro"}

		ctx := auth.ContextWithUser(context.Background(), user)

		got, ok := auth.UserFromContext(ctx)

		require.True(t, ok)
		assert.Equal(t, user, got)
	})

	t.Run("reports absence on a bare context", func(t *testing.T) {
		_, ok := auth.UserFromContext(context.Background())

		assert.False(t, ok)
	})

	t.Run("reports absence for a nil user", func(t *testing.T) {
		ctx := auth.ContextWithUser(context.Background(), nil)

		_, ok := auth.UserFromContext(ctx)

		assert.False(t, ok)
	})
}
