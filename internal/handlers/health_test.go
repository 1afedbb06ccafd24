package handlers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lucid-hq/lucid-api/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) Ping(_ context.Context) error {
	return m.err
}

func TestHealthHandler_Check(t *testing.T) {
	t.Run("returns ok when all dependencies are healthy", func(t *testing.T) {
		handler := handlers.NewHealthHandler(&mockHealthChecker{}, &mockHealthChecker{})

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Body.Status)
		assert.Equal(t, "healthy", resp.Body.Redis)
		assert.Equal(t, "healthy", resp.Body.Postgres)
	})

	t.Run("degrades when redis is unreachable", func(t *testing.T) {
		handler := handlers.NewHealthHandler(
			&mockHealthChecker{err: errors.New("connection refused")},
			&mockHealthChecker{},
		)

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "degraded", resp.Body.Status)
		assert.Equal(t, "unhealthy", resp.Body.Redis)
		assert.Equal(t, "healthy", resp.Body.Postgres)
	})

	t.Run("degrades when postgres is unreachable", func(t *testing.T) {
		handler := handlers.NewHealthHandler(
			&mockHealthChecker{},
			&mockHealthChecker{err: errors.New("connection refused")},
		)

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "degraded", resp.Body.Status)
		assert.Equal(t, "unhealthy", resp.Body.Postgres)
	})
}
