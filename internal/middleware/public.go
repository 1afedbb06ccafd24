package middleware

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/lucid-hq/lucid-api/internal/handlers"
)

// isPublic reports whether the operation opted out of auth and rate limiting
// via handlers.MetadataPublic.
func isPublic(ctx huma.Context) bool {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return false
	}

	public, _ := op.Metadata[handlers.MetadataPublic].(bool)

	return public
}
