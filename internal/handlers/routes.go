package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// MetadataPublic marks an operation as reachable without authentication or
// rate limiting. Checked by the auth and quota middlewares.
const MetadataPublic = "public"

// RegisterRoutes registers all API routes.
func RegisterRoutes(
	api huma.API,
	enhanceHandler *EnhanceHandler,
	profileHandler *ProfileHandler,
	healthHandler *HealthHandler,
) {
	huma.Register(api, huma.Operation{
		OperationID: "enhance",
		Method:      http.MethodPost,
		Path:        "/v1/enhance",
		Summary:     "Enhance a prompt",
		Description: "Transforms a raw intent into a prompt optimized for the target model.",
		Tags:        []string{"Enhancement"},
	}, enhanceHandler.Enhance)

	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/v1/profile",
		Summary:     "Get profile and usage",
		Tags:        []string{"Account"},
	}, profileHandler.Get)

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Ops"},
		Metadata:    map[string]any{MetadataPublic: true},
	}, healthHandler.Check)
}
