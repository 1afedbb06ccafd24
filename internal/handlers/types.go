package handlers

import "github.com/lucid-hq/lucid-api/internal/enhance"

// EnhanceRequest is the request for enhancing a prompt intent.
type EnhanceRequest struct {
	Body struct {
		Intent      string `doc:"The raw intent to enhance"     json:"intent"      maxLength:"10000"                     minLength:"3"`
		Mode        string `doc:"How to transform the intent"   enum:"enhance,expand,refine,simplify" json:"mode"`
		TargetModel string `doc:"Model to format the prompt for" enum:"chatgpt,claude,gemini"         json:"targetModel"`
	}
}

// EnhanceResponse is the response for a completed enhancement.
type EnhanceResponse struct {
	Body struct {
		EnhancementID string                   `doc:"Unique id of this enhancement" json:"enhancementId"`
		Enhanced      string                   `doc:"The final assembled prompt"    json:"enhanced"`
		Structured    enhance.StructuredPrompt `doc:"The decomposed prompt"         json:"structured"`
		Mode          string                   `json:"mode"`
		TargetModel   string                   `json:"targetModel"`
		Category      string                   `json:"category"`
		DurationMs    int64                    `json:"durationMs"`
	}
}

// ProfileResponse is the response for the profile endpoint.
type ProfileResponse struct {
	Body struct {
		UserID         string `json:"userId"`
		Email          string `json:"email"`
		Plan           string `json:"plan"`
		PerMinuteLimit int64  `json:"perMinuteLimit"`
		PerDayLimit    int64  `json:"perDayLimit"`
		UsedToday      int64  `json:"usedToday"`
		UsedLast30Days int64  `json:"usedLast30Days"`
	}
}

// HealthResponse is the response for the health endpoint.
type HealthResponse struct {
	Body struct {
		Status   string `json:"status"`
		Redis    string `json:"redis"`
		Postgres string `json:"postgres"`
	}
}
