package enhance

import (
	"context"
	"time"
)

// Mode selects how an intent is transformed.
type Mode string

const (
	ModeEnhance  Mode = "enhance"
	ModeExpand   Mode = "expand"
	ModeRefine   Mode = "refine"
	ModeSimplify Mode = "simplify"
)

// TargetModel names the chat model the final prompt is formatted for.
type TargetModel string

const (
	ModelChatGPT TargetModel = "chatgpt"
	ModelClaude  TargetModel = "claude"
	ModelGemini  TargetModel = "gemini"
)

// StructuredPrompt is the decomposed form of a user intent. Assembled holds
// the final text once the optimize or assemble stage has run.
type StructuredPrompt struct {
	Role        string `json:"role,omitempty"`
	Context     string `json:"context,omitempty"`
	Task        string `json:"task"`
	Format      string `json:"format,omitempty"`
	Constraints string `json:"constraints,omitempty"`
	Tone        string `json:"tone,omitempty"`
	Assembled   string `json:"assembled"`
}

// Request is one enhancement to perform.
type Request struct {
	Intent      string
	Mode        Mode
	TargetModel TargetModel
}

// Result is the outcome of a completed enhancement.
type Result struct {
	Prompt   StructuredPrompt
	Category Category
	Duration time.Duration
}

// Pipeline transforms a raw intent into a model-ready prompt.
type Pipeline interface {
	Enhance(ctx context.Context, req Request) (*Result, error)
}
