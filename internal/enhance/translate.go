package enhance

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyIntent is returned when translation is asked to work on nothing.
var ErrEmptyIntent = errors.New("enhance: empty intent")

// Translator is the first pipeline stage: decompose a raw intent into a
// structured prompt. The hosted-LLM translator lives outside this service;
// HeuristicTranslator is the deterministic in-process implementation.
type Translator interface {
	Translate(ctx context.Context, intent string, mode Mode) (StructuredPrompt, error)
}

var categoryRoles = map[Category]string{
	CategoryEmail:     "an experienced communications specialist",
	CategoryCode:      "a senior software engineer",
	CategoryAnalysis:  "a meticulous analyst",
	CategoryCreative:  "a skilled writer",
	CategoryMarketing: "a senior marketing strategist",
	CategoryLegal:     "a careful legal drafting assistant",
}

// HeuristicTranslator builds a structured prompt from the intent with
// deterministic rules: the detected category picks a role, the mode shapes
// the framing. No network calls.
type HeuristicTranslator struct{}

// NewHeuristicTranslator creates the rule-based translator.
func NewHeuristicTranslator() *HeuristicTranslator {
	return &HeuristicTranslator{}
}

func (t *HeuristicTranslator) Translate(_ context.Context, intent string, mode Mode) (StructuredPrompt, error) {
	task := strings.TrimSpace(intent)
	if task == "" {
		return StructuredPrompt{}, ErrEmptyIntent
	}

	prompt := StructuredPrompt{Task: task}

	if role, ok := categoryRoles[DetectCategory(intent)]; ok {
		prompt.Role = role
	}

	switch mode {
	case ModeExpand:
		prompt.Context = "The request below is brief shorthand. Expand it into a complete, detailed request, filling in context that is implied but unstated."
	case ModeRefine:
		prompt.Constraints = "Preserve the original intent exactly; improve only clarity and specificity."
	case ModeSimplify:
		prompt.Constraints = "Strip the request to its essential elements; remove redundancy and verbosity."
	case ModeEnhance:
		// Default framing is the task plus role; nothing extra to add.
	}

	return prompt, nil
}
