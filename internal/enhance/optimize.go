package enhance

import (
	"fmt"
	"strings"
)

// complexTaskThreshold is the task length past which a step-by-step nudge is
// appended for models that benefit from it.
const complexTaskThreshold = 200

// Optimize formats the structured prompt according to the target model's
// known preferences. Pure deterministic rules.
func Optimize(prompt StructuredPrompt, model TargetModel) (StructuredPrompt, error) {
	switch model {
	case ModelClaude:
		return optimizeForClaude(prompt), nil
	case ModelChatGPT:
		return optimizeForChatGPT(prompt), nil
	case ModelGemini:
		return optimizeForGemini(prompt), nil
	default:
		return StructuredPrompt{}, fmt.Errorf("enhance: unsupported target model %q", model)
	}
}

// Claude responds well to XML-structured prompts with context front-loaded.
func optimizeForClaude(prompt StructuredPrompt) StructuredPrompt {
	var sections []string

	tag := func(name, body string) {
		if body != "" {
			sections = append(sections, fmt.Sprintf("<%s>\n%s\n</%s>", name, body, name))
		}
	}

	tag("role", prompt.Role)
	tag("context", prompt.Context)
	tag("task", prompt.Task)
	tag("constraints", prompt.Constraints)
	tag("format", prompt.Format)
	tag("tone", prompt.Tone)

	if len(prompt.Task) > complexTaskThreshold {
		tag("instructions", "Think step by step before providing your final answer.")
	}

	prompt.Assembled = strings.Join(sections, "\n\n")

	return prompt
}

// GPT models prefer numbered instructions with an explicit output format.
func optimizeForChatGPT(prompt StructuredPrompt) StructuredPrompt {
	var sections []string

	if prompt.Role != "" {
		sections = append(sections, "**Role:** "+prompt.Role)
	}

	if prompt.Context != "" {
		sections = append(sections, "**Background:** "+prompt.Context)
	}

	sections = append(sections, "**Instructions:**")

	n := 1
	sections = append(sections, fmt.Sprintf("%d. %s", n, prompt.Task))
	n++

	if prompt.Constraints != "" {
		sections = append(sections, fmt.Sprintf("%d. Constraints: %s", n, prompt.Constraints))
		n++
	}

	if prompt.Tone != "" {
		sections = append(sections, fmt.Sprintf("%d. Use a %s tone throughout.", n, prompt.Tone))
	}

	if prompt.Format != "" {
		sections = append(sections, "\n**Output Format:** "+prompt.Format)
	}

	if len(prompt.Task) > complexTaskThreshold {
		sections = append(sections, "\nLet's work through this systematically.")
	}

	prompt.Assembled = strings.Join(sections, "\n")

	return prompt
}

// Gemini prefers concise, task-first prompts with clear delimiters.
func optimizeForGemini(prompt StructuredPrompt) StructuredPrompt {
	sections := []string{"TASK: " + prompt.Task}

	section := func(name, body string) {
		if body != "" {
			sections = append(sections, "---\n"+name+": "+body)
		}
	}

	section("CONTEXT", prompt.Context)
	section("ROLE", prompt.Role)
	section("CONSTRAINTS", prompt.Constraints)
	section("FORMAT", prompt.Format)
	section("TONE", prompt.Tone)

	prompt.Assembled = strings.Join(sections, "\n")

	return prompt
}

// Assemble produces the final prompt text. When the optimize stage already
// set Assembled it is kept; otherwise a generic plain-text layout is built.
func Assemble(prompt StructuredPrompt) StructuredPrompt {
	if prompt.Assembled != "" {
		return prompt
	}

	var parts []string

	if prompt.Role != "" {
		parts = append(parts, "You are "+prompt.Role+".")
	}

	if prompt.Context != "" {
		parts = append(parts, prompt.Context)
	}

	parts = append(parts, prompt.Task)

	if prompt.Constraints != "" {
		parts = append(parts, "Constraints: "+prompt.Constraints)
	}

	if prompt.Format != "" {
		parts = append(parts, "Output format: "+prompt.Format)
	}

	if prompt.Tone != "" {
		parts = append(parts, "Tone: "+prompt.Tone)
	}

	prompt.Assembled = strings.Join(parts, "\n\n")

	return prompt
}
