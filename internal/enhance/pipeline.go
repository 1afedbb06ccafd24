package enhance

import (
	"context"
	"time"
)

// StagePipeline runs the three stages in order: translate the intent into a
// structured prompt, optimize it for the target model, assemble the final
// text.
type StagePipeline struct {
	translator Translator
}

// NewStagePipeline creates a pipeline over the given translator.
func NewStagePipeline(translator Translator) *StagePipeline {
	return &StagePipeline{translator: translator}
}

func (p *StagePipeline) Enhance(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	structured, err := p.translator.Translate(ctx, req.Intent, req.Mode)
	if err != nil {
		return nil, err
	}

	optimized, err := Optimize(structured, req.TargetModel)
	if err != nil {
		return nil, err
	}

	assembled := Assemble(optimized)

	return &Result{
		Prompt:   assembled,
		Category: DetectCategory(req.Intent),
		Duration: time.Since(start),
	}, nil
}
