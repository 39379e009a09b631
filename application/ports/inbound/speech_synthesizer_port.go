package inbound

import (
	"context"

	"tts-batch-api/domain"
)

type SynthesizeParams struct {
	Text             string
	TargetSampleRate int
	Model            string
	RequestID        string
}

type SpeechSynthesizerPort interface {
	Synthesize(ctx context.Context, params SynthesizeParams) (*domain.SynthesisResult, error)
}
