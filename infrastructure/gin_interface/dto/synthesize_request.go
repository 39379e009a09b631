package dto

import (
	"fmt"

	"tts-batch-api/domain"
)

const defaultSampleRate = 16000

type SynthesizeRequest struct {
	Text       string `json:"text" binding:"required"`
	SampleRate int    `json:"sample_rate"`
	Model      string `json:"model"`
}

// Normalize applies the default sample rate and validates the request
// against the supported rate set before anything reaches the pipeline.
func (r *SynthesizeRequest) Normalize() error {
	if r.SampleRate == 0 {
		r.SampleRate = defaultSampleRate
	}

	if !domain.IsSupportedSampleRate(r.SampleRate) {
		return fmt.Errorf("sample rate %d not supported. Use one of: %v", r.SampleRate, domain.SupportedSampleRates)
	}

	return nil
}
