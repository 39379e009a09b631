package inbound

import (
	"context"

	"tts-batch-api/application/ports/outbound"
	"tts-batch-api/domain"
)

// ModelRegistryPort resolves requested model names to loaded voices. The
// registry is populated once at startup and read-only afterwards; resolution
// never falls back to a different model than the one asked for.
type ModelRegistryPort interface {
	// Load instantiates every configured model. A model that fails to load
	// is logged and omitted rather than aborting startup.
	Load(ctx context.Context) error
	// Resolve maps a requested name (or "" for the configured default) to
	// the loaded voice and its engine. The returned VoiceModel carries the
	// effective name actually used, for cache-key construction downstream.
	Resolve(requested string) (domain.VoiceModel, outbound.SynthesisEnginePort, error)
	SampleRateOf(name string) (int, error)
	AvailableNames() []string
	Clear()
}
