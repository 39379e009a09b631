package outbound

import "context"

// SynthesisEnginePort is the handle to one loaded voice. Synthesize returns
// raw 16-bit little-endian PCM at the voice's native sample rate, as the
// ordered sequence of chunks the engine produced. Implementations must be
// safe for concurrent calls and hold no per-call state.
type SynthesisEnginePort interface {
	Synthesize(ctx context.Context, text string) ([][]byte, error)
}

// EngineLoaderPort instantiates the engine for a named voice model and
// reports the native sample rate recorded in the model's configuration.
type EngineLoaderPort interface {
	Load(ctx context.Context, modelName string) (SynthesisEnginePort, int, error)
}
