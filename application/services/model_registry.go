package services

import (
	"context"
	"sort"

	"tts-batch-api/application/ports/inbound"
	"tts-batch-api/application/ports/outbound"
	"tts-batch-api/channel_utils"
	"tts-batch-api/config"
	"tts-batch-api/domain"
)

type loadResult struct {
	name       string
	engine     outbound.SynthesisEnginePort
	sampleRate int
	err        error
}

// modelRegistry holds every successfully loaded voice. Load runs once at
// startup and the maps are never written afterwards, so request handlers
// read them without synchronization.
type modelRegistry struct {
	modelsConfig *config.ModelsConfig
	loader       outbound.EngineLoaderPort
	workerPool   outbound.TaskDispatcher
	logger       outbound.LoggerPort
	engines      map[string]outbound.SynthesisEnginePort
	sampleRates  map[string]int
}

func NewModelRegistry(modelsConfig *config.ModelsConfig, loader outbound.EngineLoaderPort,
	workerPool outbound.TaskDispatcher, logger outbound.LoggerPort) inbound.ModelRegistryPort {
	return &modelRegistry{
		modelsConfig: modelsConfig,
		loader:       loader,
		workerPool:   workerPool,
		logger:       logger,
		engines:      make(map[string]outbound.SynthesisEnginePort),
		sampleRates:  make(map[string]int),
	}
}

// Load instantiates all configured models in parallel on the worker pool.
// One model failing to load is logged and omitted so the remaining voices
// still serve; only worker pool exhaustion aborts startup.
func (r *modelRegistry) Load(ctx context.Context) error {
	channels := make([]<-chan loadResult, 0, len(r.modelsConfig.AvailableModels))

	for _, name := range r.modelsConfig.AvailableModels {
		modelName := name
		ch := make(chan loadResult, 1)

		err := r.workerPool.Submit(func() {
			defer close(ch)
			engine, sampleRate, loadErr := r.loader.Load(ctx, modelName)
			ch <- loadResult{name: modelName, engine: engine, sampleRate: sampleRate, err: loadErr}
		})
		if err != nil {
			return err
		}

		channels = append(channels, ch)
	}

	merged, err := channel_utils.MergeChannels(r.workerPool, channels...)
	if err != nil {
		return err
	}

	for result := range merged {
		if result.err != nil {
			r.logger.WarnWithFields("failed to load model, omitting from registry", map[string]interface{}{
				"model": result.name,
				"error": result.err.Error(),
			})
			continue
		}

		r.engines[result.name] = result.engine
		r.sampleRates[result.name] = result.sampleRate

		r.logger.InfoWithFields("loaded model", map[string]interface{}{
			"model":       result.name,
			"sample_rate": result.sampleRate,
		})
	}

	if _, ok := r.engines[r.modelsConfig.DefaultModel]; !ok {
		r.logger.WarnWithFields("default model is not loaded, requests without an explicit model will be rejected",
			map[string]interface{}{
				"default_model": r.modelsConfig.DefaultModel,
			})
	}

	return nil
}

func (r *modelRegistry) Resolve(requested string) (domain.VoiceModel, outbound.SynthesisEnginePort, error) {
	effective := requested
	if effective == "" {
		effective = r.modelsConfig.DefaultModel
	}

	engine, ok := r.engines[effective]
	if !ok {
		return domain.VoiceModel{}, nil, domain.NewUnknownModelError(effective, r.AvailableNames())
	}

	return domain.VoiceModel{
		Name:             effective,
		NativeSampleRate: r.sampleRates[effective],
	}, engine, nil
}

// SampleRateOf returns the native rate recorded at load time. No disk or
// engine I/O happens here.
func (r *modelRegistry) SampleRateOf(name string) (int, error) {
	rate, ok := r.sampleRates[name]
	if !ok {
		return 0, domain.NewUnknownModelError(name, r.AvailableNames())
	}
	return rate, nil
}

func (r *modelRegistry) AvailableNames() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *modelRegistry) Clear() {
	r.engines = make(map[string]outbound.SynthesisEnginePort)
	r.sampleRates = make(map[string]int)
}
