package services

import (
	"context"
	"fmt"
	"time"

	"tts-batch-api/application/ports/inbound"
	"tts-batch-api/application/ports/outbound"
	"tts-batch-api/audio"
	"tts-batch-api/domain"
)

const logTextPreviewLen = 50

// synthesisOrchestrator runs the synthesis pipeline for one request:
// resolve the model, try the cache, synthesize on a miss, resample when the
// native rate differs from the target, and store the final bytes back.
// Cache failures degrade to a miss; they never fail the request.
type synthesisOrchestrator struct {
	registry inbound.ModelRegistryPort
	cache    outbound.AudioCachePort
	logger   outbound.LoggerPort
}

func NewSynthesisOrchestrator(registry inbound.ModelRegistryPort, cache outbound.AudioCachePort,
	logger outbound.LoggerPort) inbound.SpeechSynthesizerPort {
	return &synthesisOrchestrator{
		registry: registry,
		cache:    cache,
		logger:   logger,
	}
}

func (s *synthesisOrchestrator) Synthesize(ctx context.Context, params inbound.SynthesizeParams) (*domain.SynthesisResult, error) {
	start := time.Now()

	model, engine, err := s.registry.Resolve(params.Model)
	if err != nil {
		return nil, err
	}

	cacheKey := domain.BuildCacheKey(model.Name, params.TargetSampleRate, params.Text)

	cacheStatus := domain.CacheDisabled
	if s.cache.Enabled() {
		cached, found, getErr := s.cache.Get(ctx, cacheKey)
		switch {
		case getErr != nil:
			cacheStatus = domain.CacheError
			s.logger.WarnWithFields("cache lookup failed, continuing without cache", map[string]interface{}{
				"request_id": params.RequestID,
				"error":      getErr.Error(),
			})
		case found:
			s.logger.InfoWithFields("cache HIT", map[string]interface{}{
				"request_id":  params.RequestID,
				"text":        textPreview(params.Text),
				"model":       model.Name,
				"target_rate": params.TargetSampleRate,
				"total_ms":    elapsedMillis(start),
			})
			return &domain.SynthesisResult{
				Audio:          cached,
				Model:          model.Name,
				SampleRate:     params.TargetSampleRate,
				CacheStatus:    domain.CacheHit,
				ResampleStatus: domain.ResampleNone,
				TotalTime:      time.Since(start),
			}, nil
		default:
			cacheStatus = domain.CacheMiss
		}
	}

	synthesisStart := time.Now()
	chunks, err := engine.Synthesize(ctx, params.Text)
	if err != nil {
		s.logger.ErrorWithFields(err, "synthesis failed", map[string]interface{}{
			"request_id": params.RequestID,
			"model":      model.Name,
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrSynthesisFailed, err)
	}
	audioData := joinChunks(chunks)
	synthesisTime := time.Since(synthesisStart)

	resampleStart := time.Now()
	resampleStatus := domain.ResampleNone
	if model.NativeSampleRate != params.TargetSampleRate {
		audioData, err = audio.Resample(audioData, model.NativeSampleRate, params.TargetSampleRate)
		if err != nil {
			s.logger.ErrorWithFields(err, "resampling failed", map[string]interface{}{
				"request_id":  params.RequestID,
				"model":       model.Name,
				"native_rate": model.NativeSampleRate,
				"target_rate": params.TargetSampleRate,
			})
			return nil, fmt.Errorf("%w: %v", domain.ErrResampleFailed, err)
		}
		resampleStatus = domain.ResampleApplied
	}
	resampleTime := time.Since(resampleStart)

	if s.cache.Enabled() {
		if setErr := s.cache.Set(ctx, cacheKey, audioData); setErr != nil {
			s.logger.WarnWithFields("cache storage failed, serving uncached result", map[string]interface{}{
				"request_id": params.RequestID,
				"error":      setErr.Error(),
			})
		}
	}

	totalTime := time.Since(start)
	s.logger.InfoWithFields("synthesis complete", map[string]interface{}{
		"request_id":   params.RequestID,
		"text":         textPreview(params.Text),
		"model":        model.Name,
		"native_rate":  model.NativeSampleRate,
		"target_rate":  params.TargetSampleRate,
		"cache":        string(cacheStatus),
		"resampling":   string(resampleStatus),
		"synthesis_ms": synthesisTime.Milliseconds(),
		"resample_ms":  resampleTime.Milliseconds(),
		"total_ms":     totalTime.Milliseconds(),
	})

	return &domain.SynthesisResult{
		Audio:          audioData,
		Model:          model.Name,
		SampleRate:     params.TargetSampleRate,
		CacheStatus:    cacheStatus,
		ResampleStatus: resampleStatus,
		SynthesisTime:  synthesisTime,
		ResampleTime:   resampleTime,
		TotalTime:      totalTime,
	}, nil
}

// joinChunks concatenates engine output in production order, no gaps or
// reordering.
func joinChunks(chunks [][]byte) []byte {
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	joined := make([]byte, 0, total)
	for _, c := range chunks {
		joined = append(joined, c...)
	}
	return joined
}

func textPreview(text string) string {
	runes := []rune(text)
	if len(runes) <= logTextPreviewLen {
		return text
	}
	return string(runes[:logTextPreviewLen])
}

func elapsedMillis(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
