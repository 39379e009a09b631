package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"tts-batch-api/application/ports/outbound"
	"tts-batch-api/config"
)

// piperModelConfig mirrors the slice of the piper .onnx.json file we need:
// the voice's native sample rate.
type piperModelConfig struct {
	Audio struct {
		SampleRate int `json:"sample_rate"`
	} `json:"audio"`
}

// piperEngineLoader prepares one voice for serving: it makes sure the model
// assets exist locally (downloading them when missing), reads the native
// sample rate from the model's JSON configuration once, and constructs the
// engine handle bound to the model file.
type piperEngineLoader struct {
	modelsConfig *config.ModelsConfig
	fetcher      ContentFetcher
	logger       outbound.LoggerPort
}

func NewPiperEngineLoader(modelsConfig *config.ModelsConfig, fetcher ContentFetcher,
	logger outbound.LoggerPort) outbound.EngineLoaderPort {
	return &piperEngineLoader{
		modelsConfig: modelsConfig,
		fetcher:      fetcher,
		logger:       logger,
	}
}

func (l *piperEngineLoader) Load(ctx context.Context, modelName string) (outbound.SynthesisEnginePort, int, error) {
	modelPath, configPath, err := l.ensureModelAssets(ctx, modelName)
	if err != nil {
		return nil, 0, err
	}

	sampleRate, err := l.readNativeSampleRate(configPath)
	if err != nil {
		return nil, 0, err
	}

	engine := NewPiperEngine(l.modelsConfig.PiperBin, modelPath, l.logger)

	return engine, sampleRate, nil
}

// ensureModelAssets returns the local paths of the model's .onnx and
// .onnx.json files, fetching them from the voices URL when absent. A
// read-only assets directory falls back to the user home directory, as in
// locked-down container filesystems.
func (l *piperEngineLoader) ensureModelAssets(ctx context.Context, modelName string) (string, string, error) {
	modelPath := l.modelsConfig.ModelFilePath(modelName)
	configPath := l.modelsConfig.ModelConfigPath(modelName)

	if fileExists(modelPath) && fileExists(configPath) {
		return modelPath, configPath, nil
	}

	downloadDir := l.writableDirectory()
	l.logger.InfoWithFields("model assets not found locally, downloading", map[string]interface{}{
		"model": modelName,
		"dir":   downloadDir,
	})

	for _, fileName := range []string{modelName + ".onnx", modelName + ".onnx.json"} {
		url, err := voiceAssetURL(l.modelsConfig.VoicesURL, modelName, fileName)
		if err != nil {
			return "", "", err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", "", fmt.Errorf("failed to build download request for %s: %w", fileName, err)
		}

		data, err := l.fetcher.FetchContent(req)
		if err != nil {
			return "", "", fmt.Errorf("failed to download %s: %w", fileName, err)
		}

		if err := os.WriteFile(filepath.Join(downloadDir, fileName), data, 0o644); err != nil {
			return "", "", fmt.Errorf("failed to write %s: %w", fileName, err)
		}
	}

	return filepath.Join(downloadDir, modelName+".onnx"),
		filepath.Join(downloadDir, modelName+".onnx.json"), nil
}

func (l *piperEngineLoader) readNativeSampleRate(configPath string) (int, error) {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read model config %s: %w", configPath, err)
	}

	var modelConfig piperModelConfig
	if err := json.Unmarshal(raw, &modelConfig); err != nil {
		return 0, fmt.Errorf("failed to parse model config %s: %w", configPath, err)
	}

	if modelConfig.Audio.SampleRate <= 0 {
		return 0, fmt.Errorf("no sample_rate found in %s", configPath)
	}

	return modelConfig.Audio.SampleRate, nil
}

func (l *piperEngineLoader) writableDirectory() string {
	assetsDir := l.modelsConfig.AssetsDir
	if err := os.MkdirAll(assetsDir, 0o755); err == nil {
		if probe, err := os.CreateTemp(assetsDir, ".write-probe-*"); err == nil {
			probe.Close()
			os.Remove(probe.Name())
			return assetsDir
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return assetsDir
	}

	l.logger.WarnWithFields("assets directory is not writable, falling back to home directory", map[string]interface{}{
		"assets_dir": assetsDir,
		"fallback":   home,
	})

	return home
}

// voiceAssetURL maps a voice name like "en_US-kathleen-low" onto the
// piper-voices repository layout: {family}/{lang}/{voice}/{quality}/{file}.
func voiceAssetURL(baseURL, modelName, fileName string) (string, error) {
	parts := strings.SplitN(modelName, "-", 3)
	if len(parts) != 3 {
		return "", fmt.Errorf("model name %q is not in {lang}-{voice}-{quality} form", modelName)
	}

	lang := parts[0]
	family := strings.SplitN(lang, "_", 2)[0]

	return strings.Join([]string{baseURL, family, lang, parts[1], parts[2], fileName}, "/"), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
