package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const defaultVoicesURL = "https://huggingface.co/rhasspy/piper-voices/resolve/main"

type ModelsConfig struct {
	// AvailableModels are the voices preloaded at startup, identified by
	// piper voice names like "en_US-kathleen-low".
	AvailableModels []string
	// DefaultModel serves requests that omit an explicit model.
	DefaultModel string
	// AssetsDir holds the model .onnx and .onnx.json files.
	AssetsDir string
	// VoicesURL is the base URL missing model assets are fetched from.
	VoicesURL string
	// PiperBin is the synthesis engine executable.
	PiperBin string
}

func GetModelsConfig() (*ModelsConfig, error) {
	available := []string{"en_US-kathleen-low", "en_US-ryan-medium"}
	if raw := os.Getenv("TTS_AVAILABLE_MODELS"); raw != "" {
		available = available[:0]
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				available = append(available, name)
			}
		}
		if len(available) == 0 {
			return nil, fmt.Errorf("TTS_AVAILABLE_MODELS must list at least one model")
		}
	}

	defaultModel := os.Getenv("TTS_DEFAULT_MODEL")
	if defaultModel == "" {
		defaultModel = available[0]
	}
	if !contains(available, defaultModel) {
		return nil, fmt.Errorf("default model %q not in available models %v", defaultModel, available)
	}

	assetsDir := os.Getenv("ASSETS_DIR")
	if assetsDir == "" {
		assetsDir = "/app/assets"
	}

	voicesURL := os.Getenv("TTS_VOICES_URL")
	if voicesURL == "" {
		voicesURL = defaultVoicesURL
	}

	piperBin := os.Getenv("PIPER_BIN")
	if piperBin == "" {
		piperBin = "piper"
	}

	return &ModelsConfig{
		AvailableModels: available,
		DefaultModel:    defaultModel,
		AssetsDir:       assetsDir,
		VoicesURL:       voicesURL,
		PiperBin:        piperBin,
	}, nil
}

// ModelFilePath is the on-disk location of a voice's ONNX file.
func (c *ModelsConfig) ModelFilePath(modelName string) string {
	return filepath.Join(c.AssetsDir, modelName+".onnx")
}

// ModelConfigPath is the JSON configuration next to the ONNX file; it holds
// the voice's native sample rate.
func (c *ModelsConfig) ModelConfigPath(modelName string) string {
	return filepath.Join(c.AssetsDir, modelName+".onnx.json")
}

func contains(values []string, wanted string) bool {
	for _, v := range values {
		if v == wanted {
			return true
		}
	}
	return false
}
