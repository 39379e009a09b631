package adapters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"tts-batch-api/application/ports/outbound"
)

const synthesisChunkSize = 4096

// piperEngine synthesizes speech by running the piper executable with
// --output-raw, feeding text on stdin and reading raw 16-bit PCM from
// stdout. One process is spawned per call, so a single engine handle can be
// shared by concurrent requests.
type piperEngine struct {
	binPath   string
	modelPath string
	logger    outbound.LoggerPort
}

func NewPiperEngine(binPath, modelPath string, logger outbound.LoggerPort) outbound.SynthesisEnginePort {
	return &piperEngine{
		binPath:   binPath,
		modelPath: modelPath,
		logger:    logger,
	}
}

func (e *piperEngine) Synthesize(ctx context.Context, text string) ([][]byte, error) {
	cmd := exec.CommandContext(ctx, e.binPath, "--model", e.modelPath, "--output-raw")
	cmd.Stdin = strings.NewReader(text)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open engine stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start synthesis engine: %w", err)
	}

	var chunks [][]byte
	for {
		buf := make([]byte, synthesisChunkSize)
		n, readErr := stdout.Read(buf)
		if n > 0 {
			chunks = append(chunks, buf[:n])
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = cmd.Wait()
			return nil, fmt.Errorf("failed to read engine output: %w", readErr)
		}
	}

	if err := cmd.Wait(); err != nil {
		e.logger.ErrorWithFields(err, "synthesis engine exited with failure", map[string]interface{}{
			"model_path": e.modelPath,
			"stderr":     stderr.String(),
		})
		return nil, fmt.Errorf("synthesis engine failed: %w", err)
	}

	return chunks, nil
}
