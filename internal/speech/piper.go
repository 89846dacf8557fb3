package speech

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/iksnae/asc/internal"
)

// DefaultNoiseW is the phoneme width noise passed to piper
const DefaultNoiseW = 1.0

// PiperSynthesizer runs the piper command line voice
type PiperSynthesizer struct {
	Binary string
	Model  string
	NoiseW float64
}

// NewPiper creates a piper synthesizer from cfg
func NewPiper(cfg internal.SpeechConfig) *PiperSynthesizer {
	binary := cfg.PiperBinary
	if binary == "" {
		binary = "piper"
	}
	model := cfg.Model
	if model == "" {
		model = internal.DefaultPiperModel
	}
	return &PiperSynthesizer{Binary: binary, Model: model, NoiseW: DefaultNoiseW}
}

// Synthesize feeds text to piper on stdin and lets it write the WAV file
func (p *PiperSynthesizer) Synthesize(ctx context.Context, text, path string) error {
	if strings.TrimSpace(text) == "" {
		return &internal.SpeechError{Engine: EnginePiper, Err: ErrNothingToSay}
	}

	bin, err := exec.LookPath(p.Binary)
	if err != nil {
		return &internal.SpeechError{
			Engine: EnginePiper,
			Err:    fmt.Errorf("%s not found, install piper-tts or set speech.engine to openai: %w", p.Binary, err),
		}
	}

	args := []string{
		"--model", p.Model,
		"--noise_w", strconv.FormatFloat(p.NoiseW, 'f', -1, 64),
		"--output_file", path,
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stderr = &stderr

	internal.LogDebug("Running %s %s", bin, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return &internal.SpeechError{Engine: EnginePiper, Err: err}
	}

	if _, err := os.Stat(path); err != nil {
		return &internal.SpeechError{Engine: EnginePiper, Err: fmt.Errorf("no audio written: %w", err)}
	}
	return nil
}
