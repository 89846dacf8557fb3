package speech

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/iksnae/asc/internal"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAISynthesizer uses the OpenAI speech endpoint
type OpenAISynthesizer struct {
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.SpeechVoice
}

// NewOpenAI creates an OpenAI synthesizer from cfg. A piper voice file in
// cfg.Model falls back to tts-1.
func NewOpenAI(cfg internal.SpeechConfig) *OpenAISynthesizer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	model := openai.SpeechModel(cfg.Model)
	if cfg.Model == "" || strings.HasSuffix(cfg.Model, ".onnx") {
		model = openai.TTSModel1
	}
	voice := openai.SpeechVoice(cfg.Voice)
	if cfg.Voice == "" {
		voice = openai.VoiceAlloy
	}

	return &OpenAISynthesizer{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		voice:  voice,
	}
}

// Synthesize requests WAV audio for text and stores it at path
func (o *OpenAISynthesizer) Synthesize(ctx context.Context, text, path string) error {
	if strings.TrimSpace(text) == "" {
		return &internal.SpeechError{Engine: EngineOpenAI, Err: ErrNothingToSay}
	}

	internal.LogDebug("Requesting speech from OpenAI using %s/%s", o.model, o.voice)
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          o.model,
		Input:          text,
		Voice:          o.voice,
		ResponseFormat: openai.SpeechResponseFormatWav,
	})
	if err != nil {
		return &internal.SpeechError{Engine: EngineOpenAI, Err: err}
	}
	defer resp.Close()

	f, err := os.Create(path)
	if err != nil {
		return &internal.SpeechError{Engine: EngineOpenAI, Err: err}
	}
	if _, err := io.Copy(f, resp); err != nil {
		f.Close()
		return &internal.SpeechError{Engine: EngineOpenAI, Err: err}
	}
	if err := f.Close(); err != nil {
		return &internal.SpeechError{Engine: EngineOpenAI, Err: err}
	}
	return nil
}
