// Package summary condenses chat transcripts through an OpenAI-compatible
// chat completion endpoint such as a local Ollama server.
package summary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fatih/color"
	"github.com/iksnae/asc/internal"
	openai "github.com/sashabaranov/go-openai"
)

// Summarizer turns chat text into a summary, streaming it to w as it arrives
type Summarizer interface {
	Summarize(ctx context.Context, chat string, w io.Writer) (string, error)
}

// OpenAISummarizer talks to any server implementing the chat completions API
type OpenAISummarizer struct {
	client        *openai.Client
	cfg           internal.SummaryConfig
	httpClient    *http.Client
	fixedResponse string
}

// Option customizes an OpenAISummarizer
type Option func(*OpenAISummarizer)

// WithFixedResponse skips the endpoint and always answers with response
func WithFixedResponse(response string) Option {
	return func(s *OpenAISummarizer) {
		s.fixedResponse = response
	}
}

// WithHTTPClient sets the HTTP client used to reach the endpoint
func WithHTTPClient(hc *http.Client) Option {
	return func(s *OpenAISummarizer) {
		s.httpClient = hc
	}
}

// New creates a summarizer for the endpoint described by cfg
func New(cfg internal.SummaryConfig, opts ...Option) *OpenAISummarizer {
	s := &OpenAISummarizer{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}

	// Ollama ignores the key but the client always sends one
	key := cfg.APIKey
	if key == "" {
		key = "ollama"
	}
	clientCfg := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if s.httpClient != nil {
		clientCfg.HTTPClient = s.httpClient
	}
	s.client = openai.NewClientWithConfig(clientCfg)
	return s
}

const promptTemplate = `
You are an assistant that summarizes chat logs without additional commentary.
Use exclusively they/them pronouns when referring to people in this chat log.
Always reply in English.
Summarize the following chat log, do not include any other text in your response:

<chat>
%s
</chat>
`

// Prompt wraps chat in the summarization instructions
func Prompt(chat string) string {
	return fmt.Sprintf(promptTemplate, chat)
}

// Summarize sends chat to the model and streams the answer to w
func (s *OpenAISummarizer) Summarize(ctx context.Context, chat string, w io.Writer) (string, error) {
	if s.fixedResponse != "" {
		_, _ = fmt.Fprintln(w, s.fixedResponse)
		return s.fixedResponse, nil
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: Prompt(chat)},
		},
		Stream: true,
	}

	internal.LogDebug("Requesting summary from %s using %s", s.cfg.BaseURL, s.cfg.Model)
	stream, err := s.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusUnauthorized {
			err = fmt.Errorf("unauthorized, check summary.api_key or OPENAI_API_KEY: %w", err)
		}
		return "", &internal.SummaryError{Model: s.cfg.Model, Err: err}
	}
	defer stream.Close()

	message, err := streamedResponse(stream, w)
	if err != nil {
		return "", &internal.SummaryError{Model: s.cfg.Model, Err: err}
	}
	if strings.TrimSpace(message) == "" {
		return "", &internal.SummaryError{Model: s.cfg.Model, Err: errors.New("model returned an empty summary")}
	}
	return message, nil
}

func streamedResponse(stream *openai.ChatCompletionStream, w io.Writer) (string, error) {
	out := color.New(color.FgGreen)
	var b strings.Builder
	for {
		response, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			_, _ = out.Fprintln(w)
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}
		if len(response.Choices) == 0 {
			continue
		}
		token := response.Choices[0].Delta.Content
		b.WriteString(token)
		_, _ = out.Fprint(w, token)
	}
}
