// Package speech turns a summary into a spoken WAV file.
package speech

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/iksnae/asc/internal"
	"golang.org/x/text/unicode/norm"
)

// Synthesizer writes text as audio to path
type Synthesizer interface {
	Synthesize(ctx context.Context, text, path string) error
}

// Engine names accepted in speech.engine
const (
	EnginePiper  = "piper"
	EngineOpenAI = "openai"
)

// New returns the synthesizer selected by cfg.Engine
func New(cfg internal.SpeechConfig) (Synthesizer, error) {
	switch strings.ToLower(cfg.Engine) {
	case "", EnginePiper:
		return NewPiper(cfg), nil
	case EngineOpenAI:
		return NewOpenAI(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported speech engine: %s (supported: %s, %s)", cfg.Engine, EnginePiper, EngineOpenAI)
	}
}

var (
	bulletPattern      = regexp.MustCompile(`(?m)^\* `)
	punctuationPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s,] `)
)

// ErrNothingToSay is returned when a summary has no speakable text
var ErrNothingToSay = errors.New("summary has no text to speak")

// PrepareText strips reasoning and markdown from a summary so it reads well
// aloud. Bullets are spoken as "- " and other punctuation followed by a space
// becomes a full stop to give the voice a pause.
func PrepareText(summary string) string {
	if i := strings.LastIndex(summary, "</think>"); i >= 0 {
		summary = summary[i+len("</think>"):]
	}
	text := norm.NFKC.String(summary)
	text = bulletPattern.ReplaceAllString(text, "- ")
	text = strings.ReplaceAll(text, "*", "")
	text = strings.ReplaceAll(text, "#", "")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if rest, ok := strings.CutPrefix(line, "- "); ok {
			lines[i] = "- " + punctuationPattern.ReplaceAllString(rest, ". ")
			continue
		}
		lines[i] = punctuationPattern.ReplaceAllString(line, ". ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
