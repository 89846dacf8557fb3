package internal

import (
	"fmt"
	"strings"
)

// OutputType selects which artifacts a fetch produces
type OutputType string

const (
	OutputChat          OutputType = "CHAT"
	OutputTextSummary   OutputType = "TEXT_SUMMARY"
	OutputSpeechSummary OutputType = "SPEECH_SUMMARY"
)

// OutputTypes lists the accepted output types in help order
var OutputTypes = []OutputType{OutputChat, OutputTextSummary, OutputSpeechSummary}

// OutputTypeNames returns the accepted output types as a comma separated list
func OutputTypeNames() string {
	names := make([]string, len(OutputTypes))
	for i, o := range OutputTypes {
		names[i] = string(o)
	}
	return strings.Join(names, ", ")
}

// ParseOutputType parses an output type name. SUMMARY is accepted for TEXT_SUMMARY.
func ParseOutputType(s string) (OutputType, error) {
	if strings.EqualFold(strings.TrimSpace(s), "SUMMARY") {
		return OutputTextSummary, nil
	}
	for _, o := range OutputTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(o)) {
			return o, nil
		}
	}
	return "", fmt.Errorf("unsupported output type: %q (supported: %s)", s, OutputTypeNames())
}

// WantsSummary reports whether the chat must be summarized
func (o OutputType) WantsSummary() bool {
	return o == OutputTextSummary || o == OutputSpeechSummary
}

// WantsSpeech reports whether the summary must be synthesized to audio
func (o OutputType) WantsSpeech() bool {
	return o == OutputSpeechSummary
}
