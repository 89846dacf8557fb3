package summary

import "strings"

// Parts is a model answer split into its reasoning and the final text
type Parts struct {
	Thinking []string
	Answer   string
}

// SplitThinking separates <think> blocks emitted by reasoning models from the
// answer. Everything after the last </think> is the answer.
func SplitThinking(summary string) Parts {
	chunks := strings.Split(summary, "</think>")
	parts := Parts{Answer: strings.TrimSpace(chunks[len(chunks)-1])}
	for _, chunk := range chunks[:len(chunks)-1] {
		chunk = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(chunk), "<think>"))
		if chunk != "" {
			parts.Thinking = append(parts.Thinking, chunk)
		}
	}
	return parts
}
