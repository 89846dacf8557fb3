package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/iksnae/asc/internal"
)

// JSONLExporter exports transcripts in JSONL format (one message per line)
type JSONLExporter struct{}

// Export exports a transcript to JSONL format
func (e *JSONLExporter) Export(transcript *internal.Transcript, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range transcript.Messages {
		obj := map[string]interface{}{
			"channel":   transcript.Channel,
			"timestamp": msg.Timestamp.UTC().Format(time.RFC3339),
			"nickname":  msg.Nickname,
			"text":      msg.Text,
		}

		// Encode to single line
		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
