package export

import (
	"io"

	"github.com/iksnae/asc/internal"
)

// TextExporter writes the transcript as the readable chat text that is
// also fed to the summarizer
type TextExporter struct {
	Verbose bool
}

// Export exports a transcript as chat text
func (e *TextExporter) Export(transcript *internal.Transcript, w io.Writer) error {
	_, err := io.WriteString(w, transcript.Render(e.Verbose))
	return err
}

// Extension returns the file extension for this format
func (e *TextExporter) Extension() string {
	return "txt"
}
