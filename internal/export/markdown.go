package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/asc/internal"
)

// MarkdownExporter exports transcripts in Markdown format
type MarkdownExporter struct{}

// Export exports a transcript to Markdown format
func (e *MarkdownExporter) Export(transcript *internal.Transcript, w io.Writer) error {
	// Header
	_, _ = fmt.Fprintf(w, "# %s\n\n", transcript.Channel)
	_, _ = fmt.Fprintf(w, "**From:** %s  \n", transcript.Start.UTC().Format(internal.TimestampLayout))
	_, _ = fmt.Fprintf(w, "**To:** %s  \n", transcript.End.UTC().Format(internal.TimestampLayout))
	_, _ = fmt.Fprintf(w, "**Messages:** %d  \n", len(transcript.Messages))
	_, _ = fmt.Fprintf(w, "**Participants:** %d\n\n", len(transcript.Nicknames()))

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Messages\n\n")

	var prev string
	for _, msg := range transcript.Messages {
		if msg.Nickname != prev {
			_, _ = fmt.Fprintf(w, "**%s** (%s)\n\n", msg.Nickname, msg.Timestamp.UTC().Format("15:04:05"))
			prev = msg.Nickname
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", escapeMarkdown(msg.Text)); err != nil {
			return err
		}
	}

	return nil
}

// escapeMarkdown escapes markdown emphasis and headings in chat text
func escapeMarkdown(text string) string {
	if strings.HasPrefix(text, "`") {
		return text
	}
	text = strings.ReplaceAll(text, "**", "\\*\\*")
	text = strings.ReplaceAll(text, "__", "\\_\\_")
	if strings.HasPrefix(text, "#") {
		text = "\\" + text
	}
	return text
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
