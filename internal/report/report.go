// Package report renders the HTML page bundling a fetch's chat, summary
// and audio.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/iksnae/asc/internal"
	"github.com/iksnae/asc/internal/summary"
	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Page holds everything shown on a report. Sections without content are left out.
type Page struct {
	Channel   string
	Day       time.Time
	Location  *time.Location
	Summary   string
	AudioFile string
	Messages  []internal.Message
}

type row struct {
	ID   string
	Time string
	Nick string
	Text string
}

type view struct {
	Title     string
	Heading   string
	AudioFile string
	Summary   template.HTML
	Thinking  []string
	Rows      []row
}

var markdown = goldmark.New(
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

// Render writes the report for p to w
func Render(w io.Writer, p Page) error {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	slug := internal.ChannelSlug(p.Channel)

	v := view{
		Title:     "Chat Summary for " + slug,
		Heading:   fmt.Sprintf("Chat Summary for %s on %s", slug, p.Day.Format("2006-01-02")),
		AudioFile: p.AudioFile,
	}

	if p.Summary != "" {
		parts := summary.SplitThinking(p.Summary)
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(parts.Answer), &buf); err != nil {
			return fmt.Errorf("failed to render summary markdown: %w", err)
		}
		// goldmark omits raw HTML without the Unsafe option
		v.Summary = template.HTML(buf.String())
		v.Thinking = parts.Thinking
	}

	for _, m := range p.Messages {
		v.Rows = append(v.Rows, row{
			ID:   m.Timestamp.UTC().Format("2006-01-02T15:04:05"),
			Time: m.Timestamp.In(loc).Format("15:04"),
			Nick: m.Nickname,
			Text: m.Text,
		})
	}

	return pageTemplate.Execute(w, v)
}

// WriteFile renders the report for p into path
func WriteFile(path string, p Page) error {
	f, err := os.Create(path)
	if err != nil {
		return &internal.ExportError{Format: "html", Path: path, Err: err}
	}
	if err := Render(f, p); err != nil {
		f.Close()
		return &internal.ExportError{Format: "html", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &internal.ExportError{Format: "html", Path: path, Err: err}
	}
	internal.LogInfo("Generated HTML summary in %s", path)
	return nil
}
