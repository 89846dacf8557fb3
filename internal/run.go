package internal

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Artifact file names inside a run directory
const (
	ChatBasename    = "chat"
	SummaryFilename = "summary.md"
	AudioFilename   = "summary.wav"
	ReportFilename  = "summary.html"
)

// Run is the output directory of one fetch invocation
type Run struct {
	Dir string
}

// ChannelSlug returns channel without leading '#', escaped for use in a path
func ChannelSlug(channel string) string {
	return url.PathEscape(strings.TrimLeft(channel, "#"))
}

// NewRun creates <baseDir>/<slug>-<YYYY-MM-DD-HH-MM-SS>
func NewRun(baseDir, channel string, now time.Time) (*Run, error) {
	dir := filepath.Join(baseDir, ChannelSlug(channel)+"-"+now.Format("2006-01-02-15-04-05"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Run{Dir: dir}, nil
}

// ChatPath returns the path of the chat export with the given extension
func (r *Run) ChatPath(ext string) string {
	return filepath.Join(r.Dir, ChatBasename+"."+ext)
}

// SummaryPath returns the path of the text summary
func (r *Run) SummaryPath() string {
	return filepath.Join(r.Dir, SummaryFilename)
}

// AudioPath returns the path of the spoken summary
func (r *Run) AudioPath() string {
	return filepath.Join(r.Dir, AudioFilename)
}

// ReportPath returns the path of the HTML report
func (r *Run) ReportPath() string {
	return filepath.Join(r.Dir, ReportFilename)
}
