package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrDayNotArchived is returned when the archive has no log for a day
	ErrDayNotArchived = errors.New("no log archived for this day")

	// ErrEmptyLog is returned when a window contains no messages
	ErrEmptyLog = errors.New("no messages found in the requested window")
)

// FetchError represents errors retrieving a log page from the archive
type FetchError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch error: GET %s: HTTP %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error: GET %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StorageError represents errors accessing the page cache
type StorageError struct {
	Path string
	Op   string // "open", "migrate", "read", "write", "clear"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError represents errors parsing data
type ParseError struct {
	Source string // "archive", "config"
	Key    string // URL or file path
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SummaryError represents failures of the summarization service
type SummaryError struct {
	Model string
	Err   error
}

func (e *SummaryError) Error() string {
	return fmt.Sprintf("summary error [%s]: %v", e.Model, e.Err)
}

func (e *SummaryError) Unwrap() error {
	return e.Err
}

// SpeechError represents failures of the text-to-speech engine
type SpeechError struct {
	Engine string
	Err    error
}

func (e *SpeechError) Error() string {
	return fmt.Sprintf("speech error [%s]: %v", e.Engine, e.Err)
}

func (e *SpeechError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
