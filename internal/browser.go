package internal

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/browser"
)

var openFile = browser.OpenFile

// OpenInBrowser opens path with the system's default browser
func OpenInBrowser(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	LogDebug("Opening %s in browser", abs)
	if err := openFile(abs); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

// SetBrowserOpener replaces the browser launcher and returns a restore func
func SetBrowserOpener(fn func(path string) error) (restore func()) {
	previous := openFile
	openFile = fn
	return func() { openFile = previous }
}
