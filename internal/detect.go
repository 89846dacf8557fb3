package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

const cacheDirName = ".asc-cache"

// DefaultCacheDir returns the page cache directory in the user's home
func DefaultCacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, cacheDirName), nil
}

// PageCacheExists checks if a page cache database exists in dir
func PageCacheExists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, pageCacheFile))
	return err == nil && !info.IsDir()
}
