package watcher

import (
	"path/filepath"
	"strings"
	"time"
)

// Options configures the drop-directory watcher.
type Options struct {
	// Extensions lists the file extensions that count as roster documents.
	// Lowercase, with the leading dot.
	Extensions []string

	// SettleDelay is how long a file must stop changing before it is
	// reported. Copies into the drop directory arrive in chunks, so a
	// too-short delay would import half a file.
	SettleDelay time.Duration

	IgnorePatterns []string
	IgnoreHidden   bool
}

// setDefaults applies default values to unset options.
func (o *Options) setDefaults() {
	if o.SettleDelay == 0 {
		o.SettleDelay = 2 * time.Second
	}

	if o.Extensions == nil {
		o.Extensions = []string{".csv", ".tsv", ".xlsx", ".txt"}
	}

	if o.IgnorePatterns == nil {
		o.IgnorePatterns = []string{
			".DS_Store",
			"*.tmp",
			"*.temp",
			"*.partial",
			"Thumbs.db",
		}
		o.IgnoreHidden = true
	}
}

// accepts reports whether the path is a candidate roster document.
func (o *Options) accepts(path string) bool {
	if o.shouldIgnore(path) {
		return false
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range o.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// shouldIgnore checks if a path matches ignore patterns.
func (o *Options) shouldIgnore(path string) bool {
	base := filepath.Base(path)

	if o.IgnoreHidden && strings.HasPrefix(base, ".") && base != "." && base != ".." {
		return true
	}

	for _, pattern := range o.IgnorePatterns {
		matched, err := filepath.Match(pattern, base)
		if err == nil && matched {
			return true
		}
	}
	return false
}
