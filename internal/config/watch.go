package config

import (
	"context"
	"os"
	"slices"
	"sync"
	"time"
)

// FileWatcher polls file modification times and triggers a callback on change.
type FileWatcher struct {
	Interval time.Duration
	onChange func(string) // called with path that changed

	mu        sync.Mutex
	paths     []string
	lastMTime map[string]time.Time
}

// NewFileWatcher creates a watcher for given paths and interval.
func NewFileWatcher(paths []string, interval time.Duration, onChange func(string)) *FileWatcher {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	return &FileWatcher{
		Interval:  interval,
		onChange:  onChange,
		paths:     slices.Clone(paths),
		lastMTime: make(map[string]time.Time),
	}
}

// Paths returns the watched files.
func (w *FileWatcher) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.paths)
}

// SetPaths replaces the watched files. Newly added files are primed with
// their current mtime, so adding a path does not fire onChange by itself.
// Safe to call from inside onChange.
func (w *FileWatcher) SetPaths(paths []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range paths {
		if slices.Contains(w.paths, p) {
			continue
		}
		if fi, err := os.Stat(p); err == nil {
			w.lastMTime[p] = fi.ModTime()
		}
	}
	for p := range w.lastMTime {
		if !slices.Contains(paths, p) {
			delete(w.lastMTime, p)
		}
	}
	w.paths = slices.Clone(paths)
}

// Run polls until ctx is done. The first scan only primes the cache.
func (w *FileWatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	w.scanAll(true)
	for {
		select {
		case <-ticker.C:
			w.scanAll(false)
		case <-ctx.Done():
			return nil
		}
	}
}

// scanAll checks mtimes and invokes onChange for files that changed since last scan.
// A file that appears after priming counts as a change.
func (w *FileWatcher) scanAll(prime bool) {
	for _, p := range w.changed(prime) {
		w.onChange(p)
	}
}

func (w *FileWatcher) changed(prime bool) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var out []string
	for _, p := range w.paths {
		fi, err := os.Stat(p)
		if err != nil {
			// missing files are retried on the next tick
			continue
		}
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		w.lastMTime[p] = mt
		if prime || w.onChange == nil {
			continue
		}
		if !ok || mt.After(last) {
			out = append(out, p)
		}
	}
	return out
}
