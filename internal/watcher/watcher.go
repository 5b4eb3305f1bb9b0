// Package watcher monitors a drop directory for roster documents. A file is
// reported only after it has stopped changing for the settle delay, so a
// document still being copied is never picked up half-written.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event is one settled roster file ready for import.
type Event struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Watcher watches a single directory, non-recursively.
type Watcher struct {
	logger *slog.Logger
	opts   Options
	dir    string

	backend *fsnotifyBackend

	pending map[string]*pendingFile
	mu      sync.Mutex

	events chan Event
	errors chan error
	done   chan struct{}
	wg     sync.WaitGroup
}

// pendingFile tracks a file that may still be changing.
type pendingFile struct {
	size    int64
	modTime time.Time
	timer   *time.Timer
}

// New creates a watcher for the given drop directory.
func New(logger *slog.Logger, dir string, opts Options) (*Watcher, error) {
	opts.setDefaults()

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat drop directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("drop path %s is not a directory", dir)
	}

	backend, err := newFsnotifyBackend(dir)
	if err != nil {
		return nil, err
	}

	return &Watcher{
		logger:  logger.With("component", "watcher"),
		opts:    opts,
		dir:     filepath.Clean(dir),
		backend: backend,
		pending: make(map[string]*pendingFile),
		events:  make(chan Event, 16),
		errors:  make(chan error, 4),
		done:    make(chan struct{}),
	}, nil
}

// Events returns the channel of settled roster files.
func (w *Watcher) Events() <-chan Event { return w.events }

// Errors returns the channel of watch errors.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Start scans the directory for files already present, then watches for new
// ones. It blocks until the context is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.scanExisting(); err != nil {
		return err
	}

	w.wg.Add(1)
	go w.loop(ctx)

	w.logger.Info("watching drop directory", "path", w.dir)
	<-ctx.Done()
	return nil
}

// Stop releases the watch and closes the event channels.
func (w *Watcher) Stop() error {
	close(w.done)

	w.mu.Lock()
	for _, p := range w.pending {
		p.timer.Stop()
	}
	clear(w.pending)
	w.mu.Unlock()

	err := w.backend.close()
	w.wg.Wait()

	close(w.events)
	close(w.errors)
	return err
}

// scanExisting queues files that were dropped while the server was down.
func (w *Watcher) scanExisting() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("scan drop directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if w.opts.accepts(path) {
			w.startSettling(path)
		}
	}
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case path, ok := <-w.backend.changes:
			if !ok {
				return
			}
			w.handleChange(path)
		case path, ok := <-w.backend.removals:
			if !ok {
				return
			}
			w.cancelPending(path)
		case err, ok := <-w.backend.errs:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			case <-w.done:
			}
		}
	}
}

func (w *Watcher) handleChange(path string) {
	if !w.opts.accepts(path) {
		return
	}
	w.startSettling(path)
}

// startSettling (re)arms the settle timer for a file.
func (w *Watcher) startSettling(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if p, exists := w.pending[path]; exists {
		p.timer.Stop()
	}

	info, err := os.Stat(path)
	if err != nil {
		delete(w.pending, path)
		return
	}
	if info.IsDir() {
		return
	}

	p := &pendingFile{size: info.Size(), modTime: info.ModTime()}
	p.timer = time.AfterFunc(w.opts.SettleDelay, func() {
		w.checkSettled(path)
	})
	w.pending[path] = p
}

// checkSettled emits the file if it stopped changing, or rearms the timer.
func (w *Watcher) checkSettled(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, exists := w.pending[path]
	if !exists {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		// Deleted before it settled.
		delete(w.pending, path)
		return
	}

	if info.Size() != p.size || !info.ModTime().Equal(p.modTime) {
		p.size = info.Size()
		p.modTime = info.ModTime()
		p.timer = time.AfterFunc(w.opts.SettleDelay, func() {
			w.checkSettled(path)
		})
		return
	}

	delete(w.pending, path)

	event := Event{Path: path, Size: info.Size(), ModTime: info.ModTime()}
	select {
	case w.events <- event:
	case <-w.done:
	}
}

func (w *Watcher) cancelPending(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if p, exists := w.pending[path]; exists {
		p.timer.Stop()
		delete(w.pending, path)
	}
}
