package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// fsnotifyBackend translates raw fsnotify events into change and removal
// notifications for one directory.
type fsnotifyBackend struct {
	watcher *fsnotify.Watcher

	changes  chan string
	removals chan string
	errs     chan error
	done     chan struct{}
}

func newFsnotifyBackend(dir string) (*fsnotifyBackend, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	b := &fsnotifyBackend{
		watcher:  fw,
		changes:  make(chan string, 64),
		removals: make(chan string, 16),
		errs:     make(chan error, 4),
		done:     make(chan struct{}),
	}
	go b.relay()
	return b, nil
}

func (b *fsnotifyBackend) relay() {
	defer close(b.changes)
	defer close(b.removals)
	defer close(b.errs)

	for {
		select {
		case <-b.done:
			return
		case event, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			switch {
			case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
				b.send(b.changes, event.Name)
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				b.send(b.removals, event.Name)
			}
		case err, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
			select {
			case b.errs <- err:
			case <-b.done:
				return
			}
		}
	}
}

func (b *fsnotifyBackend) send(ch chan string, path string) {
	select {
	case ch <- path:
	case <-b.done:
	}
}

func (b *fsnotifyBackend) close() error {
	close(b.done)
	return b.watcher.Close()
}
