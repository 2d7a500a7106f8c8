// Package watch reports changes to the directory being browsed.
package watch

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/kk-code-lab/mdir/internal/logging"
)

// Watcher monitors one directory at a time using fsnotify. Its event goroutine
// only sets a flag; the main loop polls it with Changed.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    *slog.Logger

	mu      sync.Mutex
	current string

	changed atomic.Bool
	done    chan struct{}
	once    sync.Once
}

// New creates a watcher and starts its event loop.
func New(logger *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	w := &Watcher{
		fsWatcher: fsWatcher,
		logger:    logger,
		done:      make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Watch switches the watched directory to dir. Watching the same directory
// again is a no-op.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir == w.current {
		return nil
	}
	if w.current != "" {
		if err := w.fsWatcher.Remove(w.current); err != nil {
			w.logger.Debug("unwatch failed", "dir", w.current, "err", err)
		}
		w.current = ""
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.current = dir
	w.changed.Store(false)
	w.logger.Debug("watching directory", "dir", dir)
	return nil
}

// Changed reports whether anything changed since the last call and clears the flag.
func (w *Watcher) Changed() bool {
	return w.changed.Swap(false)
}

// Close stops the event loop. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.fsWatcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			// Chmod alone does not change the listing.
			if event.Op == fsnotify.Chmod {
				continue
			}
			w.changed.Store(true)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("fsnotify watcher error", "err", err)
		}
	}
}
