// Package watch implements drop-folder mode: a directory is watched for
// incoming zip archives and each one is handed off once its writes settle.
package watch

import (
	"context"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler is called with the path of a settled archive.
type Handler func(archivePath string)

// DropWatcher watches a single directory for zip files.
type DropWatcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	debounce time.Duration
	handler  Handler

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewDropWatcher creates a watcher over dir. Archives are reported after
// debounce of write silence, so half-copied files are not picked up.
func NewDropWatcher(dir string, debounce time.Duration, handler Handler) (*DropWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	return &DropWatcher{
		watcher:  w,
		dir:      dir,
		debounce: debounce,
		handler:  handler,
		timers:   map[string]*time.Timer{},
	}, nil
}

// Run blocks handling events until ctx is cancelled.
func (w *DropWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	defer w.stopTimers()

	log.Printf("Watching %s for zip archives...", w.dir)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".zip") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.armTimer(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[ERROR] watcher error: %v", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// armTimer (re)starts the settle timer for one archive. Every write resets
// it, so the handler only fires after the copy finished.
func (w *DropWatcher) armTimer(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		log.Printf("Archive settled: %s", filepath.Base(path))
		w.handler(path)
	})
}

func (w *DropWatcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, timer := range w.timers {
		timer.Stop()
	}
}
