// Package watch implements watch mode: a recursive fsnotify watcher feeding
// a debounced rebuild trigger. Events accumulate into a mutex-guarded
// pending set and reset a timer; once a quiet window passes, exactly one
// build runs. Events arriving while a build is in progress are deferred to
// the next window, so build overlap is an enforced invariant rather than a
// timing assumption.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet window after the last event before a build
const DefaultDebounce = 500 * time.Millisecond

// skipDirs are directories that should not be watched
var skipDirs = map[string]bool{
	".git":         true,
	".plhub":       true,
	"node_modules": true,
}

// Watcher watches a project tree for source changes and triggers rebuilds
type Watcher struct {
	root     string
	debounce time.Duration
	build    func(changed int)
	logger   *slog.Logger

	fsw *fsnotify.Watcher

	mu       sync.Mutex
	pending  map[string]struct{}
	timer    *time.Timer
	building bool
}

// New creates a watcher for root. The build callback receives the number of
// pending changes and runs at most once at a time.
func New(root string, debounce time.Duration, build func(changed int), logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		root:     root,
		debounce: debounce,
		build:    build,
		logger:   logger,
		fsw:      fsw,
		pending:  make(map[string]struct{}),
	}, nil
}

// Start begins watching the root directory recursively and blocks until the
// context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // keep walking past unreadable directories
		}

		if d.IsDir() {
			if skipDirs[d.Name()] {
				return fs.SkipDir
			}

			return w.fsw.Add(path)
		}

		return nil
	})
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}

			w.handle(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}

			w.logger.Warn("watch error", "error", err)
		}
	}
}

// Stop stops the watcher and releases its resources
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	return w.fsw.Close()
}

// handle converts a raw fsnotify event into a pending change. New
// directories are added to the watch set; only .poh creates and writes
// count as changes.
func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		// Watch newly created directories
		if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
			if !skipDirs[filepath.Base(event.Name)] {
				_ = w.fsw.Add(event.Name)
			}
			return
		}
	}

	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	if !strings.HasSuffix(event.Name, ".poh") {
		return
	}

	w.note(event.Name)
}

// note records a pending change and resets the debounce timer
func (w *Watcher) note(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = struct{}{}

	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.fire)
	} else {
		w.timer.Reset(w.debounce)
	}
}

// fire runs one build for the accumulated pending set. If a build is
// already in progress the timer is re-armed and the changes wait for the
// next window.
func (w *Watcher) fire() {
	w.mu.Lock()

	if w.building {
		w.timer.Reset(w.debounce)
		w.mu.Unlock()
		return
	}

	n := len(w.pending)
	if n == 0 {
		w.mu.Unlock()
		return
	}

	w.pending = make(map[string]struct{})
	w.building = true
	w.mu.Unlock()

	w.build(n)

	w.mu.Lock()
	w.building = false
	if len(w.pending) > 0 {
		w.timer.Reset(w.debounce)
	}
	w.mu.Unlock()
}
