// Package watch reports changes to supported source files under a
// directory tree, debounced per file.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"

	"github.com/praetorian-inc/tsce/pkg/enum"
	"github.com/praetorian-inc/tsce/pkg/paths"
)

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 100 * time.Millisecond

// ErrNotDirectory is returned when the watch root is not a directory.
var ErrNotDirectory = errors.New("watch root is not a directory")

// Config configures a Watcher.
type Config struct {
	Root string
	// Exclude holds glob patterns with the semantics of enum.Config.Exclude.
	Exclude       []string
	IncludeHidden bool
	Debounce      time.Duration
}

// Event is one settled change.
type Event struct {
	Path string
	// Removed is set when the file no longer exists.
	Removed bool
}

// Watcher monitors a directory tree with fsnotify.
type Watcher struct {
	config   Config
	excludes []glob.Glob
	watcher  *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]*time.Timer
	settled chan string
	done    chan struct{}
	once    sync.Once
}

// New creates a Watcher. Close releases it.
func New(config Config) (*Watcher, error) {
	info, err := os.Stat(config.Root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", config.Root, ErrNotDirectory)
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}

	excludes, err := enum.CompileGlobs(config.Exclude)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		config:   config,
		excludes: excludes,
		watcher:  fw,
		pending:  make(map[string]*time.Timer),
		settled:  make(chan string, 64),
		done:     make(chan struct{}),
	}
	if err := w.addRecursive(config.Root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// Run calls handle for every settled change, one at a time, until ctx is
// cancelled or handle fails.
func (w *Watcher) Run(ctx context.Context, handle func(Event) error) error {
	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.observe(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", w.config.Root, err)
		case path := <-w.settled:
			_, statErr := os.Stat(path)
			if err := handle(Event{Path: path, Removed: errors.Is(statErr, fs.ErrNotExist)}); err != nil {
				return err
			}
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.once.Do(func() { close(w.done) })
	return w.watcher.Close()
}

func (w *Watcher) observe(event fsnotify.Event) {
	if w.skipped(event.Name) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addRecursive(event.Name)
			return
		}
	}

	if !paths.IsSupported(event.Name) {
		return
	}
	w.schedule(event.Name)
}

// schedule restarts the debounce timer of path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.config.Debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		select {
		case w.settled <- path:
		case <-w.done:
		}
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.config.Root && w.skipped(path) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// skipped reports whether path lies in a hidden, vendored or excluded
// location relative to the root.
func (w *Watcher) skipped(path string) bool {
	rel, err := filepath.Rel(w.config.Root, path)
	if err != nil || rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, part := range strings.Split(rel, "/") {
		if part == "node_modules" || (!w.config.IncludeHidden && strings.HasPrefix(part, ".")) {
			return true
		}
	}
	return enum.MatchAny(w.excludes, rel)
}
