// Package watch re-runs analysis when documents change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when no debounce window is given
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a fixed set of files. Parent directories are watched
// rather than the files themselves so editors that save by rename are still
// seen.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	targets  map[string]struct{}
	onChange func(changed []string)
	logger   *slog.Logger

	mu      sync.Mutex
	pending map[string]struct{}
}

// New creates a watcher for paths. onChange receives the sorted absolute
// paths that changed during each debounce window.
func New(paths []string, debounce time.Duration, onChange func([]string), logger *slog.Logger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fs:       fsw,
		debounce: debounce,
		targets:  make(map[string]struct{}, len(paths)),
		onChange: onChange,
		logger:   logger,
		pending:  make(map[string]struct{}),
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		w.targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return w, nil
}

// Run processes events until ctx is cancelled or the watcher fails
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	debouncer := NewDebouncer(w.debounce, w.flush)
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}

			path := filepath.Clean(event.Name)
			if _, ok := w.targets[path]; !ok {
				continue
			}

			w.logger.Debug("document changed", "path", path, "op", event.Op.String())
			w.mu.Lock()
			w.pending[path] = struct{}{}
			w.mu.Unlock()
			debouncer.Trigger()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func (w *Watcher) flush() {
	w.mu.Lock()
	changed := make([]string, 0, len(w.pending))
	for p := range w.pending {
		changed = append(changed, p)
	}
	clear(w.pending)
	w.mu.Unlock()

	if len(changed) == 0 || w.onChange == nil {
		return
	}
	slices.Sort(changed)
	w.onChange(changed)
}
