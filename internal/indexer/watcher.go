package indexer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"orgindex/internal/contextutil"
	"orgindex/internal/vault"
)

// DefaultDebounce is the quiet period before a changed file is re-indexed.
const DefaultDebounce = 50 * time.Millisecond

// Watcher re-indexes org files as they change on disk.
type Watcher struct {
	pipeline *Pipeline
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher over every vault of the pipeline.
func NewWatcher(pipeline *Pipeline, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		pipeline: pipeline,
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
	}
}

// Run watches until ctx is cancelled. Pending updates are dropped on exit.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	vaults := w.pipeline.Vaults()
	for _, v := range vaults.Vaults() {
		if err := w.addRecursive(watcher, vaults, v.RootPath); err != nil {
			return err
		}
	}

	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "watching vaults", "count", len(vaults.Vaults()))

	defer w.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			w.handle(ctx, watcher, event)

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			logger.ErrorContext(ctx, "fsnotify error", "error", wErr)
		}
	}
}

// addRecursive watches root and every non-excluded directory below it.
func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, vaults *vault.Manager, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", p, err)
		}
		if !d.IsDir() {
			return nil
		}
		if _, rel, ok := vaults.Locate(p); ok && vaults.SkipDir(rel) {
			return filepath.SkipDir
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

func (w *Watcher) handle(ctx context.Context, watcher *fsnotify.Watcher, event fsnotify.Event) {
	logger := contextutil.LoggerFromContext(ctx)
	vaults := w.pipeline.Vaults()

	v, rel, ok := vaults.Locate(event.Name)
	if !ok {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if vaults.SkipDir(rel) {
				return
			}
			if err := w.addRecursive(watcher, vaults, event.Name); err != nil {
				logger.WarnContext(ctx, "failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}

	if filepath.Ext(event.Name) != vault.Ext || vaults.Excluded(rel) {
		return
	}

	remove := event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
	if !remove && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	w.schedule(event.Name, func() {
		var err error
		if _, statErr := os.Stat(event.Name); remove && os.IsNotExist(statErr) {
			err = w.pipeline.RemoveNote(ctx, v.ID, rel)
		} else {
			err = w.pipeline.IndexNote(ctx, v.ID, rel)
		}
		if err != nil {
			logger.ErrorContext(ctx, "failed to update note", "rel_path", rel, "error", err)
		}
	})
}

// schedule runs fn once events for key have been quiet for the debounce period.
func (w *Watcher) schedule(key string, fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[key]; ok && t.Stop() {
		w.wg.Done()
	}
	w.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()
		w.mu.Lock()
		if w.timers[key] == t {
			delete(w.timers, key)
		}
		w.mu.Unlock()
		fn()
	})
	w.timers[key] = t
}

// stop cancels pending timers and waits for running updates.
func (w *Watcher) stop() {
	w.mu.Lock()
	for key, t := range w.timers {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.timers, key)
	}
	w.mu.Unlock()
	w.wg.Wait()
}
