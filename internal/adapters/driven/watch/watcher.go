// Package watch notifies callers when schema files change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/schemadiff/internal/core/ports/driven"
	"github.com/custodia-labs/schemadiff/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.SchemaWatcher = (*Watcher)(nil)

// DefaultDebounce is how long a file must be quiet before a change is reported.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches files through their parent directories so that editors
// which save by rename are still seen.
type Watcher struct {
	debounce time.Duration
}

// NewWatcher creates a watcher. A debounce of zero uses DefaultDebounce.
func NewWatcher(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{debounce: debounce}
}

// Watch blocks until ctx is done. It returns nil on cancellation.
func (w *Watcher) Watch(ctx context.Context, paths []string, onChange func(path string)) error {
	if len(paths) == 0 {
		return fmt.Errorf("watch: no paths given")
	}

	targets := make(map[string]string, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("watch: resolve %s: %w", p, err)
		}
		targets[abs] = p
		dirs[filepath.Dir(abs)] = true
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer fw.Close()

	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch: add %s: %w", dir, err)
		}
		logger.Debug("Watching directory %s", dir)
	}

	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			original, ok := targets[filepath.Clean(event.Name)]
			if !ok {
				continue
			}
			logger.Debug("%s event for %s", event.Op, event.Name)
			pending[original] = true
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)
			for _, p := range changed {
				onChange(p)
			}
		}
	}
}
