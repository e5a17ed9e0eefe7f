/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package watch provides file-watching with debounced change delivery.
//
// It monitors a directory tree, filters events through include/ignore
// glob patterns, and invokes a callback after a quiet period. Events
// within the debounce window are coalesced so rapid successive writes
// (an editor writing then renaming a temp file) deliver once, with
// changed and removed paths separated.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"bennypowers.dev/madregot/internal/logger"
)

// defaultDebounce is the delay before firing the callback after the
// last filesystem event.
const defaultDebounce = 300 * time.Millisecond

// skipDirectories are never watched, regardless of ignore patterns.
// They generate high-frequency noise and never contain sources.
var skipDirectories = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
}

// Config holds the parameters for a Watcher.
type Config struct {
	// BaseDir is the root directory to watch. All patterns are
	// resolved relative to this path.
	BaseDir string

	// Patterns are doublestar glob patterns (e.g. "**/*.tsx") that
	// select which files trigger the callback. An empty slice selects
	// every non-ignored file.
	Patterns []string

	// Ignore are doublestar glob patterns for paths that never
	// trigger the callback.
	Ignore []string

	// Debounce is the quiet period after the last event before the
	// callback fires. Zero or negative falls back to defaultDebounce.
	Debounce time.Duration

	// OnEvent is called after the debounce window closes with the
	// deduplicated, sorted lists of changed and removed paths,
	// relative to BaseDir. A nil callback is a no-op.
	OnEvent func(ctx context.Context, changed, removed []string) error
}

// Watcher monitors a directory tree and fires a debounced callback
// when matching files change. Run blocks until the context is
// cancelled.
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	baseDir  string
	debounce time.Duration
}

// New creates a Watcher from the given Config, registering every
// non-skipped directory under BaseDir for monitoring.
func New(cfg Config) (*Watcher, error) {
	baseDir := cfg.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		baseDir = wd
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		baseDir:  absBase,
		debounce: debounce,
	}

	if err := w.addRecursive(absBase); err != nil {
		fsw.Close() //nolint:errcheck // best-effort cleanup
		return nil, err
	}

	return w, nil
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run processes events until ctx is cancelled. Pending coalesced
// events are dropped on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	changed := make(map[string]bool)
	removed := make(map[string]bool)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.apply(event, changed, removed) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)

		case <-timer.C:
			if len(changed) == 0 && len(removed) == 0 {
				continue
			}
			changedPaths := drain(changed)
			removedPaths := drain(removed)
			if w.cfg.OnEvent != nil {
				if err := w.cfg.OnEvent(ctx, changedPaths, removedPaths); err != nil {
					logger.Error("watch: %v", err)
				}
			}
		}
	}
}

// apply folds one raw fsnotify event into the pending sets, reporting
// whether anything relevant accrued.
func (w *Watcher) apply(event fsnotify.Event, changed, removed map[string]bool) bool {
	rel, err := filepath.Rel(w.baseDir, event.Name)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	// New directories must be registered before events inside them
	// can arrive.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !skipDirectories[filepath.Base(event.Name)] {
				_ = w.addRecursive(event.Name)
			}
			return false
		}
	}

	if !w.matches(rel) {
		return false
	}

	switch {
	case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
		delete(changed, rel)
		removed[rel] = true
	case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
		delete(removed, rel)
		changed[rel] = true
	default:
		// Chmod-only events don't affect content.
		return false
	}
	return true
}

// matches applies the include and ignore patterns to a slash-relative
// path.
func (w *Watcher) matches(rel string) bool {
	for _, pattern := range w.cfg.Ignore {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return false
		}
	}
	if len(w.cfg.Patterns) == 0 {
		return true
	}
	for _, pattern := range w.cfg.Patterns {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

// addRecursive registers root and every non-skipped directory below it.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directories are skipped, not fatal.
			return nil //nolint:nilerr
		}
		if !d.IsDir() {
			return nil
		}
		if skipDirectories[d.Name()] {
			return fs.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// drain empties a pending set into a sorted slice.
func drain(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for p := range set {
		delete(set, p)
	}
	return paths
}
