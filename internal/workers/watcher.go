// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MKhiriev/go-odk-sync/internal/layout"
	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/internal/service"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 2 * time.Second

type changeWatcher struct {
	root     string
	trigger  Trigger
	debounce time.Duration
	logger   *logger.Logger
}

// NewChangeWatcher triggers a sync pass once the application folder at root
// has been quiet for debounce after a change. Hidden files, editor backups
// and partial downloads are ignored.
func NewChangeWatcher(root string, trigger Trigger, debounce time.Duration, log *logger.Logger) Worker {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &changeWatcher{root: filepath.Clean(root), trigger: trigger, debounce: debounce, logger: log}
}

func (w *changeWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err = w.addRecursive(watcher, w.root); err != nil {
		return fmt.Errorf("watching %s: %w", w.root, err)
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("fsnotify events channel closed")
			}
			if w.handle(watcher, event) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("fsnotify errors channel closed")
			}
			w.logger.Err(err).Str("func", "changeWatcher.Run").Msg("file watcher error")

		case <-timer.C:
			w.run(ctx)
			w.drain(watcher)
		}
	}
}

// run starts one sync pass. A pass already in progress absorbs the change.
func (w *changeWatcher) run(ctx context.Context) {
	w.logger.Debug().Str("func", "changeWatcher.run").Msg("application folder changed, syncing")
	if _, err := w.trigger.Trigger(ctx); err != nil && !errors.Is(err, service.ErrSyncInProgress) {
		w.logger.Err(err).Str("func", "changeWatcher.run").Msg("triggered sync failed")
	}
}

// drain discards the events produced by the sync pass itself.
func (w *changeWatcher) drain(watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			w.watchNewDir(watcher, event)
		default:
			return
		}
	}
}

// handle reports whether event should schedule a sync pass.
func (w *changeWatcher) handle(watcher *fsnotify.Watcher, event fsnotify.Event) bool {
	if ignored(event.Name) {
		return false
	}
	w.watchNewDir(watcher, event)
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		_ = watcher.Remove(event.Name)
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func (w *changeWatcher) watchNewDir(watcher *fsnotify.Watcher, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) || ignored(event.Name) {
		return
	}
	if info, err := os.Lstat(event.Name); err == nil && info.IsDir() {
		if err = w.addRecursive(watcher, event.Name); err != nil {
			w.logger.Err(err).Str("func", "changeWatcher.watchNewDir").Str("dir", event.Name).Msg("unable to watch directory")
		}
	}
}

func (w *changeWatcher) addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// ignored reports whether a change to path never needs a sync.
func ignored(path string) bool {
	name := filepath.Base(path)
	return strings.HasPrefix(name, ".") ||
		strings.HasSuffix(name, "~") ||
		strings.HasSuffix(name, ".swp") ||
		strings.HasSuffix(name, layout.TempSuffix)
}
