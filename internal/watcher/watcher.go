// Package watcher invalidates cached context when artifact records
// change on disk outside the running process, for example a second
// finsight invocation ingesting documents while a chat is open.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/finsight-cli/internal/logger"
)

// Watcher observes the artifacts directory tree and fires a callback on
// committed record changes.
type Watcher struct {
	dir      string
	onChange func()
	fsw      *fsnotify.Watcher
}

// New creates a watcher over dir. onChange runs on the watch goroutine;
// it must be cheap and safe to call concurrently with readers.
func New(dir string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{dir: dir, onChange: onChange, fsw: fsw}, nil
}

// Start begins watching. It registers the artifacts root and every
// existing group directory, then follows new group directories as they
// appear. Returns immediately; the watch loop runs until ctx is done or
// Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o700); err != nil {
		return err
	}
	if err := w.fsw.Add(w.dir); err != nil {
		return err
	}
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if err := w.fsw.Add(filepath.Join(w.dir, entry.Name())); err != nil {
				logger.Warn("watch %s: %v", entry.Name(), err)
			}
		}
	}

	go w.loop(ctx)
	return nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher: %v", err)
		}
	}
}

// handleEvent filters noise and fires the callback for real record
// changes. In-flight temp files are skipped: only the rename that
// commits a record matters.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".tmp-") || strings.HasPrefix(name, ".") {
		return
	}

	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			// A new group directory; follow it.
			if err := w.fsw.Add(event.Name); err != nil {
				logger.Warn("watch %s: %v", name, err)
			}
			return
		}
	}

	if event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
		logger.Debug("artifact change: %s %s", event.Op, name)
		w.onChange()
	}
}
