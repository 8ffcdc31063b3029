package refdata

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"internhunt/internal/errors"
)

// Watcher hot-reloads a reference-table file into a Store. Editors often
// replace files via rename, so the parent directory is watched and events
// are filtered to the target file.
type Watcher struct {
	path     string
	store    *Store
	logger   *errors.Logger
	fsw      *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher creates a watcher for the given override file. The file must
// already have been loaded once; the watcher only handles subsequent changes.
func NewWatcher(path string, store *Store, logger *errors.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeTableLoad,
			"failed to create file watcher", err)
	}

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, errors.NewIOError(errors.ErrCodeTableLoad,
			"failed to watch reference table directory", err).WithContext("path", path)
	}

	return &Watcher{
		path:     path,
		store:    store,
		logger:   logger,
		fsw:      fsw,
		debounce: 200 * time.Millisecond,
	}, nil
}

// Run processes file events until the context is cancelled. A reload failure
// keeps the previous snapshot in place and logs the error.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Coalesce the event bursts editors produce on save
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("reference table watcher error", "error", err.Error())
		}
	}
}

func (w *Watcher) reload() {
	tables, err := Load(w.path)
	if err != nil {
		w.logger.LogError(err, "reference table reload failed, keeping previous snapshot",
			"path", w.path)
		return
	}
	w.store.Swap(tables)
	w.logger.Info("reference tables reloaded",
		"path", w.path,
		"version", tables.Version,
		"skills", len(tables.Skills),
		"roles", len(tables.Roles))
}
