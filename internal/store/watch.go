package store

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reports writes to the task database made by any process. Notifications are
// coalesced: at most one is pending at a time, and receivers are expected to re-read the
// slot stamp rather than count events. The channel is closed when ctx is done.
func (s Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory, not the file: SQLite in WAL mode writes to sibling -wal/-shm files.
	if err := w.Add(filepath.Clean(s.Dir)); err != nil {
		_ = w.Close()
		return nil, err
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				// Only writes count. Opening the database creates -wal/-shm files, and
				// reacting to those would make every stamp check trigger another one.
				if !isDBFile(ev.Name) || !ev.Has(fsnotify.Write) {
					continue
				}
				select {
				case out <- struct{}{}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return out, nil
}

// isDBFile matches the database and its WAL. The -shm index is written by readers too.
func isDBFile(path string) bool {
	base := filepath.Base(path)
	return base == sqliteFileName || base == sqliteFileName+"-wal"
}
