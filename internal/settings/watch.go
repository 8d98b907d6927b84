package settings

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Watch calls fn with the freshly loaded record whenever the settings file is
// written or replaced. The parent directory is watched because Save replaces
// the file through a rename. Watch blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, fn func(Settings)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer w.Close()
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "create settings dir")
	}
	if err := w.Add(dir); err != nil {
		return errors.Wrapf(err, "watch %s", dir)
	}
	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			st, err := s.Load()
			if err != nil {
				log.Printf("settings reload: %v", err)
				continue
			}
			fn(st)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("settings watcher: %v", err)
		}
	}
}
