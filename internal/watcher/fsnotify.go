package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// startFsNotify reloads when fsnotify reports changes to the config file.
// Editors typically emit a burst of events per save (write+rename+chmod),
// so reloads are debounced.
func (w *Watcher) startFsNotify(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	// Watch the directory, not the file: most editors replace the file by
	// rename, which drops a watch placed on the file itself.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	name := filepath.Base(w.path)
	resetCh := make(chan struct{}, 1)

	go func() {
		var t *time.Timer
		for range resetCh {
			if t != nil {
				t.Stop()
			}
			t = time.AfterFunc(w.debounce, w.reloadNow)
		}
	}()
	defer close(resetCh)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				w.log.Error("fsnotify events channel closed")
				return nil
			}

			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			select {
			case resetCh <- struct{}{}:
			default:
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("fsnotify error", zap.Error(err))
		}
	}
}
