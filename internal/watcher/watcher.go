// Package watcher observes the configuration file and republishes it to
// the daemon when it changes.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/rksv/snapkeeper/internal/config"
	"github.com/rksv/snapkeeper/internal/reload"
)

// Watcher reloads the config file on change and delivers the result
// through a reload.Box.
type Watcher struct {
	path     string
	mode     string
	interval time.Duration
	debounce time.Duration

	log *zap.Logger
	box *reload.Box
}

func New(path string, cfg config.ReloadConfig, log *zap.Logger, box *reload.Box) *Watcher {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	debounce := cfg.DebounceWindow
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		path:     path,
		mode:     cfg.Mode,
		interval: interval,
		debounce: debounce,
		log:      log,
		box:      box,
	}
}

// Start chooses the watching strategy based on config and blocks until ctx
// is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	switch w.mode {
	case "fsnotify":
		return w.startFsNotify(ctx)

	case "poll":
		w.startPolling(ctx)
		return nil

	case "auto", "":
		res := probe(filepath.Dir(w.path))
		if res.supported {
			return w.startFsNotify(ctx)
		}
		w.log.Warn("fsnotify unavailable, polling config file", zap.String("reason", res.reason))
		w.startPolling(ctx)
		return nil

	default:
		return fmt.Errorf("unknown reload mode %q", w.mode)
	}
}

// reloadNow re-reads the config file and publishes it. Load errors keep
// the previous config in effect.
func (w *Watcher) reloadNow() {
	cfg, err := config.Load(w.path)
	if err != nil {
		w.log.Error("config reload failed", zap.Error(err))
		return
	}
	w.box.Put(cfg)
	w.log.Info("config change detected", zap.String("path", w.path))
}
