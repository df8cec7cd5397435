// Package reload hands freshly loaded configurations from the config
// watcher to the daemon loop. The box holds at most one pending config;
// a newer one replaces an undelivered older one, so the consumer always
// applies the latest state on disk.
package reload

import (
	"sync"

	"github.com/rksv/snapkeeper/internal/config"
)

type Box struct {
	mu   sync.Mutex
	cond *sync.Cond
	cfg  *config.Config
}

func NewBox() *Box {
	b := &Box{}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Put stores cfg, replacing any config not yet taken. It never blocks.
func (b *Box) Put(cfg *config.Config) {
	b.mu.Lock()
	b.cfg = cfg
	b.mu.Unlock()
	b.cond.Signal()
}

// Take blocks until a config is available, then returns it and clears
// the box.
func (b *Box) Take() *config.Config {
	b.mu.Lock()
	defer b.mu.Unlock()

	for b.cfg == nil {
		b.cond.Wait()
	}

	cfg := b.cfg
	b.cfg = nil
	return cfg
}

// TryTake returns the pending config, or nil when the box is empty.
// It never blocks.
func (b *Box) TryTake() *config.Config {
	b.mu.Lock()
	defer b.mu.Unlock()

	cfg := b.cfg
	b.cfg = nil
	return cfg
}
