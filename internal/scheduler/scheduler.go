// Package scheduler owns the repeating backup timer and serializes backup
// cycles so that automatic ticks and manual triggers never overlap.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/rksv/snapkeeper/internal/config"
	"github.com/rksv/snapkeeper/internal/history"
	"github.com/rksv/snapkeeper/internal/snapshot"
)

// Mode tells a cycle how it was triggered.
type Mode string

const (
	ModeAutomatic Mode = "automatic"
	ModeManual    Mode = "manual"
)

var (
	// ErrNotConfigured is returned when source or destination is not set.
	ErrNotConfigured = errors.New("backup not configured")
	// ErrCycleInProgress reports a trigger that was skipped because
	// another cycle is still running. Triggers are never queued.
	ErrCycleInProgress = errors.New("backup already in progress")
)

// SnapshotStore is the subset of the store the scheduler drives.
type SnapshotStore interface {
	Create(ctx context.Context, source, destRoot string) (snapshot.Snapshot, error)
	List(destRoot string) ([]snapshot.Snapshot, error)
	Delete(snap snapshot.Snapshot) error
}

// Recorder persists cycle outcomes. A nil Recorder disables history.
type Recorder interface {
	Record(e history.Entry) error
}

// Scheduler runs backup cycles on a repeating timer and on demand.
type Scheduler struct {
	store SnapshotStore
	hist  Recorder
	log   *zap.Logger

	mu   sync.Mutex // guards cfg and cron
	cfg  config.BackupConfig
	cron *cron.Cron

	busy atomic.Bool
}

func New(store SnapshotStore, hist Recorder, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		store: store,
		hist:  hist,
		log:   log,
	}
}

// Apply installs a new backup configuration. If the timer is running it is
// restarted so a changed interval takes effect; a config that disables
// automatic backups stops it.
func (s *Scheduler) Apply(cfg config.BackupConfig) error {
	s.mu.Lock()
	s.cfg = cfg
	running := s.cron != nil
	s.mu.Unlock()

	if running {
		return s.Start()
	}
	return nil
}

// Start installs the repeating trigger. An existing timer is always
// cancelled first, so Start never leaves two timers running. A disabled
// config or a non-positive interval leaves the scheduler stopped, without
// error.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	cfg := s.cfg
	if !cfg.Enabled || cfg.IntervalMinutes <= 0 {
		s.log.Info("automatic backups disabled",
			zap.Bool("enabled", cfg.Enabled),
			zap.Int("intervalMinutes", cfg.IntervalMinutes))
		return nil
	}

	c := cron.New()
	spec := fmt.Sprintf("@every %dm", cfg.IntervalMinutes)
	if _, err := c.AddFunc(spec, s.runAutomatic); err != nil {
		return fmt.Errorf("installing schedule %q: %w", spec, err)
	}
	c.Start()
	s.cron = c

	s.log.Info("automatic backups scheduled", zap.Int("intervalMinutes", cfg.IntervalMinutes))
	return nil
}

// Stop cancels future automatic triggers. It does not abort a cycle that
// is already running. Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Scheduler) stopLocked() {
	if s.cron == nil {
		return
	}
	s.cron.Stop()
	s.cron = nil
	s.log.Info("automatic backups stopped")
}

// Running reports whether the repeating timer is installed.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron != nil
}

func (s *Scheduler) snapshotConfig() config.BackupConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}
