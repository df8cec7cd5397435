package scheduler

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/rksv/snapkeeper/internal/config"
	"github.com/rksv/snapkeeper/internal/history"
	"github.com/rksv/snapkeeper/internal/retention"
	"github.com/rksv/snapkeeper/internal/snapshot"
)

// runAutomatic is the timer callback. Nobody waits on a tick, so outcomes
// are only logged.
func (s *Scheduler) runAutomatic() {
	snap, err := s.RunCycle(context.Background(), ModeAutomatic)
	switch {
	case errors.Is(err, ErrCycleInProgress):
		s.log.Warn("backup tick skipped", zap.Error(err))
	case err != nil:
		s.log.Error("automatic backup failed", zap.Error(err))
	default:
		s.log.Info("automatic backup complete", zap.String("snapshot", snap.ID))
	}
}

// TriggerNow runs a backup cycle on demand, independent of the timer.
func (s *Scheduler) TriggerNow(ctx context.Context) (snapshot.Snapshot, error) {
	return s.RunCycle(ctx, ModeManual)
}

// RunCycle executes one create/prune sequence. At most one cycle runs at a
// time regardless of trigger source: a trigger that arrives while another
// cycle is in flight returns ErrCycleInProgress instead of queueing. The
// busy flag is held across the whole sequence, cleanup included, on every
// exit path.
func (s *Scheduler) RunCycle(ctx context.Context, mode Mode) (snapshot.Snapshot, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return snapshot.Snapshot{}, ErrCycleInProgress
	}
	defer s.busy.Store(false)

	cfg := s.snapshotConfig()
	started := time.Now()

	snap, pruned, err := s.cycle(ctx, cfg)
	s.record(mode, started, snap, pruned, err)
	return snap, err
}

func (s *Scheduler) cycle(ctx context.Context, cfg config.BackupConfig) (snapshot.Snapshot, int, error) {
	if cfg.SourcePath == "" || cfg.DestinationPath == "" {
		return snapshot.Snapshot{}, 0, ErrNotConfigured
	}

	snap, err := s.store.Create(ctx, cfg.SourcePath, cfg.DestinationPath)
	if err != nil {
		return snapshot.Snapshot{}, 0, err
	}

	// Cleanup is best effort: a retention failure never turns the
	// completed backup into a failed cycle.
	pruned := s.cleanup(cfg)

	return snap, pruned, nil
}

// cleanup re-reads the destination (never cached, the directory may have
// been modified externally between cycles) and deletes everything beyond
// the retention bound. Each victim is attempted independently.
func (s *Scheduler) cleanup(cfg config.BackupConfig) int {
	snaps, err := s.store.List(cfg.DestinationPath)
	if err != nil {
		s.log.Error("retention: listing snapshots failed", zap.Error(err))
		return 0
	}

	removed := 0
	for _, victim := range retention.Prune(snaps, cfg.MaxSnapshots) {
		if err := s.store.Delete(victim); err != nil {
			s.log.Error("retention: deleting snapshot failed",
				zap.String("snapshot", victim.ID), zap.Error(err))
			continue
		}
		removed++
		s.log.Info("retention: snapshot removed", zap.String("snapshot", victim.ID))
	}
	return removed
}

func (s *Scheduler) record(mode Mode, started time.Time, snap snapshot.Snapshot, pruned int, err error) {
	if s.hist == nil {
		return
	}

	e := history.Entry{
		StartedAt:  started,
		Duration:   time.Since(started),
		Mode:       string(mode),
		Status:     history.StatusOK,
		SnapshotID: snap.ID,
		Pruned:     pruned,
	}
	if err != nil {
		e.Status = history.StatusFailed
		e.SnapshotID = ""
		e.Error = err.Error()
	}

	if rerr := s.hist.Record(e); rerr != nil {
		s.log.Warn("recording cycle history failed", zap.Error(rerr))
	}
}
