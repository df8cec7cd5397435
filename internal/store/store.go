// Package store creates, enumerates and deletes snapshot entries on disk.
// It has no scheduling knowledge; the scheduler decides when to call it.
package store

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/rksv/snapkeeper/internal/fs"
	"github.com/rksv/snapkeeper/internal/snapshot"
)

const tmpPrefix = ".tmp-"

// Store performs the durable snapshot operations under a destination
// directory.
type Store struct {
	fs  fs.FS
	log *zap.Logger
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for snapshot naming.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a store. A nil filesystem means the local OS filesystem.
func New(filesystem fs.FS, log *zap.Logger, opts ...Option) *Store {
	if filesystem == nil {
		filesystem = fs.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		fs:  filesystem,
		log: log,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create copies source into a freshly named entry under destRoot. The tree
// is written to a hidden temp directory and renamed into place, so List
// never observes a partially written snapshot.
func (s *Store) Create(ctx context.Context, source, destRoot string) (snapshot.Snapshot, error) {
	if _, err := s.fs.Stat(source); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("%w: %s: %v", ErrSourceMissing, source, err)
	}
	if err := s.fs.MkdirAll(destRoot); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("%w: %s: %v", ErrDestinationUnwritable, destRoot, err)
	}

	id, createdAt := s.reserveID(destRoot)
	tmpDir := filepath.Join(destRoot, tmpPrefix+id)
	finalDir := filepath.Join(destRoot, id)

	if err := s.fs.MkdirAll(tmpDir); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("%w: %s: %v", ErrDestinationUnwritable, tmpDir, err)
	}

	if err := s.fs.CopyTree(ctx, source, tmpDir); err != nil {
		_ = s.fs.RemoveAll(tmpDir)
		return snapshot.Snapshot{}, fmt.Errorf("copying %s: %w", source, err)
	}

	if err := s.fs.Rename(ctx, tmpDir, finalDir); err != nil {
		_ = s.fs.RemoveAll(tmpDir)
		return snapshot.Snapshot{}, fmt.Errorf("finalizing %s: %w", id, err)
	}

	size, err := s.fs.TreeSize(finalDir)
	if err != nil {
		size = snapshot.SizeUnknown
	}

	s.log.Debug("snapshot written", zap.String("snapshot", id), zap.Int64("sizeBytes", size))

	return snapshot.Snapshot{
		ID:        id,
		Path:      finalDir,
		CreatedAt: createdAt,
		SizeBytes: size,
	}, nil
}

// List enumerates the snapshot entries under destRoot, newest first.
// A destination that does not exist yet yields an empty result: before the
// first backup there is simply nothing to list.
func (s *Store) List(destRoot string) ([]snapshot.Snapshot, error) {
	entries, err := s.fs.ReadDir(destRoot)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrEnumerationFailed, destRoot, err)
	}

	var snaps []snapshot.Snapshot
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		createdAt, ok := snapshot.ParseID(e.Name())
		if !ok {
			continue
		}

		path := filepath.Join(destRoot, e.Name())
		size, err := s.fs.TreeSize(path)
		if err != nil {
			size = snapshot.SizeUnknown
		}

		snaps = append(snaps, snapshot.Snapshot{
			ID:        e.Name(),
			Path:      path,
			CreatedAt: createdAt,
			SizeBytes: size,
		})
	}

	snapshot.SortNewestFirst(snaps)
	return snaps, nil
}

// Delete removes a snapshot entry recursively. Deleting an entry that is
// already gone is a no-op.
func (s *Store) Delete(snap snapshot.Snapshot) error {
	if err := s.fs.RemoveAll(snap.Path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDeleteFailed, snap.ID, err)
	}
	return nil
}

// reserveID picks a snapshot name that is free under destRoot. Two
// creations within the same second get distinct names via an ordinal
// suffix; the earlier entry is never overwritten.
func (s *Store) reserveID(destRoot string) (string, time.Time) {
	createdAt := s.now().UTC().Truncate(time.Second)
	base := snapshot.NewID(createdAt)

	id := base
	for n := 2; s.exists(destRoot, id); n++ {
		id = snapshot.WithOrdinal(base, n)
	}
	return id, createdAt
}

func (s *Store) exists(destRoot, id string) bool {
	if _, err := s.fs.Stat(filepath.Join(destRoot, id)); err == nil {
		return true
	}
	_, err := s.fs.Stat(filepath.Join(destRoot, tmpPrefix+id))
	return err == nil
}
