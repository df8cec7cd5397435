package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rksv/snapkeeper/internal/config"
	"github.com/rksv/snapkeeper/internal/store"
)

// steppingClock advances one minute per reading so every cycle gets a
// distinct snapshot name.
func steppingClock(start time.Time) func() time.Time {
	at := start
	return func() time.Time {
		at = at.Add(time.Minute)
		return at
	}
}

func TestRetentionAcrossCycles(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "data.txt"), []byte("payload"), 0o644))
	dst := filepath.Join(t.TempDir(), "dst")

	st := store.New(nil, nil, store.WithClock(steppingClock(time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC))))
	s := New(st, nil, nil)
	require.NoError(t, s.Apply(config.BackupConfig{
		SourcePath:      src,
		DestinationPath: dst,
		IntervalMinutes: 60,
		MaxSnapshots:    2,
		Enabled:         true,
	}))

	first, err := s.TriggerNow(context.Background())
	require.NoError(t, err)
	second, err := s.TriggerNow(context.Background())
	require.NoError(t, err)
	third, err := s.TriggerNow(context.Background())
	require.NoError(t, err)

	assert.Less(t, first.ID, second.ID)
	assert.Less(t, second.ID, third.ID)

	// after the third trigger only the two newest remain
	snaps, err := st.List(dst)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, third.ID, snaps[0].ID)
	assert.Equal(t, second.ID, snaps[1].ID)

	_, statErr := os.Stat(filepath.Join(dst, first.ID))
	assert.True(t, os.IsNotExist(statErr), "oldest snapshot must be gone")
}

func TestSourceMissingLeavesDestinationEmpty(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "dst")
	st := store.New(nil, nil)
	s := New(st, nil, nil)
	require.NoError(t, s.Apply(config.BackupConfig{
		SourcePath:      filepath.Join(t.TempDir(), "missing"),
		DestinationPath: dst,
		MaxSnapshots:    2,
	}))

	_, err := s.TriggerNow(context.Background())
	assert.True(t, errors.Is(err, store.ErrSourceMissing))

	snaps, err := st.List(dst)
	require.NoError(t, err)
	assert.Empty(t, snaps)
}
