package snapshot

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDFormat(t *testing.T) {
	at := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "backup-20240131-235959", NewID(at))
}

func TestNewIDUsesUTC(t *testing.T) {
	loc := time.FixedZone("plus2", 2*60*60)
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, loc)
	assert.Equal(t, "backup-20240601-100000", NewID(at))
}

func TestParseIDRoundTrip(t *testing.T) {
	at := time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)
	got, ok := ParseID(NewID(at))
	require.True(t, ok)
	assert.True(t, got.Equal(at))
}

func TestParseIDOrdinal(t *testing.T) {
	at := time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)
	got, ok := ParseID(WithOrdinal(NewID(at), 2))
	require.True(t, ok)
	assert.True(t, got.Equal(at))
}

func TestParseIDRejects(t *testing.T) {
	bad := []string{
		"",
		"backup-",
		"notes.txt",
		"backup-20240101",
		"backup-20240101-1212",
		"backup-20240101-121212x",
		"backup-20240101-121212-",
		"backup-20240101-121212--2",
		"backup-20240101-121212-2a",
		".tmp-backup-20240101-121212",
		"backup-20241301-121212", // month 13
	}
	for _, name := range bad {
		if _, ok := ParseID(name); ok {
			t.Errorf("ParseID(%q) accepted, want rejected", name)
		}
	}
}

func TestIDsSortInTimeOrder(t *testing.T) {
	base := time.Date(2024, 12, 31, 23, 59, 58, 0, time.UTC)
	ids := []string{
		NewID(base),
		NewID(base.Add(time.Second)), // crosses midnight and year
		NewID(base.Add(2 * time.Second)),
		NewID(base.Add(24 * time.Hour)),
	}
	assert.True(t, sort.StringsAreSorted(ids), "ids not in time order: %v", ids)
}

func TestOrdinalSortsAfterBase(t *testing.T) {
	base := NewID(time.Date(2024, 5, 5, 5, 5, 5, 0, time.UTC))
	assert.Less(t, base, WithOrdinal(base, 2))
	assert.Less(t, WithOrdinal(base, 2), WithOrdinal(base, 3))
}

func TestSortNewestFirst(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	snaps := []Snapshot{
		{ID: "backup-20240101-100000", CreatedAt: t1},
		{ID: "backup-20240101-100100-2", CreatedAt: t2},
		{ID: "backup-20240101-100100", CreatedAt: t2},
	}
	SortNewestFirst(snaps)

	assert.Equal(t, "backup-20240101-100100-2", snaps[0].ID)
	assert.Equal(t, "backup-20240101-100100", snaps[1].ID)
	assert.Equal(t, "backup-20240101-100000", snaps[2].ID)
}
