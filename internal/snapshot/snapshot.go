// Package snapshot defines the snapshot entry type and its naming scheme.
package snapshot

import (
	"sort"
	"time"
)

// SizeUnknown marks a snapshot whose on-disk size could not be determined.
const SizeUnknown int64 = -1

// Snapshot represents a single backup entry under the destination directory.
type Snapshot struct {
	ID        string
	Path      string
	CreatedAt time.Time
	SizeBytes int64
}

// SortNewestFirst orders snapshots by creation time descending, breaking
// ties by ID descending. Listing, retention and pruning all rely on this
// order being the same.
func SortNewestFirst(snaps []Snapshot) {
	sort.Slice(snaps, func(i, j int) bool {
		if !snaps[i].CreatedAt.Equal(snaps[j].CreatedAt) {
			return snaps[i].CreatedAt.After(snaps[j].CreatedAt)
		}
		return snaps[i].ID > snaps[j].ID
	})
}
