// Package retention decides which snapshots fall outside the configured
// bound. It performs no I/O; deletion stays with the caller, which keeps
// the decision testable in isolation.
package retention

import "github.com/rksv/snapkeeper/internal/snapshot"

// Prune returns the snapshots beyond the newest maxCount, ordered newest
// first like the input. Ordering is by creation time, ties broken by ID,
// so equal-second snapshots still produce a deterministic victim set.
// A maxCount below 1 is treated as 1: retention never removes the latest
// snapshot.
func Prune(snaps []snapshot.Snapshot, maxCount int) []snapshot.Snapshot {
	if maxCount < 1 {
		maxCount = 1
	}
	if len(snaps) <= maxCount {
		return nil
	}

	ordered := make([]snapshot.Snapshot, len(snaps))
	copy(ordered, snaps)
	snapshot.SortNewestFirst(ordered)

	return ordered[maxCount:]
}
