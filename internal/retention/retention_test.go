package retention

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rksv/snapkeeper/internal/snapshot"
)

func snaps(n int) []snapshot.Snapshot {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]snapshot.Snapshot, n)
	for i := range out {
		// newest first, like store.List returns them
		at := base.Add(time.Duration(n-i) * time.Minute)
		out[i] = snapshot.Snapshot{ID: snapshot.NewID(at), CreatedAt: at}
	}
	return out
}

func TestPruneVictimCount(t *testing.T) {
	cases := []struct {
		total, max, victims int
	}{
		{0, 5, 0},
		{3, 5, 0},
		{5, 5, 0},
		{6, 5, 1},
		{10, 2, 8},
		{10, 1, 9},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%d_keep_%d", c.total, c.max), func(t *testing.T) {
			got := Prune(snaps(c.total), c.max)
			assert.Len(t, got, c.victims)
		})
	}
}

func TestPruneKeepsNewest(t *testing.T) {
	all := snaps(5)
	victims := Prune(all, 2)

	// the three oldest are victims, oldest last
	assert.Equal(t, []snapshot.Snapshot{all[2], all[3], all[4]}, victims)
}

func TestPruneUnsortedInput(t *testing.T) {
	all := snaps(4)
	shuffled := []snapshot.Snapshot{all[2], all[0], all[3], all[1]}

	victims := Prune(shuffled, 2)
	assert.Equal(t, []snapshot.Snapshot{all[2], all[3]}, victims)
}

func TestPruneTieBreakByID(t *testing.T) {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	base := snapshot.NewID(at)
	a := snapshot.Snapshot{ID: base, CreatedAt: at}
	b := snapshot.Snapshot{ID: snapshot.WithOrdinal(base, 2), CreatedAt: at}
	c := snapshot.Snapshot{ID: snapshot.WithOrdinal(base, 3), CreatedAt: at}

	victims := Prune([]snapshot.Snapshot{a, b, c}, 1)

	// newest ID kept, the rest are victims in descending order
	assert.Equal(t, []snapshot.Snapshot{b, a}, victims)
}

func TestPruneNeverRemovesLatest(t *testing.T) {
	all := snaps(3)
	// a maxCount below 1 is clamped rather than wiping the destination
	victims := Prune(all, 0)
	assert.Len(t, victims, 2)
	assert.NotContains(t, victims, all[0])
}

func TestPruneDoesNotMutateInput(t *testing.T) {
	all := snaps(4)
	in := []snapshot.Snapshot{all[2], all[0], all[3], all[1]}
	want := append([]snapshot.Snapshot(nil), in...)

	Prune(in, 1)
	assert.Equal(t, want, in)
}
