package snapshot

import (
	"fmt"
	"strings"
	"time"
)

const (
	prefix     = "backup-"
	timeLayout = "20060102-150405"
)

// NewID formats now (in UTC) as a snapshot name, e.g. backup-20240131-235959.
// The name contains no path separators and sorts lexicographically in time
// order for monotonically increasing inputs.
func NewID(now time.Time) string {
	return prefix + now.UTC().Format(timeLayout)
}

// WithOrdinal disambiguates an ID that collided within the same second.
// The suffix keeps colliding entries lexicographically after the base name,
// so ID order stays creation order.
func WithOrdinal(id string, n int) string {
	return fmt.Sprintf("%s-%d", id, n)
}

// ParseID recovers the creation time from a snapshot name. Names not
// produced by NewID or WithOrdinal are rejected, which is how unrelated
// directory entries get filtered out during enumeration.
func ParseID(name string) (time.Time, bool) {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return time.Time{}, false
	}
	if len(rest) > len(timeLayout) {
		ord := rest[len(timeLayout):]
		if len(ord) < 2 || ord[0] != '-' || !isDigits(ord[1:]) {
			return time.Time{}, false
		}
		rest = rest[:len(timeLayout)]
	}
	t, err := time.Parse(timeLayout, rest)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
