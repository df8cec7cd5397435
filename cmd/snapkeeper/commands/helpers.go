package commands

import (
	"fmt"

	"github.com/rksv/snapkeeper/internal/snapshot"
)

// formatSize renders a byte count for terminal output.
func formatSize(n int64) string {
	if n == snapshot.SizeUnknown {
		return "unknown"
	}
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for q := n / unit; q >= unit; q /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
