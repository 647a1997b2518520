package game

import (
	"fmt"
	"math"
	"time"
)

// tpsFor converts a tick interval into ticks per second, at least one.
func tpsFor(interval time.Duration) int {
	if interval <= 0 {
		return 1
	}
	tps := int(math.Round(float64(time.Second) / float64(interval)))
	return max(tps, 1)
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
