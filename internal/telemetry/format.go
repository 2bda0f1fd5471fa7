package telemetry

import (
	"math"
	"strconv"
	"time"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count with binary units and at most two
// decimals, e.g. 1536 -> "1.5 KB".
func FormatBytes(bytes uint64) string {
	if bytes == 0 {
		return "0 B"
	}
	const unit = 1024
	value := float64(bytes)
	exp := 0
	for value >= unit && exp < len(byteUnits)-1 {
		value /= unit
		exp++
	}
	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + byteUnits[exp]
}

// Average returns the mean of durations, rounded to the millisecond.
func Average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range durations {
		total += d
	}
	return (total / time.Duration(len(durations))).Round(time.Millisecond)
}
