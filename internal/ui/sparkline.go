package ui

import (
	"math"
	"strings"

	"github.com/five82/deskremote/internal/telemetry"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// sparkline renders percentages (0-100) as one row of block characters.
// Only the newest width values are drawn; shorter series are left-padded
// with blanks so the chart grows from the right.
func sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width-len(values)))
	top := len(sparkBlocks) - 1
	for _, v := range values {
		v = math.Max(0, math.Min(100, v))
		idx := int(math.Round(v / 100 * float64(top)))
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}

func samplePercents(samples []telemetry.MemorySample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Percent
	}
	return out
}
