package telemetry

import (
	"time"

	"github.com/five82/deskremote/internal/remote"
)

// DefaultCapacity is the number of memory samples kept for charting.
const DefaultCapacity = 60

// MemorySample is one point of the memory usage chart.
type MemorySample struct {
	Timestamp time.Time
	UsedBytes uint64
	Percent   float64
}

// TimestampMs returns the sample time in Unix milliseconds.
func (s MemorySample) TimestampMs() int64 {
	return s.Timestamp.UnixMilli()
}

// Buffer keeps the rolling window of memory samples derived from telemetry
// snapshots. Timestamps never go backwards. Not safe for concurrent use.
type Buffer struct {
	ring *Ring[MemorySample]
	now  func() time.Time
}

// NewBuffer returns a buffer of the given capacity. A nil now uses time.Now.
func NewBuffer(capacity int, now func() time.Time) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if now == nil {
		now = time.Now
	}
	return &Buffer{ring: NewRing[MemorySample](capacity), now: now}
}

// Append records a sample for info and returns it.
func (b *Buffer) Append(info remote.SystemInfo) MemorySample {
	ts := b.now()
	if last, ok := b.ring.Last(); ok && ts.Before(last.Timestamp) {
		ts = last.Timestamp
	}
	sample := MemorySample{
		Timestamp: ts,
		UsedBytes: info.Mem.Used,
		Percent:   MemoryPercent(info.Mem.Used, info.Mem.Total),
	}
	b.ring.Push(sample)
	return sample
}

// Snapshot returns the samples oldest first. The slice is a copy.
func (b *Buffer) Snapshot() []MemorySample {
	return b.ring.Items()
}

// Len returns the number of samples held.
func (b *Buffer) Len() int { return b.ring.Len() }

// Cap returns the configured capacity.
func (b *Buffer) Cap() int { return b.ring.Cap() }

// MemoryPercent returns used/total as a percentage, or 0 when total is 0.
func MemoryPercent(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100
}
