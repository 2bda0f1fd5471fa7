package state

import (
	"sync"
	"time"

	"github.com/five82/deskremote/internal/remote"
	"github.com/five82/deskremote/internal/telemetry"
)

// ConnectionState tracks reachability of the control server.
type ConnectionState int

const (
	Unknown ConnectionState = iota
	Connecting
	Online
	Offline
)

func (s ConnectionState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Online:
		return "online"
	case Offline:
		return "offline"
	default:
		return "unknown"
	}
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Connection ConnectionState
	ServerURL  string

	System    remote.SystemInfo
	HasSystem bool
	Samples   []telemetry.MemorySample

	Volume            int
	HasVolume         bool
	VolumePending     bool
	Brightness        float64
	HasBrightness     bool
	BrightnessPending bool

	LastUpdated         time.Time
	LastError           error // last polling/probe failure
	ControlError        error // last failed control write
	ConsecutiveFailures int   // failed probes/polls since last success
	AvgResponse         time.Duration
	Suspended           bool
}

// IsOnline reports whether telemetry is being polled.
func (s Snapshot) IsOnline() bool {
	return s.Connection == Online
}

// MemoryPercent returns the latest memory usage percentage.
func (s Snapshot) MemoryPercent() float64 {
	return telemetry.MemoryPercent(s.System.Mem.Used, s.System.Mem.Total)
}

// Store coordinates concurrent access to the snapshot. The engine is the
// only writer.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	version  uint64
}

// Publish replaces the stored snapshot with a copy of snap.
func (s *Store) Publish(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = clone(snap)
	s.version++
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clone(s.snapshot)
}

// Version increments on every Publish; readers use it to skip redraws.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.version
}

// clone copies the slice fields. Errors are immutable values and are
// shared as-is.
func clone(src Snapshot) Snapshot {
	dup := src
	dup.Samples = cloneSamples(src.Samples)
	return dup
}

func cloneSamples(items []telemetry.MemorySample) []telemetry.MemorySample {
	if len(items) == 0 {
		return nil
	}
	dup := make([]telemetry.MemorySample, len(items))
	copy(dup, items)
	return dup
}
