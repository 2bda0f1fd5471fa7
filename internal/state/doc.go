// Package state provides the thread-safe snapshot shared between the
// synchronization engine and the UI.
//
// # Overview
//
// The engine owns every piece of mutable client state (connection state,
// the latest telemetry, the memory history, control values). After each
// transition it publishes a full copy into a Store. The UI reads that copy
// on its own refresh tick and never mutates engine state directly.
//
// # Architecture
//
//	Producer (engine loop):        Consumer (UI):
//	┌──────────────────┐          ┌──────────────────┐
//	│ probe / poll     │          │                  │
//	│ control writes   │          │                  │
//	│       ↓          │          │                  │
//	│ store.Publish()  │─────────→│ store.Snapshot() │
//	│       ↓          │ (mutex)  │       ↓          │
//	│ next task...     │          │ render view      │
//	└──────────────────┘          └──────────────────┘
//
// # Core Types
//
// ConnectionState:
//   - Unknown before the engine starts
//   - Connecting while the first probe is outstanding
//   - Online while /info is polled on a fixed cadence
//   - Offline while reconnect probes run
//
// Snapshot:
//   - Connection state and the server URL
//   - Latest SystemInfo plus the memory sample history
//   - Volume and brightness, with pending flags for unsent intents
//   - LastError (polling/probe) and ControlError (control writes)
//   - LastUpdated and the rolling average response time
//
// Store:
//   - Single writer (engine loop), many readers
//   - sync.RWMutex around a value snapshot
//   - Version counter so readers can skip redundant redraws
//
// # Copy Semantics
//
// Publish and Snapshot both clone the sample slice and wrap error values,
// so neither side can observe mutation by the other.
//
// # Testing Considerations
//
// The zero Store is ready to use and returns a zero Snapshot (Unknown
// connection state, no telemetry) until the first Publish.
package state
