// Package engine keeps a local view of a remote desktop in sync with its
// control server.
//
// # Overview
//
// An Engine owns three concerns:
//
//   - Connection tracking: probe /status, poll /info while online, retry
//     /status on a reconnect timer while offline.
//   - Control dispatch: volume and brightness intents update the local
//     value at once and are written to the server after a quiet period.
//   - Action dispatch: power actions are sent once, synchronously, and
//     never retried.
//
// Results are published into a state.Store after every transition. The UI
// reads snapshots from there and calls the Engine's methods to express
// intent.
//
// # Event Loop
//
// All mutable state is owned by a single loop goroutine that runs tasks
// from a channel. Public methods post tasks; network calls run in short
// goroutines and post their result back as another task. Nothing outside
// the loop touches engine state, so no field below the loop marker is
// locked.
//
//	UI ──SetVolume──▶ tasks ──▶ loop ──spawn──▶ client.SetVolume
//	                    ▲                            │
//	                    └────── writeDone ◀──────────┘
//
// # Timers
//
// Poll, reconnect and the two debounce timers are timerSlots. Arming or
// cancelling a slot bumps its token; an expiry carries the token it was
// armed with and is dropped on mismatch. Stop closes the quit channel,
// after which queued tasks are discarded and the loop cancels every slot
// and the request context before exiting.
//
// # Connection States
//
//	Unknown ──Start──▶ Connecting ──ok──▶ Online ◀──ok── Offline
//	                        │               │              ▲  │
//	                        └────fail───────┴───fail───────┘  │
//	                                                 reconnect┘
//
// Only one /info request is in flight at a time. A poll tick that finds one
// outstanding is skipped, and a response that arrives after the engine has
// left Online is dropped.
//
// # Controls
//
// Each control kind debounces independently. When the debounce expires the
// latest value is sent; if a write for that kind is still running the send
// waits for it. A failed write is recorded in Snapshot.ControlError and the
// authoritative value is fetched again, unless the user has moved the
// control since.
//
// # Suspension
//
// Suspend cancels every timer and leaves state untouched. Resume restarts
// polling, reconnection or the initial probe as the current state requires,
// and re-arms debounce timers for intents that were never sent.
package engine
