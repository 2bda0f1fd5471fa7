// Package ui provides the terminal dashboard for deskremote.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model never talks to the network: it
// reads state.Snapshot values from a Controller (the engine) on a short
// tick and forwards user intents back to it. Volume and brightness keys
// update the shown value immediately and leave debouncing and retries to
// the engine.
//
// # Package Structure
//
//   - app.go: Model, Controller, message types, commands and Run
//   - keys.go: key bindings built with bubbles/key
//   - header.go: status bar (state badge, server, last update, latency) and command bar
//   - dashboard.go: online, connecting and offline bodies; gauges via bubbles/progress
//   - sparkline.go: memory history chart
//   - help.go: help overlay
//   - theme.go, style_helpers.go: palettes and background-safe rendering
//
// # Key Bindings
//
//   - -/+: Volume down/up by 5
//   - [/]: Brightness down/up by 0.1
//   - s, R, S: Sleep, restart, shut down (each asks y/n)
//   - r: Retry connection now (offline only)
//   - T: Cycle theme (saved to prefs)
//   - ctrl+z: Suspend; polling pauses until the terminal resumes
//   - h or ?: Help
//   - q or Ctrl+C: Quit
package ui
