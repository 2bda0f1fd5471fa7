// Package app is the composition root for the deskremote client.
//
// Run loads config.toml and prefs.toml, resolves the server address
// (-url flag, then server_url in config, then the last server saved in
// prefs), builds the remote client and the sync engine, and hands the
// engine to the UI as its Controller. The engine owns all network traffic;
// the UI only reads snapshots.
//
// RememberServer runs alongside the UI and writes the server address to
// prefs the first time the engine reports the connection online, so the
// next launch needs no flag. Options.Forget clears the saved address first.
//
// Fatal errors (returned from Run):
//   - invalid config file
//   - no server address, or one that does not parse
//   - log file cannot be opened
//
// Everything after startup is recoverable: connection loss is shown in the
// UI and retried by the engine.
package app
