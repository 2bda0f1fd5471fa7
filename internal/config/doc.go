// Package config handles loading and parsing the deskremote client
// configuration file.
//
// # Overview
//
// The client reads an optional TOML file for the control server address,
// engine timings and logging. Every field is optional; a missing file
// yields Default().
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/deskremote/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Command-line flags are applied by the caller after Load returns.
//
// # Default Values
//
//   - Config file: ~/.config/deskremote/config.toml
//   - Poll interval: 2s
//   - Reconnect interval: 10s
//   - Control debounce: 300ms
//   - Request timeout: 5s
//   - Memory history: 60 samples
//   - Log level: info
//   - Log file: ~/.local/state/deskremote/deskremote.log
//
// # TOML Format
//
//	server_url = "192.168.1.20:5001"
//	poll_interval = "2s"
//	reconnect_interval = "10s"
//	debounce = "300ms"
//	request_timeout = "5s"
//	history_size = 60
//	log_level = "info"
//	log_file = "~/.local/state/deskremote/deskremote.log"
//
// Durations use time.ParseDuration syntax. An unparsable duration is an
// error naming the field; zero or negative durations keep the default.
// Setting log_file to "" disables file logging.
//
// # Path Expansion
//
//   - Absolute paths: used as-is
//   - Tilde paths: expanded to the home directory
//   - Relative paths: converted to absolute based on the working directory
//
// # Error Handling
//
// Load returns an error for:
//   - Home directory resolution failure (tilde expansion)
//   - File read errors (permissions, I/O)
//   - TOML parse errors and invalid durations
//
// A missing file is not an error.
package config
