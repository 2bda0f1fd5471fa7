// Package devserver implements the desktop side of the control API so the
// client can be run end to end during development.
//
// Telemetry comes from gopsutil (CPU percent, 1-minute load average,
// virtual memory) and the Linux power_supply class for the battery.
// Volume and brightness are kept in memory and are not applied to the
// host. Power actions are dry runs unless the server is started with
// power actions allowed.
//
//	GET  /status      {ok, message}
//	GET  /info        {battery, cpu, mem}
//	GET  /volume      {volume}
//	POST /volume      {volume} -> {success}
//	GET  /brightness  {brightness}
//	POST /brightness  {brightness} -> {success}
//	POST /action      {type} -> {success, error?}; 400 {error} if unknown
package devserver
