// Package telemetry holds the rolling memory-usage window shown by the
// client, plus the small numeric helpers used to present telemetry.
package telemetry
