package remote

import (
	"fmt"
	"strings"
)

// StatusResponse mirrors the payload returned by /status.
type StatusResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// SystemInfo mirrors /info. Values are immutable once decoded.
type SystemInfo struct {
	Battery BatteryInfo `json:"battery"`
	CPU     CPUInfo     `json:"cpu"`
	Mem     MemInfo     `json:"mem"`
}

// BatteryInfo reports power source state.
type BatteryInfo struct {
	HasBattery bool    `json:"hasBattery"`
	Percent    float64 `json:"percent"`
	Charging   bool    `json:"charging"`
}

// CPUInfo reports load percentages in the 0-100 range.
type CPUInfo struct {
	AvgLoad     float64 `json:"avgLoad"`
	CurrentLoad float64 `json:"currentLoad"`
}

// MemInfo reports memory in bytes.
type MemInfo struct {
	Total uint64 `json:"total"`
	Free  uint64 `json:"free"`
	Used  uint64 `json:"used"`
}

// VolumeBody is used for both GET and POST /volume.
type VolumeBody struct {
	Volume int `json:"volume"`
}

// BrightnessBody is used for both GET and POST /brightness.
type BrightnessBody struct {
	Brightness float64 `json:"brightness"`
}

// SuccessResponse is returned by control writes.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ActionKind names a power action understood by /action.
type ActionKind string

const (
	ActionSleep    ActionKind = "sleep"
	ActionRestart  ActionKind = "restart"
	ActionShutdown ActionKind = "shutdown"
)

// ActionKinds lists the supported actions in display order.
func ActionKinds() []ActionKind {
	return []ActionKind{ActionSleep, ActionRestart, ActionShutdown}
}

// Valid reports whether the server contract knows the action.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionSleep, ActionRestart, ActionShutdown:
		return true
	default:
		return false
	}
}

// Label returns a human readable name.
func (k ActionKind) Label() string {
	switch k {
	case ActionSleep:
		return "Sleep"
	case ActionRestart:
		return "Restart"
	case ActionShutdown:
		return "Shutdown"
	default:
		return string(k)
	}
}

// ParseActionKind normalizes user input into an ActionKind.
func ParseActionKind(value string) (ActionKind, error) {
	kind := ActionKind(strings.ToLower(strings.TrimSpace(value)))
	if !kind.Valid() {
		return "", fmt.Errorf("unknown action %q", value)
	}
	return kind, nil
}

// ActionRequest is the POST /action body.
type ActionRequest struct {
	Type ActionKind `json:"type"`
}

// ActionResult mirrors the /action response.
type ActionResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
