package ipc

import "encoding/json"

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload       CommandType = "RELOAD"
	CommandGetStatus    CommandType = "GET_STATUS"
	CommandListBindings CommandType = "LIST_BINDINGS"
	CommandTrigger      CommandType = "TRIGGER"
	CommandGetMonitors  CommandType = "GET_MONITORS"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	BindingCount   int   `json:"binding_count"`
	ExceptionCount int   `json:"exception_count"`
	UptimeSeconds  int64 `json:"uptime_seconds"`
	DaemonRunning  bool  `json:"daemon_running"`
}

// BindingInfo describes one configured binding and its action cycle.
type BindingInfo struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Hotkey      string   `json:"hotkey"`
	ActionCount int      `json:"action_count"`
	Actions     []string `json:"actions"`
}

// BindingsData represents the data returned by LIST_BINDINGS
type BindingsData struct {
	Bindings []BindingInfo `json:"bindings"`
}

// TriggerPayload represents the payload for the TRIGGER command
type TriggerPayload struct {
	Binding string `json:"binding"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}
