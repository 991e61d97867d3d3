package mcp

// ListBindingsInput is the input for the list_bindings tool.
type ListBindingsInput struct{}

// BindingSummary describes one configured binding and its action cycle.
type BindingSummary struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Hotkey      string   `json:"hotkey"`
	ActionCount int      `json:"action_count"`
	Actions     []string `json:"actions"`
}

// ListBindingsOutput is the output for the list_bindings tool.
type ListBindingsOutput struct {
	Bindings []BindingSummary `json:"bindings"`
}

// TriggerBindingInput is the input for the trigger_binding tool.
type TriggerBindingInput struct {
	Binding string `json:"binding" jsonschema:"required,Name of the binding to trigger (e.g. snap_left, throw_east)"`
}

// TriggerBindingOutput is the output for the trigger_binding tool.
type TriggerBindingOutput struct {
	Triggered bool   `json:"triggered"`
	Binding   string `json:"binding"`
}

// GetMonitorsInput is the input for the get_monitors tool.
type GetMonitorsInput struct{}

// MonitorSummary describes one connected monitor.
type MonitorSummary struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// GetMonitorsOutput is the output for the get_monitors tool.
type GetMonitorsOutput struct {
	Monitors []MonitorSummary `json:"monitors"`
}

// DaemonStatusInput is the input for the daemon_status tool.
type DaemonStatusInput struct{}

// DaemonStatusOutput is the output for the daemon_status tool.
type DaemonStatusOutput struct {
	Running        bool  `json:"running"`
	BindingCount   int   `json:"binding_count"`
	ExceptionCount int   `json:"exception_count"`
	UptimeSeconds  int64 `json:"uptime_seconds"`
}
