package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleListBindings(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListBindingsInput) (*mcpsdk.CallToolResult, ListBindingsOutput, error) {
	data, err := s.client.ListBindings()
	if err != nil {
		return nil, ListBindingsOutput{}, fmt.Errorf("failed to list bindings: %w", err)
	}

	out := ListBindingsOutput{Bindings: make([]BindingSummary, 0, len(data.Bindings))}
	for _, b := range data.Bindings {
		out.Bindings = append(out.Bindings, BindingSummary{
			Name:        b.Name,
			Category:    b.Category,
			Hotkey:      b.Hotkey,
			ActionCount: b.ActionCount,
			Actions:     b.Actions,
		})
	}
	return nil, out, nil
}

func (s *Server) handleTriggerBinding(_ context.Context, _ *mcpsdk.CallToolRequest, args TriggerBindingInput) (*mcpsdk.CallToolResult, TriggerBindingOutput, error) {
	if args.Binding == "" {
		return nil, TriggerBindingOutput{}, fmt.Errorf("binding name is required")
	}

	if err := s.client.Trigger(args.Binding); err != nil {
		return nil, TriggerBindingOutput{}, fmt.Errorf("failed to trigger binding %q: %w", args.Binding, err)
	}
	return nil, TriggerBindingOutput{Triggered: true, Binding: args.Binding}, nil
}

func (s *Server) handleGetMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetMonitorsInput) (*mcpsdk.CallToolResult, GetMonitorsOutput, error) {
	data, err := s.client.GetMonitors()
	if err != nil {
		return nil, GetMonitorsOutput{}, fmt.Errorf("failed to get monitors: %w", err)
	}

	out := GetMonitorsOutput{Monitors: make([]MonitorSummary, 0, len(data.Monitors))}
	for _, m := range data.Monitors {
		out.Monitors = append(out.Monitors, MonitorSummary{
			ID:     m.ID,
			Name:   m.Name,
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		})
	}
	return nil, out, nil
}

func (s *Server) handleDaemonStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ DaemonStatusInput) (*mcpsdk.CallToolResult, DaemonStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, DaemonStatusOutput{}, fmt.Errorf("failed to get daemon status: %w", err)
	}

	return nil, DaemonStatusOutput{
		Running:        status.DaemonRunning,
		BindingCount:   status.BindingCount,
		ExceptionCount: status.ExceptionCount,
		UptimeSeconds:  status.UptimeSeconds,
	}, nil
}
