package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
	if len(cfg.BindingNames()) != 7 {
		t.Errorf("expected 7 default bindings, got %d", len(cfg.BindingNames()))
	}
}

func TestBindingNamesSorted(t *testing.T) {
	cfg := DefaultConfig()
	names := cfg.BindingNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("binding names not sorted: %v", names)
		}
	}
}

func TestHotkeySequence(t *testing.T) {
	tests := []struct {
		hotkey Hotkey
		want   string
	}{
		{Hotkey{Modifiers: []string{"Mod4"}, Key: "Left"}, "Mod4-Left"},
		{Hotkey{Modifiers: []string{"Mod4", "Shift"}, Key: "Right"}, "Mod4-Shift-Right"},
		{Hotkey{Key: "F5"}, "F5"},
	}
	for _, tt := range tests {
		if got := tt.hotkey.Sequence(); got != tt.want {
			t.Errorf("Sequence() = %q, want %q", got, tt.want)
		}
	}
}

func validTestConfig() *Config {
	return &Config{
		Hotkeys: map[string]Hotkey{
			"snap_left":  {Modifiers: []string{"Mod4"}, Key: "Left"},
			"throw_east": {Modifiers: []string{"Mod4", "Shift"}, Key: "Right"},
		},
		Actions: map[string][]ActionSpec{
			"snap_left": {
				{Snap: &SnapSpec{X: fp(0), Y: fp(0), W: fp(0.5), H: fp(1)}},
			},
			"throw_east": {{Move: "east"}},
		},
		LogLevel: "info",
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "hotkey without actions",
			mutate: func(c *Config) {
				c.Hotkeys["orphan"] = Hotkey{Modifiers: []string{"Mod4"}, Key: "o"}
			},
			wantErr: "no matching actions",
		},
		{
			name: "actions without hotkey",
			mutate: func(c *Config) {
				c.Actions["orphan"] = []ActionSpec{{Move: "east"}}
			},
			wantErr: "no matching hotkey",
		},
		{
			name: "empty key",
			mutate: func(c *Config) {
				c.Hotkeys["snap_left"] = Hotkey{Modifiers: []string{"Mod4"}}
			},
			wantErr: "key must not be empty",
		},
		{
			name: "empty cycle",
			mutate: func(c *Config) {
				c.Actions["snap_left"] = nil
			},
			wantErr: "action cycle is empty",
		},
		{
			name: "snap and move together",
			mutate: func(c *Config) {
				c.Actions["snap_left"] = []ActionSpec{
					{Snap: &SnapSpec{X: fp(0)}, Move: "east"},
				}
			},
			wantErr: "mutually exclusive",
		},
		{
			name: "neither snap nor move",
			mutate: func(c *Config) {
				c.Actions["snap_left"] = []ActionSpec{{}}
			},
			wantErr: "one of snap or move is required",
		},
		{
			name: "unknown direction",
			mutate: func(c *Config) {
				c.Actions["throw_east"] = []ActionSpec{{Move: "sideways"}}
			},
			wantErr: "direction",
		},
		{
			name: "snap unit out of range",
			mutate: func(c *Config) {
				c.Actions["snap_left"] = []ActionSpec{
					{Snap: &SnapSpec{X: fp(1.5)}},
				}
			},
			wantErr: "outside [0,1]",
		},
		{
			name: "mixed snap and move cycle",
			mutate: func(c *Config) {
				c.Actions["snap_left"] = []ActionSpec{
					{Snap: &SnapSpec{X: fp(0)}},
					{Move: "east"},
				}
			},
			wantErr: "mixes snap and move",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromPathMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if len(cfg.BindingNames()) != len(DefaultConfig().BindingNames()) {
		t.Errorf("expected default bindings, got %v", cfg.BindingNames())
	}
}

func TestLoadFromPathParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
hotkeys:
  halves:
    modifiers: [Mod4]
    key: h
actions:
  halves:
    - snap: {x: 0, y: 0, w: 0.5, h: 1}
    - snap: {x: 0.5, y: 0, w: 0.5, h: 1}
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	specs, ok := cfg.Actions["halves"]
	if !ok || len(specs) != 2 {
		t.Fatalf("expected 2 actions for halves, got %v", specs)
	}
	if specs[1].Snap == nil || *specs[1].Snap.X != 0.5 {
		t.Errorf("unexpected second snap spec: %+v", specs[1].Snap)
	}
	// Declaring any bindings replaces the built-in set.
	if _, ok := cfg.Actions["snap_left"]; ok {
		t.Error("built-in bindings should not merge with user bindings")
	}
}

func TestLoadFromPathRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
hotkeys:
  halves:
    modifiers: [Mod4]
    key: h
    keysym: 0xff51
actions:
  halves:
    - snap: {x: 0}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestLoadFromPathPartialSnapUnits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
hotkeys:
  top:
    modifiers: [Mod4]
    key: Up
actions:
  top:
    - snap: {y: 0, h: 0.5}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	spec := cfg.Actions["top"][0].Snap
	if spec.X != nil || spec.W != nil {
		t.Errorf("x/w should stay unset, got %+v", spec)
	}
	if spec.Y == nil || *spec.Y != 0 || spec.H == nil || *spec.H != 0.5 {
		t.Errorf("unexpected y/h: %+v", spec)
	}
}

func TestLoadFromPathEmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if len(cfg.BindingNames()) == 0 {
		t.Error("expected default bindings for empty file")
	}
}
