package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/1broseidon/gridsnap/internal/platform"
)

// Hotkey describes the key combination that fires a binding.
type Hotkey struct {
	Modifiers []string `yaml:"modifiers"`
	Key       string   `yaml:"key"`
}

// Sequence renders the hotkey in xgbutil keybind syntax, e.g. "Mod4-Shift-Right".
func (h Hotkey) Sequence() string {
	parts := make([]string, 0, len(h.Modifiers)+1)
	parts = append(parts, h.Modifiers...)
	parts = append(parts, h.Key)
	return strings.Join(parts, "-")
}

// SnapSpec is a screen-relative snap target. Unset components are derived
// from the window's current geometry when the snap runs, so a target can
// constrain only the dimensions it cares about.
type SnapSpec struct {
	X *float64 `yaml:"x,omitempty"`
	Y *float64 `yaml:"y,omitempty"`
	W *float64 `yaml:"w,omitempty"`
	H *float64 `yaml:"h,omitempty"`
}

// ActionSpec is one step of a binding's action cycle: exactly one of a snap
// target or a directional screen move.
type ActionSpec struct {
	Snap *SnapSpec `yaml:"snap,omitempty"`
	Move string    `yaml:"move,omitempty"`
}

// Config holds the application configuration.
type Config struct {
	Hotkeys  map[string]Hotkey       `yaml:"hotkeys"`
	Actions  map[string][]ActionSpec `yaml:"actions"`
	LogLevel string                  `yaml:"log_level"`
}

func fp(v float64) *float64 { return &v }

// DefaultConfig returns the built-in bindings used when no config file
// exists: half/third snap cycles on each screen edge, maximize, and
// adjacent-screen throws.
func DefaultConfig() *Config {
	return &Config{
		Hotkeys: map[string]Hotkey{
			"snap_left":   {Modifiers: []string{"Mod4"}, Key: "Left"},
			"snap_right":  {Modifiers: []string{"Mod4"}, Key: "Right"},
			"snap_top":    {Modifiers: []string{"Mod4"}, Key: "Up"},
			"snap_bottom": {Modifiers: []string{"Mod4"}, Key: "Down"},
			"maximize":    {Modifiers: []string{"Mod4"}, Key: "m"},
			"throw_east":  {Modifiers: []string{"Mod4", "Shift"}, Key: "Right"},
			"throw_west":  {Modifiers: []string{"Mod4", "Shift"}, Key: "Left"},
		},
		Actions: map[string][]ActionSpec{
			"snap_left": {
				{Snap: &SnapSpec{X: fp(0), Y: fp(0), W: fp(0.5), H: fp(1)}},
				{Snap: &SnapSpec{X: fp(0), Y: fp(0), W: fp(0.35), H: fp(1)}},
				{Snap: &SnapSpec{X: fp(0), Y: fp(0), W: fp(0.65), H: fp(1)}},
			},
			"snap_right": {
				{Snap: &SnapSpec{X: fp(0.5), Y: fp(0), W: fp(0.5), H: fp(1)}},
				{Snap: &SnapSpec{X: fp(0.65), Y: fp(0), W: fp(0.35), H: fp(1)}},
				{Snap: &SnapSpec{X: fp(0.35), Y: fp(0), W: fp(0.65), H: fp(1)}},
			},
			// Vertical snaps constrain only y/h; x and width stay as they are.
			"snap_top": {
				{Snap: &SnapSpec{Y: fp(0), H: fp(0.5)}},
				{Snap: &SnapSpec{Y: fp(0), H: fp(0.35)}},
				{Snap: &SnapSpec{Y: fp(0), H: fp(0.65)}},
			},
			"snap_bottom": {
				{Snap: &SnapSpec{Y: fp(0.5), H: fp(0.5)}},
				{Snap: &SnapSpec{Y: fp(0.65), H: fp(0.35)}},
				{Snap: &SnapSpec{Y: fp(0.35), H: fp(0.65)}},
			},
			"maximize": {
				{Snap: &SnapSpec{X: fp(0), Y: fp(0), W: fp(1), H: fp(1)}},
			},
			"throw_east": {{Move: "east"}},
			"throw_west": {{Move: "west"}},
		},
		LogLevel: "info",
	}
}

// BindingNames returns the configured binding names in sorted order so that
// registration and listings are deterministic.
func (c *Config) BindingNames() []string {
	names := make([]string, 0, len(c.Actions))
	for name := range c.Actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the configuration for setup-time errors: binding/action
// name mismatches, empty cycles, malformed action specs, unknown directions
// and out-of-range snap units. Trigger handlers assume all of these hold.
func (c *Config) Validate() error {
	for name := range c.Hotkeys {
		if _, ok := c.Actions[name]; !ok {
			return fmt.Errorf("hotkey %q has no matching actions entry", name)
		}
	}
	for name := range c.Actions {
		if _, ok := c.Hotkeys[name]; !ok {
			return fmt.Errorf("actions entry %q has no matching hotkey", name)
		}
	}

	for name, hotkey := range c.Hotkeys {
		if strings.TrimSpace(hotkey.Key) == "" {
			return fmt.Errorf("hotkey %q: key must not be empty", name)
		}
		for _, mod := range hotkey.Modifiers {
			if strings.TrimSpace(mod) == "" {
				return fmt.Errorf("hotkey %q: empty modifier", name)
			}
		}
	}

	for _, name := range c.BindingNames() {
		specs := c.Actions[name]
		if len(specs) == 0 {
			return fmt.Errorf("binding %q: action cycle is empty", name)
		}

		sawSnap, sawMove := false, false
		for i, spec := range specs {
			switch {
			case spec.Snap != nil && spec.Move != "":
				return fmt.Errorf("binding %q action %d: snap and move are mutually exclusive", name, i)
			case spec.Snap == nil && spec.Move == "":
				return fmt.Errorf("binding %q action %d: one of snap or move is required", name, i)
			case spec.Snap != nil:
				sawSnap = true
				if err := validateSnapSpec(spec.Snap); err != nil {
					return fmt.Errorf("binding %q action %d: %w", name, i, err)
				}
			default:
				sawMove = true
				if _, err := platform.ParseDirection(spec.Move); err != nil {
					return fmt.Errorf("binding %q action %d: %w", name, i, err)
				}
			}
		}
		if sawSnap && sawMove {
			return fmt.Errorf("binding %q mixes snap and move actions in one cycle", name)
		}
	}
	return nil
}

func validateSnapSpec(spec *SnapSpec) error {
	check := func(label string, v *float64) error {
		if v != nil && (*v < 0 || *v > 1) {
			return fmt.Errorf("snap %s=%v outside [0,1]", label, *v)
		}
		return nil
	}
	for _, c := range []struct {
		label string
		v     *float64
	}{{"x", spec.X}, {"y", spec.Y}, {"w", spec.W}, {"h", spec.H}} {
		if err := check(c.label, c.v); err != nil {
			return err
		}
	}
	return nil
}
