package snap

import (
	"fmt"
	"sync"

	"github.com/1broseidon/gridsnap/internal/config"
	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/1broseidon/gridsnap/internal/platform"
)

// Engine owns the binding→cycle table and the shared exception store. It is
// constructed from an already-validated configuration; configuration errors
// surface here at setup time, never inside a trigger handler.
//
// Triggers arrive from the X event loop and from IPC connections, so Trigger
// serializes under a mutex.
type Engine struct {
	mu      sync.Mutex
	backend platform.Backend
	store   *Store
	matcher *Matcher
	cycles  map[string]*Cycle
	order   []string
}

// NewEngine builds the action cycles for every configured binding.
func NewEngine(backend platform.Backend, cfg *config.Config) (*Engine, error) {
	store := NewStore()
	e := &Engine{
		backend: backend,
		store:   store,
		matcher: NewMatcher(store),
	}
	if err := e.rebuild(cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// Trigger fires the action cycle bound to name.
func (e *Engine) Trigger(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cycle, ok := e.cycles[name]
	if !ok {
		return fmt.Errorf("unknown binding %q", name)
	}
	return cycle.Trigger()
}

// UpdateConfig replaces the binding table from a freshly loaded config.
// Recorded exceptions survive the reload.
func (e *Engine) UpdateConfig(cfg *config.Config) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rebuild(cfg)
}

// Cycles returns the configured cycles in binding-name order.
func (e *Engine) Cycles() []*Cycle {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*Cycle, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.cycles[name])
	}
	return out
}

// ExceptionCount returns the number of recorded drift exceptions.
func (e *Engine) ExceptionCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Len()
}

func (e *Engine) rebuild(cfg *config.Config) error {
	cycles := make(map[string]*Cycle, len(cfg.Actions))
	order := cfg.BindingNames()

	for _, name := range order {
		specs := cfg.Actions[name]
		actions := make([]Action, 0, len(specs))
		category := CategorySnap

		for i, spec := range specs {
			switch {
			case spec.Snap != nil:
				actions = append(actions, NewSnapAction(e.backend, e.matcher, e.store, unitsFromSpec(spec.Snap)))
			case spec.Move != "":
				dir, err := platform.ParseDirection(spec.Move)
				if err != nil {
					return fmt.Errorf("binding %q action %d: %w", name, i, err)
				}
				category = CategoryMove
				actions = append(actions, NewMoveScreenAction(e.backend, dir, e))
			default:
				return fmt.Errorf("binding %q action %d: empty action spec", name, i)
			}
		}

		cycle, err := NewCycle(name, category, actions)
		if err != nil {
			return err
		}
		cycles[name] = cycle
	}

	e.cycles = cycles
	e.order = order
	return nil
}

// activeSnap scans all snap-category cycles for the action whose effect is
// currently in place. Under normal operation at most one action across all
// cycles tests true for a given window. Callers already hold the engine lock.
func (e *Engine) activeSnap() (Action, bool, error) {
	for _, name := range e.order {
		cycle := e.cycles[name]
		if cycle.Category() != CategorySnap {
			continue
		}
		action, ok, err := cycle.active()
		if err != nil {
			return nil, false, err
		}
		if ok {
			return action, true, nil
		}
	}
	return nil, false, nil
}

func unitsFromSpec(spec *config.SnapSpec) geometry.Units {
	copyOf := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		c := *v
		return &c
	}
	return geometry.Units{
		X: copyOf(spec.X),
		Y: copyOf(spec.Y),
		W: copyOf(spec.W),
		H: copyOf(spec.H),
	}
}
