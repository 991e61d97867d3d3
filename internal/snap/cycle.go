package snap

import "fmt"

// Cycle is an ordered list of candidate actions bound to one trigger. It
// keeps no "current index" between invocations: every trigger rescans the
// list for the first action whose effect is currently in place and advances
// past it. Statelessness makes the cycle self-healing if the window was
// moved by other means between triggers.
type Cycle struct {
	name     string
	category Category
	actions  []Action
}

// NewCycle creates a cycle. An empty action list is a configuration error:
// the transition rule assumes at least one element.
func NewCycle(name string, category Category, actions []Action) (*Cycle, error) {
	if len(actions) == 0 {
		return nil, fmt.Errorf("binding %q has an empty action cycle", name)
	}
	return &Cycle{name: name, category: category, actions: actions}, nil
}

// Name returns the binding name the cycle is attached to.
func (c *Cycle) Name() string { return c.name }

// Category returns the cycle's action category.
func (c *Cycle) Category() Category { return c.category }

// Actions returns the ordered action list.
func (c *Cycle) Actions() []Action { return c.actions }

// Trigger finds the first action that currently tests true and executes its
// successor, wrapping to the first element after the last. When no action
// matches, the scan stops at the last index and the first action runs.
func (c *Cycle) Trigger() error {
	idx := 0
	for idx < len(c.actions)-1 {
		ok, err := c.actions[idx].Test()
		if err != nil {
			return fmt.Errorf("binding %q: test failed at index %d: %w", c.name, idx, err)
		}
		if ok {
			break
		}
		idx++
	}

	next := (idx + 1) % len(c.actions)
	if err := c.actions[next].Exec(); err != nil {
		return fmt.Errorf("binding %q: action %d failed: %w", c.name, next, err)
	}
	return nil
}

// active returns the first action whose Test reports true, if any.
func (c *Cycle) active() (Action, bool, error) {
	for _, action := range c.actions {
		ok, err := action.Test()
		if err != nil {
			return nil, false, err
		}
		if ok {
			return action, true, nil
		}
	}
	return nil, false, nil
}
