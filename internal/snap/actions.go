package snap

import (
	"fmt"
	"log"
	"strings"

	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/1broseidon/gridsnap/internal/platform"
)

// Category classifies an action cycle. Snap cycles place the focused window
// on the current screen; move cycles relocate it to an adjacent screen.
type Category int

const (
	CategorySnap Category = iota
	CategoryMove
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategorySnap:
		return "snap"
	case CategoryMove:
		return "move"
	default:
		return "unknown"
	}
}

// Action is one step of an action cycle. Test reports whether the action's
// effect is currently observably in place for the focused window; Exec
// performs it. Actions are stateless value objects constructed from
// configuration.
type Action interface {
	Category() Category
	Test() (bool, error)
	Exec() error
}

// SnapAction places the focused window at a screen-relative target rectangle.
type SnapAction struct {
	units   geometry.Units
	backend platform.Backend
	matcher *Matcher
	store   *Store
}

// NewSnapAction creates a snap action for the given target units.
func NewSnapAction(backend platform.Backend, matcher *Matcher, store *Store, units geometry.Units) *SnapAction {
	return &SnapAction{
		units:   units,
		backend: backend,
		matcher: matcher,
		store:   store,
	}
}

// Category returns CategorySnap.
func (a *SnapAction) Category() Category { return CategorySnap }

// String renders the target units, omitting unset components.
func (a *SnapAction) String() string {
	parts := []string{"snap"}
	for _, c := range []struct {
		label string
		v     *float64
	}{{"x", a.units.X}, {"y", a.units.Y}, {"w", a.units.W}, {"h", a.units.H}} {
		if c.v != nil {
			parts = append(parts, fmt.Sprintf("%s=%.2f", c.label, *c.v))
		}
	}
	return strings.Join(parts, " ")
}

// Units returns the action's target units.
func (a *SnapAction) Units() geometry.Units { return a.units }

// Test reports whether the focused window already sits at the target. With
// no focused window there is nothing to match, so Test reports false.
func (a *SnapAction) Test() (bool, error) {
	window, ok, err := a.backend.FocusedWindow()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	display, err := a.backend.ActiveDisplay()
	if err != nil {
		return false, err
	}
	frame, err := a.backend.WindowFrame(window)
	if err != nil {
		return false, err
	}

	return a.matcher.Matches(window, frame, a.units, display), nil
}

// Exec moves the focused window to the target, corrects boundary overflow,
// and re-checks the match. If the window system refused the exact geometry
// even after correction, the observed frame is recorded as an exception so
// the next match-test treats the drift as "already applied" instead of
// looping forever.
func (a *SnapAction) Exec() error {
	window, ok, err := a.backend.FocusedWindow()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	display, err := a.backend.ActiveDisplay()
	if err != nil {
		return err
	}
	frame, err := a.backend.WindowFrame(window)
	if err != nil {
		return err
	}

	target := ResolveTarget(a.units, frame, display.Frame)
	if err := a.backend.MoveResize(window, geometry.ToAbsolute(target, display.Frame)); err != nil {
		return err
	}
	if err := CorrectOverflow(a.backend, window, display.Frame); err != nil {
		return err
	}

	settled, err := a.backend.WindowFrame(window)
	if err != nil {
		return err
	}
	if !a.matcher.Matches(window, settled, a.units, display) {
		key := geometry.Key(target, display.ID)
		a.store.Set(window, key, settled)
		log.Printf("Snap target %s not honored for window %d; remembering %+v", key, window, settled)
	}
	return nil
}

// snapLocator finds the snap action currently in effect for the focused
// window, across all configured snap cycles.
type snapLocator interface {
	activeSnap() (Action, bool, error)
}

// MoveScreenAction relocates the focused window to the adjacent screen in a
// cardinal direction. If the window was snapped before the move, the same
// snap is re-applied on the destination screen so the window lands at the
// equivalent relative position rather than at whatever raw geometry the
// screen-move primitive produced.
type MoveScreenAction struct {
	dir     platform.Direction
	backend platform.Backend
	snaps   snapLocator
}

// NewMoveScreenAction creates a move action for the given direction.
func NewMoveScreenAction(backend platform.Backend, dir platform.Direction, snaps snapLocator) *MoveScreenAction {
	return &MoveScreenAction{
		dir:     dir,
		backend: backend,
		snaps:   snaps,
	}
}

// Category returns CategoryMove.
func (a *MoveScreenAction) Category() Category { return CategoryMove }

// String renders the move direction.
func (a *MoveScreenAction) String() string {
	return fmt.Sprintf("move %s", a.dir)
}

// Direction returns the action's direction.
func (a *MoveScreenAction) Direction() platform.Direction { return a.dir }

// Test always reports false: a relocation to another screen is never
// observably "in place", so every trigger performs the move.
func (a *MoveScreenAction) Test() (bool, error) {
	return false, nil
}

// Exec detects which snap currently applies, performs the screen move, and
// re-executes the detected snap on the destination screen.
func (a *MoveScreenAction) Exec() error {
	window, ok, err := a.backend.FocusedWindow()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	active, found, err := a.snaps.activeSnap()
	if err != nil {
		return err
	}

	if err := a.backend.MoveOneScreen(window, a.dir, true, true); err != nil {
		return err
	}

	if found {
		return active.Exec()
	}
	return nil
}
