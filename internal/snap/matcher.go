package snap

import (
	"math"

	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/1broseidon/gridsnap/internal/platform"
)

// ResolveTarget fills in the unspecified components of a snap target from
// the window's current screen-relative geometry. A target that only sets
// width, say, constrains width and leaves position and height where they
// are. Derived positions are clamped to >= 0 and derived sizes to <= 1.
func ResolveTarget(units geometry.Units, window, screen geometry.Rect) geometry.Normalized {
	current := geometry.ToNormalized(window, screen)

	resolved := geometry.Normalized{
		X: math.Max(current.X, 0),
		Y: math.Max(current.Y, 0),
		W: math.Min(current.W, 1),
		H: math.Min(current.H, 1),
	}
	if units.X != nil {
		resolved.X = *units.X
	}
	if units.Y != nil {
		resolved.Y = *units.Y
	}
	if units.W != nil {
		resolved.W = *units.W
	}
	if units.H != nil {
		resolved.H = *units.H
	}
	return resolved
}

// Matcher decides whether a window's current frame matches a snap target,
// consulting the exception store before falling back to the ideal geometry.
type Matcher struct {
	store *Store
}

// NewMatcher creates a matcher backed by the given exception store.
func NewMatcher(store *Store) *Matcher {
	return &Matcher{store: store}
}

// Matches reports whether frame already satisfies the target on the given
// display. A previously recorded platform-forced deviation takes precedence
// over the theoretically ideal geometry: once the window system has shown it
// cannot honor a target exactly, the observed frame is treated as the
// canonical "already there" geometry for that (window, target) pair.
func (m *Matcher) Matches(window platform.WindowID, frame geometry.Rect, units geometry.Units, display platform.Display) bool {
	target := ResolveTarget(units, frame, display.Frame)

	expected, ok := m.store.Get(window, geometry.Key(target, display.ID))
	if !ok {
		expected = geometry.ToAbsolute(target, display.Frame)
	}
	return geometry.Equal(expected, frame)
}
