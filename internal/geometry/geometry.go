package geometry

import (
	"fmt"
	"math"
)

// Rect describes an absolute window or screen frame in screen coordinates.
// Components are float64 because window systems report fractional frames;
// comparisons go through Equal, which floors both sides first.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Units is a screen-relative rectangle with optional components. Each field
// is a fraction of the screen frame in [0,1]; nil means "not specified" and
// the value is derived from the window's current geometry at resolve time.
type Units struct {
	X *float64 `yaml:"x,omitempty"`
	Y *float64 `yaml:"y,omitempty"`
	W *float64 `yaml:"w,omitempty"`
	H *float64 `yaml:"h,omitempty"`
}

// Normalized is a fully resolved screen-relative rectangle.
type Normalized struct {
	X float64
	Y float64
	W float64
	H float64
}

// ToAbsolute converts a normalized rectangle to absolute coordinates within
// screen. Each component is floored so the result is deterministic and lines
// up with the pixel geometry the window system itself reports.
func ToAbsolute(n Normalized, screen Rect) Rect {
	return Rect{
		X: math.Floor(screen.X + n.X*screen.W),
		Y: math.Floor(screen.Y + n.Y*screen.H),
		W: math.Floor(n.W * screen.W),
		H: math.Floor(n.H * screen.H),
	}
}

// ToNormalized computes the screen-relative geometry of an absolute frame.
// Ratios are rounded up to 3 decimal places; the ceiling bias matters when a
// derived component is later clamped against the screen edge.
func ToNormalized(window, screen Rect) Normalized {
	return Normalized{
		X: ceil3((window.X - screen.X) / screen.W),
		Y: ceil3((window.Y - screen.Y) / screen.H),
		W: ceil3(window.W / screen.W),
		H: ceil3(window.H / screen.H),
	}
}

// Equal reports whether two absolute rectangles are the same frame, ignoring
// sub-pixel differences. Both sides are floored componentwise before
// comparing, so rounding drift never causes a false mismatch.
func Equal(a, b Rect) bool {
	return math.Floor(a.X) == math.Floor(b.X) &&
		math.Floor(a.Y) == math.Floor(b.Y) &&
		math.Floor(a.W) == math.Floor(b.W) &&
		math.Floor(a.H) == math.Floor(b.H)
}

// Key derives a stable identifier for a snap target: the resolved normalized
// rectangle formatted to 3 decimal places plus the screen it was computed
// against. Identical targets on different screens get distinct keys.
func Key(n Normalized, screenID int) string {
	return fmt.Sprintf("%.3f:%.3f:%.3f:%.3f@%d", n.X, n.Y, n.W, n.H, screenID)
}

func ceil3(v float64) float64 {
	return math.Ceil(v*1000) / 1000
}
