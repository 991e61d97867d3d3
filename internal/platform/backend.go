package platform

import (
	"fmt"
	"strings"

	"github.com/1broseidon/gridsnap/internal/geometry"
)

// WindowID is a platform-neutral window identifier. It is stable across
// move/resize operations but not across window close/recreate.
type WindowID uint32

// Direction is a cardinal direction for moving a window between screens.
type Direction string

const (
	DirectionNorth Direction = "north"
	DirectionSouth Direction = "south"
	DirectionEast  Direction = "east"
	DirectionWest  Direction = "west"
)

// ParseDirection validates a direction string case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DirectionNorth:
		return DirectionNorth, nil
	case DirectionSouth:
		return DirectionSouth, nil
	case DirectionEast:
		return DirectionEast, nil
	case DirectionWest:
		return DirectionWest, nil
	}
	return "", fmt.Errorf("unknown direction %q (want north, south, east or west)", s)
}

// Display describes a physical screen and its usable frame.
type Display struct {
	ID    int
	Name  string
	Frame geometry.Rect
}

// Backend abstracts window-system operations across platforms. Calls are
// synchronous; implementations must not block past interactive latency.
type Backend interface {
	// FocusedWindow returns the currently focused window, or ok=false when
	// no window has focus. Absence is an expected condition, not an error.
	FocusedWindow() (id WindowID, ok bool, err error)

	// WindowFrame returns the window's current absolute frame.
	WindowFrame(id WindowID) (geometry.Rect, error)

	// MoveResize moves and resizes a window. Best-effort: the window system
	// may clamp or adjust the requested frame (minimum sizes, decorations).
	MoveResize(id WindowID, frame geometry.Rect) error

	// Move repositions a window without touching its size.
	Move(id WindowID, frame geometry.Rect) error

	// ActiveDisplay returns the display the focused window lives on.
	ActiveDisplay() (Display, error)

	// Displays returns all connected displays.
	Displays() ([]Display, error)

	// MoveOneScreen relocates a window to the adjacent display in the given
	// direction. keepWidth/keepHeight preserve the window's absolute size
	// instead of scaling it to the destination display.
	MoveOneScreen(id WindowID, dir Direction, keepWidth, keepHeight bool) error
}
