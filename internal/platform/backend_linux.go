//go:build linux

package platform

import (
	"fmt"
	"sort"

	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/1broseidon/gridsnap/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// LinuxBackend implements Backend on top of an X11 connection.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend wraps an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay opens a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific callers
// such as hotkey registration.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// FocusedWindow returns the active window. A missing active window is
// reported as absence, not as an error.
func (b *LinuxBackend) FocusedWindow() (WindowID, bool, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, false, err
	}

	wid, err := conn.GetActiveWindow()
	if err != nil || wid == 0 {
		return 0, false, nil
	}
	return WindowID(wid), true, nil
}

// WindowFrame returns the window's frame in root coordinates.
func (b *LinuxBackend) WindowFrame(id WindowID) (geometry.Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return geometry.Rect{}, err
	}

	x, y, w, h, err := conn.WindowGeometry(xproto.Window(id))
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("failed to read geometry of window %d: %w", id, err)
	}
	return geometry.Rect{X: float64(x), Y: float64(y), W: float64(w), H: float64(h)}, nil
}

// MoveResize moves and resizes a window (best-effort, the WM may clamp).
func (b *LinuxBackend) MoveResize(id WindowID, frame geometry.Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MoveResizeWindow(
		xproto.Window(id),
		int(frame.X), int(frame.Y), int(frame.W), int(frame.H),
	)
}

// Move repositions a window without touching its size.
func (b *LinuxBackend) Move(id WindowID, frame geometry.Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MoveWindow(xproto.Window(id), int(frame.X), int(frame.Y))
}

// ActiveDisplay returns the display of the focused window, adjusted to the
// work area.
func (b *LinuxBackend) ActiveDisplay() (Display, error) {
	conn, err := b.connection()
	if err != nil {
		return Display{}, err
	}

	mon, err := conn.ActiveMonitor()
	if err != nil {
		return Display{}, err
	}
	return displayFromMonitor(mon), nil
}

// Displays returns all connected displays sorted by ID.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, displayFromMonitor(m))
	}
	sort.Slice(displays, func(i, j int) bool {
		return displays[i].ID < displays[j].ID
	})
	return displays, nil
}

// MoveOneScreen relocates a window to the adjacent display in the given
// direction, preserving its position relative to the display frame. With
// keepWidth/keepHeight the absolute size is kept; otherwise the size scales
// with the destination display.
func (b *LinuxBackend) MoveOneScreen(id WindowID, dir Direction, keepWidth, keepHeight bool) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}

	from, err := conn.MonitorForWindow(xproto.Window(id))
	if err != nil {
		return err
	}

	dx, dy := 0, 0
	switch dir {
	case DirectionNorth:
		dy = -1
	case DirectionSouth:
		dy = 1
	case DirectionEast:
		dx = 1
	case DirectionWest:
		dx = -1
	default:
		return fmt.Errorf("unknown direction %q", dir)
	}

	to, ok, err := conn.AdjacentMonitor(from, dx, dy)
	if err != nil {
		return err
	}
	if !ok {
		// No screen in that direction; leave the window in place.
		return nil
	}

	frame, err := b.WindowFrame(id)
	if err != nil {
		return err
	}

	relX := (frame.X - float64(from.X)) / float64(from.Width)
	relY := (frame.Y - float64(from.Y)) / float64(from.Height)

	next := frame
	next.X = float64(to.X) + relX*float64(to.Width)
	next.Y = float64(to.Y) + relY*float64(to.Height)
	if !keepWidth {
		next.W = frame.W / float64(from.Width) * float64(to.Width)
	}
	if !keepHeight {
		next.H = frame.H / float64(from.Height) * float64(to.Height)
	}

	return b.MoveResize(id, next)
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func displayFromMonitor(m x11.Monitor) Display {
	return Display{
		ID:   m.ID,
		Name: m.Name,
		Frame: geometry.Rect{
			X: float64(m.X),
			Y: float64(m.Y),
			W: float64(m.Width),
			H: float64(m.Height),
		},
	}
}
