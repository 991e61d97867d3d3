package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		if outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   outputName,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		})
	}

	return monitors, nil
}

// MonitorForWindow returns the monitor containing the window's center, or
// the first monitor when the window sits outside every monitor.
func (c *Connection) MonitorForWindow(windowID xproto.Window) (Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return Monitor{}, err
	}
	if len(monitors) == 0 {
		return Monitor{}, fmt.Errorf("no monitors found")
	}

	x, y, w, h, err := c.WindowGeometry(windowID)
	if err != nil {
		return adjustToWorkArea(c, monitors[0]), nil
	}

	cx, cy := x+w/2, y+h/2
	for _, mon := range monitors {
		if containsPoint(mon, cx, cy) {
			return adjustToWorkArea(c, mon), nil
		}
	}
	return adjustToWorkArea(c, monitors[0]), nil
}

// ActiveMonitor returns the monitor of the focused window, falling back to
// the monitor under the pointer and finally the first monitor.
func (c *Connection) ActiveMonitor() (Monitor, error) {
	if active, err := ewmh.ActiveWindowGet(c.XUtil); err == nil && active != 0 {
		return c.MonitorForWindow(active)
	}

	monitors, err := c.GetMonitors()
	if err != nil {
		return Monitor{}, err
	}
	if len(monitors) == 0 {
		return Monitor{}, fmt.Errorf("no monitors found")
	}

	if pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		for _, mon := range monitors {
			if containsPoint(mon, int(pointer.RootX), int(pointer.RootY)) {
				return adjustToWorkArea(c, mon), nil
			}
		}
	}
	return adjustToWorkArea(c, monitors[0]), nil
}

// AdjacentMonitor returns the nearest monitor in the given direction from
// the origin monitor. The second return value is false when there is none.
// dx/dy select the axis: exactly one of them must be -1 or 1.
func (c *Connection) AdjacentMonitor(from Monitor, dx, dy int) (Monitor, bool, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return Monitor{}, false, err
	}

	fromCX := from.X + from.Width/2
	fromCY := from.Y + from.Height/2

	best := Monitor{}
	bestDist := -1
	for _, mon := range monitors {
		if mon.ID == from.ID {
			continue
		}
		cx := mon.X + mon.Width/2
		cy := mon.Y + mon.Height/2

		if dx < 0 && cx >= fromCX {
			continue
		}
		if dx > 0 && cx <= fromCX {
			continue
		}
		if dy < 0 && cy >= fromCY {
			continue
		}
		if dy > 0 && cy <= fromCY {
			continue
		}

		dist := abs(cx-fromCX) + abs(cy-fromCY)
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = mon
		}
	}

	if bestDist < 0 {
		return Monitor{}, false, nil
	}
	return adjustToWorkArea(c, best), true, nil
}

// adjustToWorkArea shrinks a monitor to the work area reported by the window
// manager, excluding panels and docks, when the two intersect.
func adjustToWorkArea(c *Connection, mon Monitor) Monitor {
	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return mon
	}

	desktopIndex := 0
	if currentDesktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil {
		if int(currentDesktop) >= 0 && int(currentDesktop) < len(workArea) {
			desktopIndex = int(currentDesktop)
		}
	}
	wa := workArea[desktopIndex]

	x1 := max(mon.X, int(wa.X))
	y1 := max(mon.Y, int(wa.Y))
	x2 := min(mon.X+mon.Width, int(wa.X)+int(wa.Width))
	y2 := min(mon.Y+mon.Height, int(wa.Y)+int(wa.Height))

	if x2 > x1 && y2 > y1 {
		mon.X = x1
		mon.Y = y1
		mon.Width = x2 - x1
		mon.Height = y2 - y1
	}
	return mon
}

func containsPoint(mon Monitor, x, y int) bool {
	return x >= mon.X && x < mon.X+mon.Width && y >= mon.Y && y < mon.Y+mon.Height
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
