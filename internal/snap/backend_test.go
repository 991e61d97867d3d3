package snap

import (
	"fmt"

	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/1broseidon/gridsnap/internal/platform"
)

// fakeBackend is an in-memory window platform for tests. MoveResize honors
// an optional minimum width, mimicking a window system that refuses to
// shrink a window below its size hints.
type fakeBackend struct {
	focused    platform.WindowID
	hasFocused bool
	frames     map[platform.WindowID]geometry.Rect
	displays   []platform.Display
	minWidth   float64
	moveCalls  int
}

var _ platform.Backend = (*fakeBackend)(nil)

func newFakeBackend(displays ...platform.Display) *fakeBackend {
	return &fakeBackend{
		frames:   make(map[platform.WindowID]geometry.Rect),
		displays: displays,
	}
}

func (f *fakeBackend) addWindow(id platform.WindowID, frame geometry.Rect) {
	f.frames[id] = frame
	f.focused = id
	f.hasFocused = true
}

func (f *fakeBackend) FocusedWindow() (platform.WindowID, bool, error) {
	return f.focused, f.hasFocused, nil
}

func (f *fakeBackend) WindowFrame(id platform.WindowID) (geometry.Rect, error) {
	frame, ok := f.frames[id]
	if !ok {
		return geometry.Rect{}, fmt.Errorf("window %d not found", id)
	}
	return frame, nil
}

func (f *fakeBackend) MoveResize(id platform.WindowID, frame geometry.Rect) error {
	if _, ok := f.frames[id]; !ok {
		return fmt.Errorf("window %d not found", id)
	}
	if f.minWidth > 0 && frame.W < f.minWidth {
		frame.W = f.minWidth
	}
	f.frames[id] = frame
	return nil
}

func (f *fakeBackend) Move(id platform.WindowID, frame geometry.Rect) error {
	if _, ok := f.frames[id]; !ok {
		return fmt.Errorf("window %d not found", id)
	}
	f.moveCalls++
	f.frames[id] = frame
	return nil
}

func (f *fakeBackend) ActiveDisplay() (platform.Display, error) {
	if len(f.displays) == 0 {
		return platform.Display{}, fmt.Errorf("no displays")
	}
	if f.hasFocused {
		if frame, ok := f.frames[f.focused]; ok {
			if d, ok := f.displayAt(frame.X+frame.W/2, frame.Y+frame.H/2); ok {
				return d, nil
			}
		}
	}
	return f.displays[0], nil
}

func (f *fakeBackend) Displays() ([]platform.Display, error) {
	return f.displays, nil
}

func (f *fakeBackend) MoveOneScreen(id platform.WindowID, dir platform.Direction, keepWidth, keepHeight bool) error {
	frame, ok := f.frames[id]
	if !ok {
		return fmt.Errorf("window %d not found", id)
	}
	cur, ok := f.displayAt(frame.X+frame.W/2, frame.Y+frame.H/2)
	if !ok {
		cur = f.displays[0]
	}

	for _, d := range f.displays {
		if d.ID == cur.ID {
			continue
		}
		switch dir {
		case platform.DirectionEast:
			if d.Frame.X <= cur.Frame.X {
				continue
			}
		case platform.DirectionWest:
			if d.Frame.X >= cur.Frame.X {
				continue
			}
		case platform.DirectionSouth:
			if d.Frame.Y <= cur.Frame.Y {
				continue
			}
		case platform.DirectionNorth:
			if d.Frame.Y >= cur.Frame.Y {
				continue
			}
		}
		frame.X += d.Frame.X - cur.Frame.X
		frame.Y += d.Frame.Y - cur.Frame.Y
		f.frames[id] = frame
		return nil
	}
	return nil
}

func (f *fakeBackend) displayAt(x, y float64) (platform.Display, bool) {
	for _, d := range f.displays {
		if x >= d.Frame.X && x < d.Frame.X+d.Frame.W &&
			y >= d.Frame.Y && y < d.Frame.Y+d.Frame.H {
			return d, true
		}
	}
	return platform.Display{}, false
}
