package snap

import (
	"testing"

	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/1broseidon/gridsnap/internal/platform"
)

func TestCorrectOverflow_PullsWindowBackOnScreen(t *testing.T) {
	screen := geometry.Rect{X: 0, Y: 0, W: 1000, H: 1000}
	backend := newFakeBackend(platform.Display{ID: 0, Frame: screen})
	backend.addWindow(1, geometry.Rect{X: 650, Y: 0, W: 400, H: 1000})

	if err := CorrectOverflow(backend, 1, screen); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	frame := backend.frames[1]
	// Right edge flush against the screen, inset by 0.5% of the height.
	if frame.X != 1000-400-5 {
		t.Fatalf("expected x=595, got %v", frame.X)
	}
	if frame.W != 400 || frame.Y != 0 || frame.H != 1000 {
		t.Fatalf("correction must only touch x: %+v", frame)
	}
}

func TestCorrectOverflow_NoMoveWhenWindowFits(t *testing.T) {
	screen := geometry.Rect{X: 0, Y: 0, W: 1000, H: 1000}
	backend := newFakeBackend(platform.Display{ID: 0, Frame: screen})
	backend.addWindow(1, geometry.Rect{X: 500, Y: 0, W: 500, H: 1000})

	if err := CorrectOverflow(backend, 1, screen); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.moveCalls != 0 {
		t.Fatalf("expected no move for a window that already fits, got %d", backend.moveCalls)
	}
}

func TestCorrectOverflow_VerticalOverflowLeftAlone(t *testing.T) {
	screen := geometry.Rect{X: 0, Y: 0, W: 1000, H: 1000}
	backend := newFakeBackend(platform.Display{ID: 0, Frame: screen})
	backend.addWindow(1, geometry.Rect{X: 0, Y: 800, W: 500, H: 400})

	if err := CorrectOverflow(backend, 1, screen); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.moveCalls != 0 {
		t.Fatalf("vertical overflow is a documented gap; no move expected")
	}
}
