package snap

import (
	"testing"

	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/1broseidon/gridsnap/internal/platform"
)

func fp(v float64) *float64 { return &v }

func TestResolveTarget_PartialUnitsDeriveFromCurrentGeometry(t *testing.T) {
	screen := geometry.Rect{X: 0, Y: 0, W: 1000, H: 1000}
	window := geometry.Rect{X: 250, Y: 100, W: 500, H: 800}

	// Only width is constrained; x/y/h come from the window as it stands.
	resolved := ResolveTarget(geometry.Units{W: fp(0.35)}, window, screen)

	if resolved.W != 0.35 {
		t.Fatalf("expected w=0.35, got %v", resolved.W)
	}
	if resolved.X != 0.25 || resolved.Y != 0.1 || resolved.H != 0.8 {
		t.Fatalf("derived components wrong: %+v", resolved)
	}
}

func TestResolveTarget_ClampsDerivedComponents(t *testing.T) {
	screen := geometry.Rect{X: 0, Y: 0, W: 1000, H: 1000}
	// Off-screen to the upper-left and larger than the screen.
	window := geometry.Rect{X: -50, Y: -20, W: 1200, H: 1100}

	resolved := ResolveTarget(geometry.Units{}, window, screen)

	if resolved.X != 0 || resolved.Y != 0 {
		t.Fatalf("derived positions must clamp to 0: %+v", resolved)
	}
	if resolved.W != 1 || resolved.H != 1 {
		t.Fatalf("derived sizes must clamp to 1: %+v", resolved)
	}
}

func TestMatches_IdealGeometry(t *testing.T) {
	display := platform.Display{ID: 1, Frame: geometry.Rect{X: 0, Y: 0, W: 1000, H: 1000}}
	matcher := NewMatcher(NewStore())
	units := geometry.Units{X: fp(0.5), Y: fp(0), W: fp(0.5), H: fp(1)}

	atTarget := geometry.Rect{X: 500, Y: 0, W: 500, H: 1000}
	if !matcher.Matches(7, atTarget, units, display) {
		t.Fatalf("expected frame at ideal target to match")
	}

	elsewhere := geometry.Rect{X: 400, Y: 0, W: 600, H: 1000}
	if matcher.Matches(7, elsewhere, units, display) {
		t.Fatalf("expected off-target frame not to match")
	}
}

func TestMatches_ExceptionTakesPrecedence(t *testing.T) {
	display := platform.Display{ID: 1, Frame: geometry.Rect{X: 0, Y: 0, W: 1000, H: 1000}}
	store := NewStore()
	matcher := NewMatcher(store)
	units := geometry.Units{X: fp(0.65), Y: fp(0), W: fp(0.35), H: fp(1)}

	// The window system refused w=350 and produced this instead.
	observed := geometry.Rect{X: 595, Y: 0, W: 400, H: 1000}
	target := ResolveTarget(units, observed, display.Frame)
	store.Set(7, geometry.Key(target, display.ID), observed)

	if !matcher.Matches(7, observed, units, display) {
		t.Fatalf("recorded exception must count as already applied")
	}

	// The ideal geometry itself still matches for a window without drift.
	ideal := geometry.Rect{X: 650, Y: 0, W: 350, H: 1000}
	if !matcher.Matches(8, ideal, units, display) {
		t.Fatalf("ideal geometry must match for a window with no exception")
	}
}

func TestStore_UpsertKeepsLatest(t *testing.T) {
	store := NewStore()
	store.Set(1, "k", geometry.Rect{X: 1})
	store.Set(1, "k", geometry.Rect{X: 2})

	got, ok := store.Get(1, "k")
	if !ok || got.X != 2 {
		t.Fatalf("expected latest entry, got %+v ok=%v", got, ok)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", store.Len())
	}

	if _, ok := store.Get(2, "k"); ok {
		t.Fatalf("unknown window must miss")
	}
	if _, ok := store.Get(1, "other"); ok {
		t.Fatalf("unknown target must miss")
	}
}
