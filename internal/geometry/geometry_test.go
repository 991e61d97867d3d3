package geometry

import "testing"

func TestToAbsolute_FloorsEachComponent(t *testing.T) {
	screen := Rect{X: 0, Y: 0, W: 1000, H: 1000}
	n := Normalized{X: 0.333, Y: 0.0, W: 0.333, H: 1.0}

	abs := ToAbsolute(n, screen)
	if abs.X != 333 || abs.Y != 0 || abs.W != 333 || abs.H != 1000 {
		t.Fatalf("unexpected absolute rect: %+v", abs)
	}
}

func TestToAbsolute_IncludesScreenOrigin(t *testing.T) {
	screen := Rect{X: 1920, Y: 0, W: 1080, H: 1920}
	n := Normalized{X: 0.5, Y: 0.0, W: 0.5, H: 1.0}

	abs := ToAbsolute(n, screen)
	if abs.X != 2460 {
		t.Fatalf("expected x=2460 on secondary screen, got %v", abs.X)
	}
	if abs.W != 540 {
		t.Fatalf("expected w=540, got %v", abs.W)
	}
}

func TestToNormalized_RoundsUpToThreeDecimals(t *testing.T) {
	screen := Rect{X: 0, Y: 0, W: 3000, H: 3000}
	window := Rect{X: 1000, Y: 0, W: 1000, H: 3000}

	n := ToNormalized(window, screen)
	// 1000/3000 = 0.3333... rounds up to 0.334, not down to 0.333.
	if n.X != 0.334 {
		t.Fatalf("expected x=0.334 (ceiling), got %v", n.X)
	}
	if n.W != 0.334 {
		t.Fatalf("expected w=0.334 (ceiling), got %v", n.W)
	}
	if n.H != 1.0 {
		t.Fatalf("expected h=1.0, got %v", n.H)
	}
}

func TestEqual_TolerantToSubPixelDrift(t *testing.T) {
	a := Rect{X: 100.0, Y: 50.0, W: 400.0, H: 300.0}
	b := Rect{X: 100.9, Y: 50.2, W: 400.3, H: 300.9}

	if !Equal(a, b) {
		t.Fatalf("expected %+v and %+v to compare equal after flooring", a, b)
	}

	c := Rect{X: 101.0, Y: 50.0, W: 400.0, H: 300.0}
	if Equal(a, c) {
		t.Fatalf("expected %+v and %+v to differ", a, c)
	}
}

func TestKey_StablePerScreenDistinctAcrossScreens(t *testing.T) {
	n := Normalized{X: 0.5, Y: 0.0, W: 0.5, H: 1.0}

	if Key(n, 1) != Key(n, 1) {
		t.Fatalf("key is not stable for identical inputs")
	}
	if Key(n, 1) == Key(n, 2) {
		t.Fatalf("key must differ across screens: %s", Key(n, 1))
	}
	if Key(n, 1) != "0.500:0.000:0.500:1.000@1" {
		t.Fatalf("unexpected key format: %s", Key(n, 1))
	}
}
