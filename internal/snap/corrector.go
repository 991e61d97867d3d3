package snap

import (
	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/1broseidon/gridsnap/internal/platform"
)

// overflowMarginFrac is the visual margin left between a corrected window's
// right edge and the screen edge, as a fraction of the screen height.
const overflowMarginFrac = 0.005

// CorrectOverflow pulls a window back on-screen when its right edge crosses
// the screen's right edge, typically after the window system widened a
// requested frame to satisfy a minimum size. No move is issued when the
// window already fits, which avoids redundant calls and animation flicker.
//
// Vertical overflow is intentionally not corrected; the bottom-edge case has
// no defined behavior yet.
func CorrectOverflow(backend platform.Backend, window platform.WindowID, screen geometry.Rect) error {
	frame, err := backend.WindowFrame(window)
	if err != nil {
		return err
	}

	screenRight := screen.X + screen.W
	if frame.X+frame.W <= screenRight {
		return nil
	}

	frame.X = screenRight - frame.W - screen.H*overflowMarginFrac
	return backend.Move(window, frame)
}
