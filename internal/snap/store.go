package snap

import (
	"github.com/1broseidon/gridsnap/internal/geometry"
	"github.com/1broseidon/gridsnap/internal/platform"
)

type exceptionKey struct {
	window platform.WindowID
	target string
}

// Store remembers, per window and snap target, the frame the window system
// actually produced when the exact requested geometry could not be honored
// (e.g. a minimum window size larger than the target fraction implies).
// Entries are overwritten on each fresh failure and never evicted; they live
// for the process lifetime, and a stale entry simply stops matching once the
// window leaves that approximate target.
type Store struct {
	entries map[exceptionKey]geometry.Rect
}

// NewStore creates an empty exception store.
func NewStore() *Store {
	return &Store{entries: make(map[exceptionKey]geometry.Rect)}
}

// Set upserts the observed frame for a (window, target) pair, keeping only
// the latest drift.
func (s *Store) Set(window platform.WindowID, targetKey string, actual geometry.Rect) {
	s.entries[exceptionKey{window: window, target: targetKey}] = actual
}

// Get returns the recorded frame for a (window, target) pair, if any.
func (s *Store) Get(window platform.WindowID, targetKey string) (geometry.Rect, bool) {
	rect, ok := s.entries[exceptionKey{window: window, target: targetKey}]
	return rect, ok
}

// Len returns the number of recorded exceptions.
func (s *Store) Len() int {
	return len(s.entries)
}
