package state

import (
	"sync"

	"LocalAnnotator/internal/applog"
)

var log = applog.WithComponent("state")

// Store is the ordered collection of committed rectangles. Slice order is
// draw order: it decides both stacking on the surface and row order in the
// side list. Positions shift down on removal; IDs never change.
type Store struct {
	mu     sync.RWMutex
	ids    idSource
	clock  *lamport
	rects  []Rect
	subs   []func(Op)
	subsMu sync.RWMutex
}

// NewStore creates an empty Store with a fresh site id.
func NewStore() *Store {
	return &Store{clock: newLamport()}
}

// Site returns the session id stamped on every Op from this Store.
func (s *Store) Site() string { return s.clock.site }

// Subscribe registers fn to be called after every mutation. Callbacks run
// on the mutating goroutine, outside the Store lock.
func (s *Store) Subscribe(fn func(Op)) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) emit(op Op) {
	op = s.clock.stamp(op)
	s.subsMu.RLock()
	subs := s.subs
	s.subsMu.RUnlock()
	for _, fn := range subs {
		fn(op)
	}
}

// Append assigns r a new ID, adds it at the end and returns the stored copy.
func (s *Store) Append(r Rect) Rect {
	s.mu.Lock()
	r.ID = s.ids.next()
	s.rects = append(s.rects, r)
	s.mu.Unlock()

	log.Debug("[STORE] rect added", "id", r.ID, "x", r.X, "y", r.Y, "w", r.Width, "h", r.Height)
	stored := r
	s.emit(Op{Type: OpInsertRect, Rect: &stored, Target: r.ID})
	return r
}

// Len returns the number of rects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rects)
}

// Rects returns a copy of all rects in draw order.
func (s *Store) Rects() []Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Rect, len(s.rects))
	copy(out, s.rects)
	return out
}

// At returns the rect at index i.
func (s *Store) At(i int) (Rect, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.rects) {
		return Rect{}, false
	}
	return s.rects[i], true
}

// Get returns the rect with the given ID.
func (s *Store) Get(id ID) (Rect, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.rects[i], true
	}
	return Rect{}, false
}

// IndexOf returns the current position of id, or -1.
func (s *Store) IndexOf(id ID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id)
}

func (s *Store) indexOf(id ID) int {
	if id == NoID {
		return -1
	}
	for i := range s.rects {
		if s.rects[i].ID == id {
			return i
		}
	}
	return -1
}

// HitTest returns the first rect in draw order that contains p. Overlaps
// resolve to the earliest drawn rect, not the topmost one.
func (s *Store) HitTest(p Point) (Rect, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rects {
		if r.Contains(p) {
			return r, true
		}
	}
	return Rect{}, false
}

// RemoveAt removes the rect at index i. It reports false for an index out
// of range.
func (s *Store) RemoveAt(i int) (Rect, bool) {
	s.mu.Lock()
	if i < 0 || i >= len(s.rects) {
		s.mu.Unlock()
		return Rect{}, false
	}
	removed := s.rects[i]
	s.rects = append(s.rects[:i:i], s.rects[i+1:]...)
	s.mu.Unlock()

	log.Debug("[STORE] rect removed", "id", removed.ID, "index", i)
	s.emit(Op{Type: OpDeleteRect, Target: removed.ID})
	return removed, true
}

// Remove removes the rect with the given ID.
func (s *Store) Remove(id ID) (Rect, bool) {
	return s.RemoveAt(s.IndexOf(id))
}

// UpdateAt merges p into the rect at index i. An index out of range is a
// no-op: UI callbacks may still hold an index after the rect was deleted.
func (s *Store) UpdateAt(i int, p Patch) (Rect, bool) {
	s.mu.Lock()
	if i < 0 || i >= len(s.rects) {
		s.mu.Unlock()
		return Rect{}, false
	}
	p.apply(&s.rects[i])
	updated := s.rects[i]
	s.mu.Unlock()

	stored := updated
	s.emit(Op{Type: OpUpdateRect, Rect: &stored, Target: updated.ID})
	return updated, true
}

// Update merges p into the rect with the given ID; unknown IDs are a no-op.
func (s *Store) Update(id ID, p Patch) (Rect, bool) {
	return s.UpdateAt(s.IndexOf(id), p)
}

// Snapshot copies the current contents.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rects := make([]Rect, len(s.rects))
	copy(rects, s.rects)
	return Snapshot{Site: s.clock.site, Lamport: s.clock.current(), Rects: rects}
}

// Restore replaces the contents with snap. IDs minted afterwards stay
// above every restored ID.
func (s *Store) Restore(snap Snapshot) {
	rects := make([]Rect, 0, len(snap.Rects))
	s.mu.Lock()
	for _, r := range snap.Rects {
		s.ids.observe(r.ID)
	}
	for _, r := range snap.Rects {
		if r.Empty() {
			continue
		}
		if r.ID == NoID {
			r.ID = s.ids.next()
		}
		rects = append(rects, r)
	}
	s.rects = rects
	s.mu.Unlock()

	log.Debug("[STORE] restored", "site", snap.Site, "rects", len(rects))
	s.emit(Op{Type: OpRestore})
}
