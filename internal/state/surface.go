package state

import "sync"

// Gesture is the state of the pointer between a down and an up.
type Gesture int

const (
	GestureIdle Gesture = iota
	// GestureDrawing: pointer went down on empty surface, a draft follows it.
	GestureDrawing
	// GesturePressed: pointer went down on a rect and has not moved yet.
	GesturePressed
	// GestureDragging: a pressed rect is being moved.
	GestureDragging
)

func (g Gesture) String() string {
	switch g {
	case GestureDrawing:
		return "drawing"
	case GesturePressed:
		return "pressed"
	case GestureDragging:
		return "dragging"
	}
	return "idle"
}

// Surface is the annotation surface: it turns pointer, drag and edit
// events into Store mutations and tracks the selection.
type Surface struct {
	store *Store
	size  Size

	mu        sync.Mutex
	gesture   Gesture
	origin    Point
	draft     *Rect
	pressed   ID
	selection ID
	dragging  ID
	dragAt    Point

	// OnChange is called after any change a renderer must show, including
	// draft and selection updates that do not touch the Store.
	OnChange func()
}

// NewSurface binds a Surface of the given size to store.
func NewSurface(store *Store, size Size) *Surface {
	s := &Surface{store: store, size: size}
	store.Subscribe(s.storeChanged)
	return s
}

// Store returns the backing Store.
func (s *Surface) Store() *Store { return s.store }

// Size returns the surface extent.
func (s *Surface) Size() Size { return s.size }

func (s *Surface) changed() {
	if s.OnChange != nil {
		s.OnChange()
	}
}

// storeChanged revalidates held IDs after any Store mutation.
func (s *Surface) storeChanged(op Op) {
	s.mu.Lock()
	switch op.Type {
	case OpDeleteRect:
		s.forget(op.Target)
	case OpRestore:
		for _, id := range []ID{s.selection, s.dragging, s.pressed} {
			if id != NoID && s.store.IndexOf(id) < 0 {
				s.forget(id)
			}
		}
	}
	s.mu.Unlock()
	s.changed()
}

func (s *Surface) forget(id ID) {
	if s.selection == id {
		s.selection = NoID
	}
	if s.dragging == id {
		s.dragging = NoID
		if s.gesture == GestureDragging {
			s.gesture = GestureIdle
		}
	}
	if s.pressed == id {
		s.pressed = NoID
		if s.gesture == GesturePressed {
			s.gesture = GestureIdle
		}
	}
}

// Gesture returns the current gesture state.
func (s *Surface) Gesture() Gesture {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gesture
}

// PointerDown starts a gesture at p. A hit on an existing rect selects the
// first match in draw order and arms a drag; a miss starts drawing.
func (s *Surface) PointerDown(p Point) {
	p = s.size.Clamp(p)
	hit, ok := s.store.HitTest(p)

	s.mu.Lock()
	s.origin = p
	s.draft = nil
	s.dragging = NoID
	if ok {
		s.selection = hit.ID
		s.pressed = hit.ID
		s.gesture = GesturePressed
	} else {
		s.pressed = NoID
		s.gesture = GestureDrawing
	}
	s.mu.Unlock()

	log.Debug("[POINTER] down", "x", p.X, "y", p.Y, "hit", ok)
	s.changed()
}

// PointerMove updates the draft while drawing, or starts and follows a
// drag of the pressed rect.
func (s *Surface) PointerMove(p Point) {
	p = s.size.Clamp(p)

	s.mu.Lock()
	switch s.gesture {
	case GestureDrawing:
		d := Normalize(s.origin, p)
		s.draft = &d
	case GesturePressed:
		s.gesture = GestureDragging
		s.dragging = s.pressed
		s.dragAt = p
	case GestureDragging:
		s.dragAt = p
	default:
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.changed()
}

// PointerUp finishes the gesture at p. A drawing gesture commits its draft,
// stretched to p, if it has area; a draw that never moved has no draft and
// commits nothing. A drag drops the rect centred on p. Calling PointerUp with
// no gesture in progress does nothing.
func (s *Surface) PointerUp(p Point) {
	p = s.size.Clamp(p)

	s.mu.Lock()
	gesture, origin, moved := s.gesture, s.origin, s.draft != nil
	s.gesture = GestureIdle
	s.draft = nil
	s.pressed = NoID
	s.mu.Unlock()

	switch gesture {
	case GestureDrawing:
		var r Rect
		if moved {
			r = Normalize(origin, p)
		}
		if r.Empty() {
			log.Debug("[POINTER] zero-area draft discarded")
			s.changed()
			return
		}
		s.store.Append(r)
	case GestureDragging:
		s.Drop(p)
	case GesturePressed:
		s.changed()
	}
}

// Draft returns the in-progress rectangle, if a draw gesture has moved.
func (s *Surface) Draft() (Rect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return Rect{}, false
	}
	return *s.draft, true
}

// Selected returns the selected rect ID.
func (s *Surface) Selected() (ID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection, s.selection != NoID
}

// IsSelected reports whether id is the current selection.
func (s *Surface) IsSelected(id ID) bool {
	sel, ok := s.Selected()
	return ok && sel == id
}

// Select makes id the selection. Unknown IDs clear it.
func (s *Surface) Select(id ID) {
	if s.store.IndexOf(id) < 0 {
		id = NoID
	}
	s.mu.Lock()
	s.selection = id
	s.mu.Unlock()
	s.changed()
}

// ClearSelection drops the selection.
func (s *Surface) ClearSelection() {
	s.Select(NoID)
}

// DragStart records id as the rect being relocated. Nothing moves until
// Drop.
func (s *Surface) DragStart(id ID) {
	if s.store.IndexOf(id) < 0 {
		return
	}
	s.mu.Lock()
	s.dragging = id
	s.mu.Unlock()
}

// Dragging returns the rect being relocated and the last pointer position.
func (s *Surface) Dragging() (ID, Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dragging, s.dragAt, s.dragging != NoID
}

// Drop moves the dragged rect so that p becomes its centre. Drag state is
// cleared whether or not a drag was active.
func (s *Surface) Drop(p Point) {
	p = s.size.Clamp(p)

	s.mu.Lock()
	id := s.dragging
	s.dragging = NoID
	if s.gesture == GestureDragging {
		s.gesture = GestureIdle
	}
	s.mu.Unlock()

	if id == NoID {
		return
	}
	r, ok := s.store.Get(id)
	if !ok {
		return
	}
	s.store.Update(id, MoveTo(p.X-r.Width/2, p.Y-r.Height/2))
	log.Debug("[DRAG] dropped", "id", id, "x", p.X, "y", p.Y)
}

// SetLabel stores raw as the label of id if it is zero to two digits.
// Anything else returns ErrInvalidLabel and leaves the label unchanged.
// An unknown id is ignored.
func (s *Surface) SetLabel(id ID, raw string) error {
	if !ValidLabel(raw) {
		return ErrInvalidLabel
	}
	s.store.Update(id, WithLabel(raw))
	return nil
}

// SetNote replaces the note of id.
func (s *Surface) SetNote(id ID, text string) {
	s.store.Update(id, WithNote(text))
}

// Delete removes id. A selection or drag pointing at it is cleared.
func (s *Surface) Delete(id ID) bool {
	_, ok := s.store.Remove(id)
	return ok
}

// DeleteAt removes the rect at index i.
func (s *Surface) DeleteAt(i int) bool {
	_, ok := s.store.RemoveAt(i)
	return ok
}

// DeleteSelected removes the selected rect, if any.
func (s *Surface) DeleteSelected() bool {
	id, ok := s.Selected()
	if !ok {
		return false
	}
	return s.Delete(id)
}
