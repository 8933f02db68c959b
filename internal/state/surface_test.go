package state

import (
	"errors"
	"testing"
)

func newTestSurface() *Surface {
	return NewSurface(NewStore(), Size{Width: 800, Height: 500})
}

func draw(s *Surface, from, to Point) {
	s.PointerDown(from)
	s.PointerMove(to)
	s.PointerUp(to)
}

func TestDrawCommitsNormalizedRect(t *testing.T) {
	tests := []struct {
		name     string
		from, to Point
	}{
		{"down-right", Point{10, 10}, Point{60, 40}},
		{"up-left", Point{60, 40}, Point{10, 10}},
		{"down-left", Point{60, 10}, Point{10, 40}},
		{"up-right", Point{10, 40}, Point{60, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSurface()
			draw(s, tt.from, tt.to)

			if s.Store().Len() != 1 {
				t.Fatalf("expected 1 rect, got %d", s.Store().Len())
			}
			r, _ := s.Store().At(0)
			if r.X != 10 || r.Y != 10 || r.Width != 50 || r.Height != 30 {
				t.Errorf("expected {10 10 50 30}, got {%v %v %v %v}", r.X, r.Y, r.Width, r.Height)
			}
			if r.Label != "" || r.Note != "" {
				t.Errorf("new rect should have empty label and note, got %q %q", r.Label, r.Note)
			}
			if _, ok := s.Draft(); ok {
				t.Error("draft should be discarded after pointer up")
			}
		})
	}
}

func TestZeroAreaGestureCommitsNothing(t *testing.T) {
	s := newTestSurface()

	s.PointerDown(Point{30, 30})
	s.PointerUp(Point{30, 30})
	if s.Store().Len() != 0 {
		t.Errorf("click without movement should not commit, got %d rects", s.Store().Len())
	}

	// a gesture flat in one axis has no area either
	draw(s, Point{30, 30}, Point{90, 30})
	if s.Store().Len() != 0 {
		t.Errorf("flat gesture should not commit, got %d rects", s.Store().Len())
	}
	if s.Gesture() != GestureIdle {
		t.Errorf("expected idle, got %s", s.Gesture())
	}
}

func TestPointerUpWithoutMoveCommitsNothing(t *testing.T) {
	tests := []struct {
		name     string
		down, up Point
	}{
		{"far", Point{10, 10}, Point{60, 40}},
		{"jitter", Point{100, 100}, Point{101, 101}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSurface()
			s.PointerDown(tt.down)
			s.PointerUp(tt.up)
			if s.Store().Len() != 0 {
				r, _ := s.Store().At(0)
				t.Errorf("press and release without a move committed %+v", r)
			}
			if s.Gesture() != GestureIdle {
				t.Errorf("expected idle, got %s", s.Gesture())
			}
		})
	}
}

func TestDraftFollowsPointer(t *testing.T) {
	s := newTestSurface()
	s.PointerDown(Point{100, 100})
	if _, ok := s.Draft(); ok {
		t.Fatal("no draft before the first move")
	}

	s.PointerMove(Point{40, 160})
	d, ok := s.Draft()
	if !ok {
		t.Fatal("expected a draft while drawing")
	}
	if d.X != 40 || d.Y != 100 || d.Width != 60 || d.Height != 60 {
		t.Errorf("unexpected draft %+v", d)
	}
	if s.Store().Len() != 0 {
		t.Error("draft must not enter the store before pointer up")
	}
}

func TestPointerClampedToSurface(t *testing.T) {
	s := newTestSurface()
	draw(s, Point{700, 400}, Point{900, 600})

	r, ok := s.Store().At(0)
	if !ok {
		t.Fatal("expected a committed rect")
	}
	if r.X+r.Width != 800 || r.Y+r.Height != 500 {
		t.Errorf("rect should stop at surface edge, got %+v", r)
	}
}

func TestClickSelectsFirstMatch(t *testing.T) {
	s := newTestSurface()
	draw(s, Point{0, 0}, Point{100, 100})
	draw(s, Point{150, 150}, Point{300, 300})
	draw(s, Point{50, 50}, Point{200, 200})
	first, _ := s.Store().At(0)

	s.PointerDown(Point{75, 75})
	s.PointerUp(Point{75, 75})

	sel, ok := s.Selected()
	if !ok || sel != first.ID {
		t.Errorf("expected first rect selected, got %d (ok=%v)", sel, ok)
	}
	if s.Store().Len() != 3 {
		t.Errorf("click on a rect must not draw, got %d rects", s.Store().Len())
	}
}

func TestClickOnEmptySpaceKeepsSelection(t *testing.T) {
	s := newTestSurface()
	draw(s, Point{0, 0}, Point{100, 100})
	r, _ := s.Store().At(0)
	s.Select(r.ID)

	s.PointerDown(Point{400, 400})
	s.PointerUp(Point{400, 400})

	if !s.IsSelected(r.ID) {
		t.Error("a miss should not change the selection")
	}
}

func TestDragMovesCenterToDropPoint(t *testing.T) {
	s := newTestSurface()
	draw(s, Point{10, 10}, Point{60, 40})
	r, _ := s.Store().At(0)

	s.PointerDown(Point{20, 20})
	s.PointerMove(Point{150, 150})
	if id, _, ok := s.Dragging(); !ok || id != r.ID {
		t.Fatalf("expected rect %d to be dragging", r.ID)
	}
	s.PointerUp(Point{200, 100})

	got, _ := s.Store().Get(r.ID)
	if got.X != 175 || got.Y != 85 {
		t.Errorf("expected top-left (175,85), got (%v,%v)", got.X, got.Y)
	}
	if got.Width != 50 || got.Height != 30 {
		t.Errorf("drag must not resize, got %vx%v", got.Width, got.Height)
	}
	if _, _, ok := s.Dragging(); ok {
		t.Error("drag state should be cleared after drop")
	}
	if s.Store().Len() != 1 {
		t.Errorf("drag must not draw, got %d rects", s.Store().Len())
	}
}

func TestDragStartAndDropDirect(t *testing.T) {
	s := newTestSurface()
	draw(s, Point{0, 0}, Point{40, 20})
	r, _ := s.Store().At(0)

	s.DragStart(r.ID)
	if _, ok := s.Store().Get(r.ID); !ok {
		t.Fatal("rect vanished")
	}
	if got, _ := s.Store().Get(r.ID); got.X != 0 || got.Y != 0 {
		t.Error("DragStart must not move the rect")
	}
	s.Drop(Point{300, 300})

	got, _ := s.Store().Get(r.ID)
	if got.X != 280 || got.Y != 290 {
		t.Errorf("expected (280,290), got (%v,%v)", got.X, got.Y)
	}
}

func TestDropWithoutDragIsNoOp(t *testing.T) {
	s := newTestSurface()
	draw(s, Point{0, 0}, Point{40, 20})
	before := s.Store().Rects()

	s.Drop(Point{300, 300})

	after := s.Store().Rects()
	if before[0] != after[0] {
		t.Errorf("drop without drag changed the store: %+v -> %+v", before[0], after[0])
	}
}

func TestSetLabel(t *testing.T) {
	s := newTestSurface()
	draw(s, Point{0, 0}, Point{40, 20})
	r, _ := s.Store().At(0)

	for _, raw := range []string{"5", "42", "", "07"} {
		if err := s.SetLabel(r.ID, raw); err != nil {
			t.Errorf("SetLabel(%q) unexpected error: %v", raw, err)
		}
		if got, _ := s.Store().Get(r.ID); got.Label != raw {
			t.Errorf("SetLabel(%q) stored %q", raw, got.Label)
		}
	}

	if err := s.SetLabel(r.ID, "3"); err != nil {
		t.Fatal(err)
	}
	for _, raw := range []string{"100", "abc", "-1", " 1", "1.5"} {
		err := s.SetLabel(r.ID, raw)
		if !errors.Is(err, ErrInvalidLabel) {
			t.Errorf("SetLabel(%q) expected ErrInvalidLabel, got %v", raw, err)
		}
		if got, _ := s.Store().Get(r.ID); got.Label != "3" {
			t.Errorf("SetLabel(%q) changed label to %q", raw, got.Label)
		}
	}
}

func TestSetNoteReplaces(t *testing.T) {
	s := newTestSurface()
	draw(s, Point{0, 0}, Point{40, 20})
	r, _ := s.Store().At(0)

	s.SetNote(r.ID, "first")
	s.SetNote(r.ID, "anything goes: 100 / abc")
	if got, _ := s.Store().Get(r.ID); got.Note != "anything goes: 100 / abc" {
		t.Errorf("unexpected note %q", got.Note)
	}
	// stale id after deletion is ignored
	s.Delete(r.ID)
	s.SetNote(r.ID, "late")
	if err := s.SetLabel(r.ID, "1"); err != nil {
		t.Errorf("stale id should be ignored quietly, got %v", err)
	}
}

func TestDeleteClearsSelectionAndReindexes(t *testing.T) {
	s := newTestSurface()
	draw(s, Point{0, 0}, Point{10, 10})
	draw(s, Point{20, 20}, Point{30, 30})
	draw(s, Point{40, 40}, Point{50, 50})
	mid, _ := s.Store().At(1)
	last, _ := s.Store().At(2)
	s.Select(mid.ID)

	if !s.DeleteAt(1) {
		t.Fatal("DeleteAt(1) failed")
	}
	if s.Store().Len() != 2 {
		t.Fatalf("expected 2 rects, got %d", s.Store().Len())
	}
	if got, _ := s.Store().At(1); got.ID != last.ID {
		t.Errorf("expected last rect at index 1, got %d", got.ID)
	}
	if _, ok := s.Selected(); ok {
		t.Error("selection of the deleted rect should be cleared")
	}
}

func TestDeleteKeepsUnrelatedSelection(t *testing.T) {
	s := newTestSurface()
	draw(s, Point{0, 0}, Point{10, 10})
	draw(s, Point{20, 20}, Point{30, 30})
	a, _ := s.Store().At(0)
	b, _ := s.Store().At(1)
	s.Select(b.ID)

	s.Delete(a.ID)

	if !s.IsSelected(b.ID) {
		t.Error("selection follows the rect, not its index")
	}
}

func TestDeleteDuringDragClearsDrag(t *testing.T) {
	s := newTestSurface()
	draw(s, Point{0, 0}, Point{40, 40})
	r, _ := s.Store().At(0)

	s.PointerDown(Point{10, 10})
	s.PointerMove(Point{100, 100})
	s.Delete(r.ID)

	if _, _, ok := s.Dragging(); ok {
		t.Error("drag of a deleted rect should be cleared")
	}
	s.PointerUp(Point{200, 200})
	if s.Store().Len() != 0 {
		t.Errorf("releasing after delete should not draw, got %d", s.Store().Len())
	}
}

func TestDrawLabelDeleteScenario(t *testing.T) {
	s := newTestSurface()
	changes := 0
	s.OnChange = func() { changes++ }

	draw(s, Point{10, 10}, Point{60, 40})
	r, ok := s.Store().At(0)
	if !ok {
		t.Fatal("expected a rect")
	}
	if r.X != 10 || r.Y != 10 || r.Width != 50 || r.Height != 30 {
		t.Fatalf("unexpected rect %+v", r)
	}

	s.PointerDown(Point{30, 20})
	s.PointerUp(Point{30, 20})
	if err := s.SetLabel(r.ID, "7"); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Store().Get(r.ID); got.Label != "7" {
		t.Errorf("expected label 7, got %q", got.Label)
	}

	s.Delete(r.ID)
	if s.Store().Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Store().Len())
	}
	if _, ok := s.Selected(); ok {
		t.Error("expected no selection")
	}
	if changes == 0 {
		t.Error("OnChange was never called")
	}
}
