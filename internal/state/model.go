package state

// Point is a position on the drawing surface in logical units.
type Point struct{ X, Y float32 }

// Size is the fixed extent of the drawing surface.
type Size struct{ Width, Height float32 }

// ID identifies a rectangle for its whole lifetime. IDs are handed out in
// increasing order and never reused within a session.
type ID uint64

// NoID is the zero ID, used for "no selection" and "no drag".
const NoID ID = 0

// Rect is a committed annotation region.
type Rect struct {
	ID     ID      `json:"id"`
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
	Label  string  `json:"label"`
	Note   string  `json:"note"`
}

// Patch carries the fields to merge into an existing Rect. Nil fields are
// left untouched.
type Patch struct {
	X, Y  *float32
	Label *string
	Note  *string
}

func (p Patch) apply(r *Rect) {
	if p.X != nil {
		r.X = *p.X
	}
	if p.Y != nil {
		r.Y = *p.Y
	}
	if p.Label != nil {
		r.Label = *p.Label
	}
	if p.Note != nil {
		r.Note = *p.Note
	}
}

// MoveTo builds a Patch relocating the top-left corner.
func MoveTo(x, y float32) Patch { return Patch{X: &x, Y: &y} }

// WithLabel builds a Patch replacing the label.
func WithLabel(label string) Patch { return Patch{Label: &label} }

// WithNote builds a Patch replacing the note.
func WithNote(note string) Patch { return Patch{Note: &note} }

type OpType string

const (
	OpInsertRect OpType = "insert_rect"
	OpUpdateRect OpType = "update_rect"
	OpDeleteRect OpType = "delete_rect"
	OpRestore    OpType = "restore"
)

// Op describes one mutation of the Store. Rect holds the state after the
// mutation for inserts and updates; Target is the affected ID.
type Op struct {
	Type    OpType `json:"type"`
	Rect    *Rect  `json:"rect,omitempty"`
	Target  ID     `json:"target"`
	Lamport uint64 `json:"lamport"`
	Site    string `json:"site"`
}

// Snapshot is a point-in-time copy of the Store, ordered by draw order.
type Snapshot struct {
	Site    string `json:"site"`
	Lamport uint64 `json:"lamport"`
	Rects   []Rect `json:"rects"`
}
