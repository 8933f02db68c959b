package state

// Normalize builds the rectangle spanned by two corner points, whatever
// their relative order.
func Normalize(a, b Point) Rect {
	r := Rect{X: a.X, Y: a.Y, Width: b.X - a.X, Height: b.Y - a.Y}
	if b.X < a.X {
		r.X = b.X
		r.Width = a.X - b.X
	}
	if b.Y < a.Y {
		r.Y = b.Y
		r.Height = a.Y - b.Y
	}
	return r
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Clamp pins p inside a surface of size s.
func (s Size) Clamp(p Point) Point {
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if s.Width > 0 && p.X > s.Width {
		p.X = s.Width
	}
	if s.Height > 0 && p.Y > s.Height {
		p.Y = s.Height
	}
	return p
}
