package ui

import (
	"image/color"

	"LocalAnnotator/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

var (
	surfaceBackground = color.White
	surfaceEdge       = color.NRGBA{R: 160, G: 160, B: 160, A: 255}
	gridColor         = color.NRGBA{R: 220, G: 220, B: 220, A: 120}
	borderColor       = color.Black
	selectedColor     = color.NRGBA{R: 255, G: 210, B: 0, A: 255}
	draftColor        = color.NRGBA{R: 30, G: 110, B: 220, A: 200}
	ghostColor        = color.NRGBA{R: 30, G: 110, B: 220, A: 110}
)

const borderWidth = 2

// SurfaceWidget draws the annotation surface and feeds pointer and key
// events to a state.Surface. Everything it shows is derived from the
// Surface on each refresh.
type SurfaceWidget struct {
	widget.BaseWidget
	surface *state.Surface
	grid    float32

	// last pointer position of the current press, for DragEnd without MouseUp
	lastPos fyne.Position
	pressed bool
}

var _ fyne.Widget = (*SurfaceWidget)(nil)
var _ fyne.Draggable = (*SurfaceWidget)(nil)
var _ fyne.Focusable = (*SurfaceWidget)(nil)
var _ desktop.Mouseable = (*SurfaceWidget)(nil)

// NewSurfaceWidget wraps s. grid is the guide-line spacing; 0 hides it.
func NewSurfaceWidget(s *state.Surface, grid float32) *SurfaceWidget {
	w := &SurfaceWidget{surface: s, grid: grid}
	w.ExtendBaseWidget(w)
	return w
}

func toPoint(p fyne.Position) state.Point { return state.Point{X: p.X, Y: p.Y} }

func (w *SurfaceWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	if app := fyne.CurrentApp(); app != nil {
		if c := app.Driver().CanvasForObject(w); c != nil {
			c.Focus(w)
		}
	}
	w.pressed = true
	w.lastPos = e.Position
	w.surface.PointerDown(toPoint(e.Position))
}

func (w *SurfaceWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || !w.pressed {
		return
	}
	w.pressed = false
	w.surface.PointerUp(toPoint(e.Position))
}

func (w *SurfaceWidget) Dragged(e *fyne.DragEvent) {
	if !w.pressed {
		return
	}
	w.lastPos = e.Position
	w.surface.PointerMove(toPoint(e.Position))
}

// DragEnd covers drivers that end a drag without a matching MouseUp.
func (w *SurfaceWidget) DragEnd() {
	if !w.pressed {
		return
	}
	w.pressed = false
	w.surface.PointerUp(toPoint(w.lastPos))
}

func (w *SurfaceWidget) FocusGained()   {}
func (w *SurfaceWidget) FocusLost()     {}
func (w *SurfaceWidget) TypedRune(rune) {}

func (w *SurfaceWidget) TypedKey(e *fyne.KeyEvent) {
	switch e.Name {
	case fyne.KeyDelete, fyne.KeyBackspace:
		w.surface.DeleteSelected()
	case fyne.KeyEscape:
		w.surface.ClearSelection()
	}
}

func (w *SurfaceWidget) MinSize() fyne.Size {
	size := w.surface.Size()
	return fyne.NewSize(size.Width, size.Height)
}

func (w *SurfaceWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &surfaceRenderer{
		w:        w,
		overlays: make(map[state.ID]*rectOverlay),
	}
	r.background = canvas.NewRectangle(surfaceBackground)
	r.background.StrokeColor = surfaceEdge
	r.background.StrokeWidth = 1
	r.draft = canvas.NewRectangle(color.Transparent)
	r.draft.StrokeColor = draftColor
	r.draft.StrokeWidth = 1
	r.ghost = canvas.NewRectangle(color.Transparent)
	r.ghost.StrokeColor = ghostColor
	r.ghost.StrokeWidth = borderWidth
	r.grid = r.createGrid()
	r.Refresh()
	return r
}

type surfaceRenderer struct {
	w          *SurfaceWidget
	background *canvas.Rectangle
	grid       []fyne.CanvasObject
	draft      *canvas.Rectangle
	ghost      *canvas.Rectangle
	overlays   map[state.ID]*rectOverlay
	objects    []fyne.CanvasObject
}

func (r *surfaceRenderer) createGrid() []fyne.CanvasObject {
	step := r.w.grid
	if step <= 0 {
		return nil
	}
	size := r.w.surface.Size()
	var lines []fyne.CanvasObject
	for x := step; x < size.Width; x += step {
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(x, 0)
		line.Position2 = fyne.NewPos(x, size.Height)
		line.StrokeWidth = 0.5
		lines = append(lines, line)
	}
	for y := step; y < size.Height; y += step {
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(0, y)
		line.Position2 = fyne.NewPos(size.Width, y)
		line.StrokeWidth = 0.5
		lines = append(lines, line)
	}
	return lines
}

func (r *surfaceRenderer) Layout(fyne.Size) {
	size := r.w.surface.Size()
	r.background.Move(fyne.NewPos(0, 0))
	r.background.Resize(fyne.NewSize(size.Width, size.Height))
}

func (r *surfaceRenderer) MinSize() fyne.Size { return r.w.MinSize() }

func (r *surfaceRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *surfaceRenderer) Destroy() {}

// Refresh rebuilds the object list from the Surface. Border colour comes
// from the selection only; overlays are reused per ID so entries keep
// focus and cursor across refreshes.
func (r *surfaceRenderer) Refresh() {
	s := r.w.surface
	rects := s.Store().Rects()

	objects := make([]fyne.CanvasObject, 0, 2+len(r.grid)+len(rects)*5)
	objects = append(objects, r.background)
	objects = append(objects, r.grid...)

	alive := make(map[state.ID]bool, len(rects))
	for i, rect := range rects {
		alive[rect.ID] = true
		o, ok := r.overlays[rect.ID]
		if !ok {
			o = newRectOverlay(s, rect.ID)
			r.overlays[rect.ID] = o
		}
		o.update(i, rect, s.IsSelected(rect.ID))
		objects = append(objects, o.objects()...)
	}
	for id := range r.overlays {
		if !alive[id] {
			delete(r.overlays, id)
		}
	}

	if d, ok := s.Draft(); ok {
		r.draft.Move(fyne.NewPos(d.X, d.Y))
		r.draft.Resize(fyne.NewSize(d.Width, d.Height))
		objects = append(objects, r.draft)
	}
	if id, at, ok := s.Dragging(); ok {
		if rect, found := s.Store().Get(id); found {
			r.ghost.Move(fyne.NewPos(at.X-rect.Width/2, at.Y-rect.Height/2))
			r.ghost.Resize(fyne.NewSize(rect.Width, rect.Height))
			objects = append(objects, r.ghost)
		}
	}

	r.objects = objects
	r.Layout(r.w.Size())
	canvas.Refresh(r.w)
}
