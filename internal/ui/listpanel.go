package ui

import (
	"strconv"

	"LocalAnnotator/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// listRow mirrors one rect in the side panel.
type listRow struct {
	ordinal *widget.Button
	label   *widget.Entry
	note    *widget.Entry
	remove  *widget.Button
	box     *fyne.Container
}

func newListRow(s *state.Surface, id state.ID) *listRow {
	row := &listRow{}
	row.ordinal = widget.NewButton("", func() { s.Select(id) })
	row.label = newLabelEntry(s, id)
	row.note = widget.NewEntry()
	row.note.SetPlaceHolder("Note")
	row.note.OnChanged = func(text string) {
		if current, ok := s.Store().Get(id); ok && current.Note != text {
			s.SetNote(id, text)
		}
	}
	row.remove = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() { s.Delete(id) })
	row.remove.Importance = widget.LowImportance

	left := container.NewHBox(row.ordinal,
		container.New(layout.NewGridWrapLayout(fyne.NewSize(labelWidth, row.label.MinSize().Height)), row.label))
	row.box = container.NewBorder(nil, nil, left, row.remove, row.note)
	return row
}

func (row *listRow) update(index int, r state.Rect, selected bool) {
	text := strconv.Itoa(index + 1)
	importance := widget.MediumImportance
	if selected {
		importance = widget.HighImportance
	}
	if row.ordinal.Text != text || row.ordinal.Importance != importance {
		row.ordinal.Text = text
		row.ordinal.Importance = importance
		row.ordinal.Refresh()
	}
	if row.label.Text != r.Label {
		row.label.SetText(r.Label)
	}
	if row.note.Text != r.Note {
		row.note.SetText(r.Note)
	}
}

// ListPanel is the side list: one row per rect, in draw order.
type ListPanel struct {
	surface *state.Surface
	rows    map[state.ID]*listRow
	box     *fyne.Container
	empty   *widget.Label
	Content fyne.CanvasObject
}

// NewListPanel builds the side list for s. Call Sync after every change.
func NewListPanel(s *state.Surface) *ListPanel {
	p := &ListPanel{
		surface: s,
		rows:    make(map[state.ID]*listRow),
		box:     container.NewVBox(),
		empty:   widget.NewLabel("Drag on the canvas to add a region."),
	}
	p.Content = container.NewBorder(
		widget.NewLabelWithStyle("Regions", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		container.NewVScroll(p.box),
	)
	p.Sync()
	return p
}

// Rows returns the number of rows shown.
func (p *ListPanel) Rows() int { return len(p.rows) }

// Sync rebuilds row order from the Store, reusing rows by ID.
func (p *ListPanel) Sync() {
	rects := p.surface.Store().Rects()
	objects := make([]fyne.CanvasObject, 0, len(rects))
	alive := make(map[state.ID]bool, len(rects))
	for i, r := range rects {
		alive[r.ID] = true
		row, ok := p.rows[r.ID]
		if !ok {
			row = newListRow(p.surface, r.ID)
			p.rows[r.ID] = row
		}
		row.update(i, r, p.surface.IsSelected(r.ID))
		objects = append(objects, row.box)
	}
	for id := range p.rows {
		if !alive[id] {
			delete(p.rows, id)
		}
	}
	if len(objects) == 0 {
		objects = append(objects, p.empty)
	}
	p.box.Objects = objects
	p.box.Refresh()
}
