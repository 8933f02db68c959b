package ui

import (
	"errors"
	"image/color"
	"strconv"

	"LocalAnnotator/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	headerHeight = 36
	labelWidth   = 52
	closeSize    = 28
)

var headerColor = color.NRGBA{R: 255, G: 255, B: 255, A: 230}

// rectOverlay holds the canvas objects and interactive widgets drawn on
// top of one rect: border, header bar, ordinal, label entry and delete
// button.
type rectOverlay struct {
	id      state.ID
	border  *canvas.Rectangle
	header  *canvas.Rectangle
	ordinal *canvas.Text
	label   *widget.Entry
	close   *widget.Button
}

func newRectOverlay(s *state.Surface, id state.ID) *rectOverlay {
	o := &rectOverlay{id: id}
	o.border = canvas.NewRectangle(color.Transparent)
	o.border.StrokeWidth = borderWidth
	o.header = canvas.NewRectangle(headerColor)
	o.ordinal = canvas.NewText("", color.Black)
	o.ordinal.TextStyle = fyne.TextStyle{Bold: true}
	o.label = newLabelEntry(s, id)
	o.close = widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
		s.Delete(id)
	})
	o.close.Importance = widget.LowImportance
	return o
}

// newLabelEntry builds an entry bound to the label of id. Input that is not
// zero to two digits is reverted to the stored label.
func newLabelEntry(s *state.Surface, id state.ID) *widget.Entry {
	e := widget.NewEntry()
	e.SetPlaceHolder("00")
	e.OnChanged = func(text string) {
		current, ok := s.Store().Get(id)
		if !ok || text == current.Label {
			return
		}
		if err := s.SetLabel(id, text); errors.Is(err, state.ErrInvalidLabel) {
			e.SetText(current.Label)
		}
	}
	return e
}

func (o *rectOverlay) update(index int, r state.Rect, selected bool) {
	o.border.StrokeColor = borderColor
	if selected {
		o.border.StrokeColor = selectedColor
	}
	o.border.Move(fyne.NewPos(r.X, r.Y))
	o.border.Resize(fyne.NewSize(r.Width, r.Height))
	o.border.Refresh()

	o.header.Move(fyne.NewPos(r.X, r.Y))
	o.header.Resize(fyne.NewSize(r.Width, headerHeight))

	o.ordinal.Text = strconv.Itoa(index + 1)
	o.ordinal.Move(fyne.NewPos(r.X+6, r.Y+8))
	o.ordinal.Refresh()

	if o.label.Text != r.Label {
		o.label.SetText(r.Label)
	}
	o.label.Move(fyne.NewPos(r.X+28, r.Y+2))
	o.label.Resize(fyne.NewSize(labelWidth, headerHeight-4))

	o.close.Move(fyne.NewPos(r.X+r.Width-closeSize-4, r.Y+4))
	o.close.Resize(fyne.NewSize(closeSize, closeSize))
}

func (o *rectOverlay) objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{o.header, o.border, o.ordinal, o.label, o.close}
}
