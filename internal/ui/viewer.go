package ui

import (
	"context"
	"fmt"
	"strconv"

	"LocalAnnotator/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Viewer is a read-only mirror of a host's side list. Snapshots are
// restored into a local Store; the Surface only tracks the selected row.
type Viewer struct {
	surface *state.Surface
	rects   []state.Rect
	list    *widget.List
	Status  *Status
}

func NewViewer() *Viewer {
	// the mirror never draws, so the surface has no extent
	v := &Viewer{
		surface: state.NewSurface(state.NewStore(), state.Size{}),
		Status:  NewStatus("Connecting..."),
	}
	v.list = widget.NewList(
		func() int { return len(v.rects) },
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewLabelWithStyle("00", fyne.TextAlignTrailing, fyne.TextStyle{Bold: true}),
				widget.NewLabel("[--]"),
				widget.NewLabel("note"),
			)
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= len(v.rects) {
				return
			}
			r := v.rects[i]
			row := o.(*fyne.Container).Objects
			row[0].(*widget.Label).SetText(strconv.Itoa(i + 1))
			row[1].(*widget.Label).SetText("[" + displayLabel(r.Label) + "]")
			row[2].(*widget.Label).SetText(r.Note)
		},
	)
	v.list.OnSelected = func(i widget.ListItemID) {
		if i < len(v.rects) {
			v.surface.Select(v.rects[i].ID)
		}
	}
	v.list.OnUnselected = func(widget.ListItemID) { v.surface.ClearSelection() }
	return v
}

func displayLabel(label string) string {
	if label == "" {
		return "--"
	}
	return label
}

// Apply shows snap. Call on the UI goroutine.
func (v *Viewer) Apply(snap state.Snapshot) {
	store := v.surface.Store()
	store.Restore(snap)
	v.rects = store.Rects()

	// the selection follows its rect by ID and is lost if the host deleted it
	if id, ok := v.surface.Selected(); ok {
		v.list.Select(store.IndexOf(id))
	} else {
		v.list.UnselectAll()
	}
	v.list.Refresh()
	v.Status.label.SetText(fmt.Sprintf("%d regions", len(v.rects)))
}

// Selected returns the mirrored rect picked in the list.
func (v *Viewer) Selected() (state.Rect, bool) {
	id, ok := v.surface.Selected()
	if !ok {
		return state.Rect{}, false
	}
	return v.surface.Store().Get(id)
}

// Len returns the number of mirrored rects.
func (v *Viewer) Len() int { return len(v.rects) }

func (v *Viewer) Content() fyne.CanvasObject {
	return container.NewBorder(nil, v.Status.Object(), nil, nil, v.list)
}

// WatchFunc streams snapshots until ctx is done.
type WatchFunc func(ctx context.Context, onSnapshot func(state.Snapshot)) error

// RunViewer opens a mirror window fed by watch and blocks until it closes.
func RunViewer(title string, watch WatchFunc) {
	a := app.NewWithID("io.localannotator.viewer")
	win := a.NewWindow(title)
	win.Resize(fyne.NewSize(420, 520))

	v := NewViewer()
	win.SetContent(v.Content())

	ctx, cancel := context.WithCancel(context.Background())
	win.SetOnClosed(cancel)
	go func() {
		err := watch(ctx, func(snap state.Snapshot) {
			fyne.Do(func() { v.Apply(snap) })
		})
		if err != nil && ctx.Err() == nil {
			log.Warn("[VIEWER] stopped", "err", err)
			v.Status.Set(err.Error())
		}
	}()
	win.ShowAndRun()
	cancel()
}
