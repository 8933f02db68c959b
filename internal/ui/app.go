package ui

import (
	"fmt"

	"LocalAnnotator/internal/config"
	"LocalAnnotator/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Host is the editing window: surface, side list, toolbar and status bar.
type Host struct {
	Surface *SurfaceWidget
	List    *ListPanel
	Status  *Status
	content fyne.CanvasObject
}

// NewHost wires the widgets for s. It takes over s.OnChange.
func NewHost(win fyne.Window, s *state.Surface, cfg config.Config, shareLink string) *Host {
	h := &Host{
		Surface: NewSurfaceWidget(s, cfg.Canvas.Grid),
		List:    NewListPanel(s),
		Status:  NewStatus("Ready"),
	}
	s.OnChange = func() {
		h.Surface.Refresh()
		h.List.Sync()
	}

	bottom := h.Status.Object()
	if shareLink != "" {
		h.Status.label.SetText("Sharing at " + shareLink)
		copyLink := widget.NewButton("Copy link", func() {
			win.Clipboard().SetContent(shareLink)
			h.Status.Set("Link copied")
		})
		bottom = container.NewBorder(nil, nil, nil, copyLink, h.Status.Object())
	}

	split := container.NewHSplit(container.NewScroll(h.Surface), h.List.Content)
	split.Offset = 0.7
	h.content = container.NewBorder(NewToolbar(win, s, h.Status), bottom, nil, nil, split)
	return h
}

func (h *Host) Content() fyne.CanvasObject { return h.content }

// RunApp opens the editing window and blocks until it is closed.
func RunApp(s *state.Surface, cfg config.Config, shareLink string) {
	a := app.NewWithID("io.localannotator")
	win := a.NewWindow("Local Annotator")
	size := s.Size()
	win.Resize(fyne.NewSize(size.Width+420, size.Height+120))

	h := NewHost(win, s, cfg, shareLink)
	win.SetContent(h.Content())
	log.Info("[UI] window open", "canvas", fmt.Sprintf("%.0fx%.0f", size.Width, size.Height))
	win.ShowAndRun()
}
