package ui

import (
	"fmt"
	"strings"

	"LocalAnnotator/internal/export"
	"LocalAnnotator/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// NewToolbar builds the action bar above the surface.
func NewToolbar(win fyne.Window, s *state.Surface, status *Status) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			exportPDF(win, s, status)
		}),
		widget.NewToolbarAction(theme.ContentCopyIcon(), func() {
			copySummary(win, s, status)
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			deleteSelected(s, status)
		}),
		widget.NewToolbarAction(theme.CancelIcon(), s.ClearSelection),
	)

	return container.NewHBox(
		tb,
		layout.NewSpacer(),
		widget.NewLabel(fmt.Sprintf("Canvas %.0f x %.0f", s.Size().Width, s.Size().Height)),
	)
}

func deleteSelected(s *state.Surface, status *Status) {
	if !s.DeleteSelected() {
		status.Set("Nothing selected")
		return
	}
	status.Set("Region deleted")
}

func exportPDF(win fyne.Window, s *state.Surface, status *Status) {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			log.Error("[EXPORT] save dialog", "err", err)
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		defer func() {
			if err := writer.Close(); err != nil {
				log.Warn("[EXPORT] close", "err", err)
			}
		}()

		rects := s.Store().Rects()
		if err := export.PDF(writer, rects, s.Size()); err != nil {
			log.Error("[EXPORT] pdf", "err", err)
			status.Set("Export failed")
			dialog.ShowError(err, win)
			return
		}
		log.Info("[EXPORT] pdf written", "uri", writer.URI().String(), "rects", len(rects))
		status.Set(fmt.Sprintf("Exported %d regions", len(rects)))
	}, win)
	save.SetFileName("annotations.pdf")
	save.Show()
}

func copySummary(win fyne.Window, s *state.Surface, status *Status) {
	var b strings.Builder
	rects := s.Store().Rects()
	if err := export.Summary(&b, rects); err != nil {
		status.Set("Copy failed")
		return
	}
	win.Clipboard().SetContent(b.String())
	status.Set(fmt.Sprintf("Copied %d regions", len(rects)))
}
