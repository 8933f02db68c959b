package ui

import (
	"LocalAnnotator/internal/applog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

var log = applog.WithComponent("ui")

// Status is the one-line message bar at the bottom of a window.
type Status struct {
	label *widget.Label
}

func NewStatus(text string) *Status {
	return &Status{label: widget.NewLabel(text)}
}

// Set replaces the message. Safe to call from any goroutine.
func (s *Status) Set(text string) {
	fyne.Do(func() { s.label.SetText(text) })
}

// Text returns the current message.
func (s *Status) Text() string { return s.label.Text }

func (s *Status) Object() fyne.CanvasObject { return s.label }
