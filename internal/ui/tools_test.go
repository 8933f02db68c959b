package ui

import (
	"testing"

	"LocalAnnotator/internal/state"

	"fyne.io/fyne/v2/test"
)

func TestDeleteSelectedReportsStatus(t *testing.T) {
	test.NewTempApp(t)
	s := state.NewSurface(state.NewStore(), state.Size{Width: 800, Height: 500})
	status := NewStatus("Ready")

	deleteSelected(s, status)
	if got := status.Text(); got != "Nothing selected" {
		t.Errorf("expected %q, got %q", "Nothing selected", got)
	}

	r := s.Store().Append(state.Rect{Width: 10, Height: 10})
	s.Select(r.ID)
	deleteSelected(s, status)
	if s.Store().Len() != 0 {
		t.Fatalf("expected empty store, got %d", s.Store().Len())
	}
	if got := status.Text(); got != "Region deleted" {
		t.Errorf("expected %q, got %q", "Region deleted", got)
	}
}
