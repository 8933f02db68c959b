package export

import (
	"bytes"
	"strings"
	"testing"

	"LocalAnnotator/internal/state"
)

func sampleRects() []state.Rect {
	return []state.Rect{
		{ID: 1, X: 10, Y: 10, Width: 50, Height: 30, Label: "7", Note: "door"},
		{ID: 2, X: 100, Y: 200, Width: 40, Height: 40},
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := Summary(&buf, sampleRects()); err != nil {
		t.Fatal(err)
	}
	want := "Annotations: 2\n" +
		"1. [07] (10, 10) 50x30 door\n" +
		"2. [-] (100, 200) 40x40\n"
	if buf.String() != want {
		t.Errorf("unexpected summary:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestSummaryFlattensMultilineNotes(t *testing.T) {
	var buf bytes.Buffer
	rects := []state.Rect{{Width: 1, Height: 1, Note: "a\nb"}}
	if err := Summary(&buf, rects); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), " a b\n") {
		t.Errorf("note should stay on one line: %q", buf.String())
	}
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, sampleRects(), state.Size{Width: 800, Height: 500}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestPDFEmptySet(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, nil, state.Size{Width: 800, Height: 500}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("expected a one-page document")
	}
}

func TestPDFRejectsBadSurface(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, sampleRects(), state.Size{}); err == nil {
		t.Error("expected an error for a zero-size surface")
	}
}
