package export

import (
	"fmt"
	"io"
	"strings"

	"LocalAnnotator/internal/state"
)

// Summary writes a plain-text listing of rects in draw order.
func Summary(w io.Writer, rects []state.Rect) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Annotations: %d\n", len(rects))
	for i, r := range rects {
		label := "-"
		if n, ok := state.LabelValue(r.Label); ok {
			label = fmt.Sprintf("%02d", n)
		}
		fmt.Fprintf(&b, "%d. [%s] (%.0f, %.0f) %.0fx%.0f", i+1, label, r.X, r.Y, r.Width, r.Height)
		if note := strings.TrimSpace(r.Note); note != "" {
			fmt.Fprintf(&b, " %s", strings.ReplaceAll(note, "\n", " "))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
