package render

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// markerDiff renders a character-level diff of two strings in a compact
// inline form: deletions wrapped in [-...-], insertions in {+...+}. Used
// for long free-text fields (methodology descriptions, comments) where
// showing the full old and new values side by side is unreadable.
func markerDiff(oldS, newS string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldS, newS, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-")
			b.WriteString(d.Text)
			b.WriteString("-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+")
			b.WriteString(d.Text)
			b.WriteString("+}")
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
