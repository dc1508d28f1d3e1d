package render

import (
	"fmt"

	"github.com/carbonlens/ghgreview/internal/fieldpath"
	"github.com/carbonlens/ghgreview/internal/model"
)

// FlatRenderer renders the flat, section-tagged record lists (emission
// summary, production data, allocation, non-attributable emissions, and
// the top-level operation sections). Row-indexed sections group entries
// under one node per row.
type FlatRenderer struct {
	cfg Config
}

func NewFlatRenderer(cfg Config) *FlatRenderer {
	return &FlatRenderer{cfg: cfg}
}

// Render produces one node per row (for row-indexed sections) or a flat
// list of leaf entries, preserving encounter order. Sections with nothing
// to show return an empty slice and stay invisible in the final output.
func (r *FlatRenderer) Render(records []model.ChangeRecord) []model.RenderNode {
	if r.cfg.RowLabel == "" {
		return fieldNodes(r.cfg, records, r.recordLabel)
	}

	// Group by the row index embedded in the path, keeping first-seen row
	// order.
	type row struct {
		index int
		recs  []model.ChangeRecord
	}
	var rows []*row
	byIndex := make(map[int]*row)
	for _, rec := range records {
		idx := fieldpath.TrailingIndex(rec.Field)
		g, ok := byIndex[idx]
		if !ok {
			g = &row{index: idx}
			byIndex[idx] = g
			rows = append(rows, g)
		}
		g.recs = append(g.recs, rec)
	}

	out := make([]model.RenderNode, 0, len(rows))
	for _, g := range rows {
		children := fieldNodes(r.cfg, g.recs, r.recordLabel)
		if len(children) == 0 {
			continue
		}
		title := r.cfg.RowLabel
		if g.index != fieldpath.NoIndex {
			title = fmt.Sprintf("%s %d", r.cfg.RowLabel, g.index+1)
		}
		out = append(out, model.RenderNode{Title: title, Children: children})
	}
	return out
}

func (r *FlatRenderer) recordLabel(rec model.ChangeRecord) string {
	return r.cfg.Label(fieldKeyOf(rec))
}

// fieldKeyOf extracts the terminal field key of a record's path, falling
// back to the raw path when it does not parse as a facility path.
func fieldKeyOf(rec model.ChangeRecord) string {
	if pp := fieldpath.Parse(rec.Field); pp != nil && pp.FieldKey != "" {
		return pp.FieldKey
	}
	return lastBracketKey(rec.Field)
}

// lastBracketKey returns the last quoted bracket segment of a path, for
// records outside facility_reports (top-level operation sections).
func lastBracketKey(path string) string {
	end := -1
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == ']' && i >= 1 && path[i-1] == '\'' {
			end = i - 1
			break
		}
	}
	if end <= 0 {
		return path
	}
	start := end - 1
	for start >= 0 && path[start] != '\'' {
		start--
	}
	if start < 0 {
		return path
	}
	return path[start+1 : end]
}
