// Package render turns the organizer's reconciled structures into ordered
// display trees. Renderers are pure: same input, same tree. They differ
// only in their label dictionary and in which sub-structure they expect;
// the cross-cutting ordering and suppression rules live here once.
package render

import (
	"sort"
	"strings"

	"github.com/carbonlens/ghgreview/internal/classify"
	"github.com/carbonlens/ghgreview/internal/model"
)

// Config is the injected, immutable per-renderer configuration. Tests
// substitute label tables without touching renderer logic.
type Config struct {
	// Title is the section heading.
	Title string

	// Labels maps field keys to display labels. Unknown keys fall back to
	// a prettified form of the key itself.
	Labels map[string]string

	// RowLabel prefixes indexed rows of flat sections ("Product",
	// "Record"). Empty means the section is not row-indexed.
	RowLabel string

	// DecimalPlaces enables normalized-decimal comparison for display
	// de-noising when > 0. Renderer-local on purpose: allocation and
	// compliance sections compare at 4 places, others compare raw.
	DecimalPlaces int

	// SuppressZero drops entries whose old and new values are both
	// numerically zero (untouched zero-valued product rows).
	SuppressZero bool

	// TextDiffMinLen enables inline text diffs for modified string fields
	// at least this long. Zero disables text diffs.
	TextDiffMinLen int
}

// Label resolves a field key to its display label.
func (c Config) Label(key string) string {
	if l, ok := c.Labels[key]; ok {
		return l
	}
	return prettifyKey(key)
}

func prettifyKey(key string) string {
	if key == "" {
		return ""
	}
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// leafNode builds one display entry for a field-level change, or reports
// false when the entry is suppressed.
func leafNode(cfg Config, label string, oldV, newV any) (model.RenderNode, bool) {
	ct := classify.Classify(oldV, newV)
	if ct == model.ChangeUnchanged {
		return model.RenderNode{}, false
	}

	if cfg.DecimalPlaces > 0 {
		// Representation-only differences ("0.0" vs "0") are display
		// noise, not changes; the underlying classification is unaffected.
		if ct == model.ChangeModified && classify.SameDecimal(oldV, newV, cfg.DecimalPlaces) {
			return model.RenderNode{}, false
		}
		if cfg.SuppressZero && classify.IsZero(oldV, cfg.DecimalPlaces) && classify.IsZero(newV, cfg.DecimalPlaces) {
			return model.RenderNode{}, false
		}
	}

	n := model.RenderNode{
		Title:    label,
		Status:   ct,
		OldValue: oldV,
		NewValue: newV,
	}
	if cfg.TextDiffMinLen > 0 && ct == model.ChangeModified {
		oldS, okOld := oldV.(string)
		newS, okNew := newV.(string)
		if okOld && okNew && (len(oldS) >= cfg.TextDiffMinLen || len(newS) >= cfg.TextDiffMinLen) {
			n.TextDiff = markerDiff(oldS, newS)
		}
	}
	return n, true
}

// fieldNodes renders a node's own field records in encounter order.
func fieldNodes(cfg Config, fields []model.ChangeRecord, label func(model.ChangeRecord) string) []model.RenderNode {
	out := make([]model.RenderNode, 0, len(fields))
	for _, f := range fields {
		n, ok := leafNode(cfg, label(f), f.OldValue, f.NewValue)
		if !ok {
			continue
		}
		out = append(out, n)
	}
	return out
}

// sortEmissionsLast reorders keys so that any key containing "emissions"
// (case-insensitive) sorts after all others, preserving encounter order
// within each partition.
func sortEmissionsLast(keys []string) []string {
	front := make([]string, 0, len(keys))
	back := make([]string, 0)
	for _, k := range keys {
		if strings.Contains(strings.ToLower(k), "emissions") {
			back = append(back, k)
		} else {
			front = append(front, k)
		}
	}
	return append(front, back...)
}

// sortedIndices returns the map's indices in ascending order.
func sortedIndices[T any](m map[int]T) []int {
	out := make([]int, 0, len(m))
	for i := range m {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
