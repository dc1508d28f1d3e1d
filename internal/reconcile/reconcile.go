// Package reconcile aligns old and new arrays of units, fuels and
// emissions positionally and computes field-level diffs for subtrees where
// only before/after snapshots exist (wholly added or deleted activities,
// and whole-facility snapshot records).
//
// Positional identity is deliberate: the upstream document format carries
// no stable ids for array elements, so inserting or deleting in the middle
// of a list surfaces as a cascade of modifications at every following
// position rather than one true add or delete.
package reconcile

import (
	"sort"

	"github.com/carbonlens/ghgreview/internal/classify"
	"github.com/carbonlens/ghgreview/internal/model"
)

// FieldChange is one field-level difference inside an array element.
type FieldChange struct {
	Key        string           `json:"key"`
	OldValue   any              `json:"old_value"`
	NewValue   any              `json:"new_value"`
	ChangeType model.ChangeType `json:"change_type"`
}

// ItemDiff is the diff of one array position. Children holds the diffs of
// nested child arrays (fuels, emissions) keyed by the field name.
type ItemDiff struct {
	Index    int                   `json:"index"`
	OldItem  any                   `json:"old_item,omitempty"`
	NewItem  any                   `json:"new_item,omitempty"`
	Fields   []FieldChange         `json:"fields,omitempty"`
	Children map[string][]ItemDiff `json:"children,omitempty"`
}

// childArrays are the element fields the reconciler recurses into rather
// than diffing as opaque values.
var childArrays = map[string]bool{
	"fuels":     true,
	"emissions": true,
}

// Arrays diffs two arrays position by position. A position present on only
// one side contributes one pure added (or deleted) entry per own-field of
// that element; a position present on both sides is diffed key by key over
// the union of keys, so a key that disappeared still surfaces as deleted
// even though the item as a whole reads as modified. Unchanged fields are
// omitted. The result is empty when both arrays are empty.
func Arrays(oldArr, newArr []any) []ItemDiff {
	n := len(oldArr)
	if len(newArr) > n {
		n = len(newArr)
	}

	diffs := make([]ItemDiff, 0, n)
	for i := 0; i < n; i++ {
		var oldItem, newItem any
		if i < len(oldArr) {
			oldItem = oldArr[i]
		}
		if i < len(newArr) {
			newItem = newArr[i]
		}

		d := diffItem(i, oldItem, newItem)
		if len(d.Fields) > 0 || len(d.Children) > 0 {
			diffs = append(diffs, d)
		}
	}
	return diffs
}

func diffItem(index int, oldItem, newItem any) ItemDiff {
	d := ItemDiff{Index: index, OldItem: oldItem, NewItem: newItem}

	oldMap, _ := oldItem.(map[string]any)
	newMap, _ := newItem.(map[string]any)

	for _, key := range unionKeys(oldMap, newMap) {
		oldV := oldMap[key]
		newV := newMap[key]

		if childArrays[key] {
			oldChild, _ := oldV.([]any)
			newChild, _ := newV.([]any)
			child := Arrays(oldChild, newChild)
			if len(child) > 0 {
				if d.Children == nil {
					d.Children = make(map[string][]ItemDiff)
				}
				d.Children[key] = child
			}
			continue
		}

		ct := classify.Classify(oldV, newV)
		if ct == model.ChangeUnchanged {
			continue
		}
		d.Fields = append(d.Fields, FieldChange{
			Key:        key,
			OldValue:   oldV,
			NewValue:   newV,
			ChangeType: ct,
		})
	}
	return d
}

// unionKeys returns the sorted union of both maps' keys. Sorting keeps the
// reconciled output stable across runs, which the audit contract requires.
func unionKeys(a, b map[string]any) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
