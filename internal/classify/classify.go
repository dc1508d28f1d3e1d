// Package classify decides how a single (old, new) value pair changed and
// derives whole-subtree added/deleted status for structural nodes.
package classify

import (
	"github.com/carbonlens/ghgreview/internal/model"
)

// Classify returns exactly one of added, deleted, modified or unchanged for
// an (old, new) pair. It never inspects field names; a type mismatch between
// the two sides (object vs scalar) is just a modification.
func Classify(oldValue, newValue any) model.ChangeType {
	switch {
	case DeepEqual(oldValue, newValue):
		return model.ChangeUnchanged
	case oldValue == nil && newValue != nil:
		return model.ChangeAdded
	case oldValue != nil && newValue == nil:
		return model.ChangeDeleted
	default:
		return model.ChangeModified
	}
}

// DeepEqual compares two decoded JSON values structurally. Numbers compare
// by value regardless of Go type, so records built in tests with ints agree
// with records decoded from JSON as float64.
func DeepEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if an, aok := asFloat(a); aok {
		bn, bok := asFloat(b)
		return bok && an == bn
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, ok := bv[k]
			if !ok || !DeepEqual(v, bvv) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !DeepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// WhollyAdded reports whether every field under a structural node is a pure
// addition. A node with zero fields is never wholly added: with nothing to
// inspect the status is ambiguous, so the node falls through to its
// composite classification instead.
func WhollyAdded(fields []model.ChangeRecord) bool {
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if f.OldValue != nil {
			return false
		}
	}
	return true
}

// WhollyDeleted is the symmetric check: every field has a nil new value.
func WhollyDeleted(fields []model.ChangeRecord) bool {
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if f.NewValue != nil {
			return false
		}
	}
	return true
}

// NodeStatus resolves a structural node's own change type from its direct
// fields: wholly added, wholly deleted, or modified. Zero-field nodes
// report modified so that a node which only exists because deeper children
// changed still reads as a modification.
func NodeStatus(fields []model.ChangeRecord) model.ChangeType {
	switch {
	case WhollyAdded(fields):
		return model.ChangeAdded
	case WhollyDeleted(fields):
		return model.ChangeDeleted
	default:
		return model.ChangeModified
	}
}
