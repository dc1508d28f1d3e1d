package classify

import (
	"testing"

	"github.com/carbonlens/ghgreview/internal/model"
)

func TestClassify_Totality(t *testing.T) {
	cases := []struct {
		name string
		oldV any
		newV any
		want model.ChangeType
	}{
		{"both nil", nil, nil, model.ChangeUnchanged},
		{"equal scalars", 5, 5, model.ChangeUnchanged},
		{"equal across numeric types", 5, 5.0, model.ChangeUnchanged},
		{"added", nil, "x", model.ChangeAdded},
		{"deleted", "x", nil, model.ChangeDeleted},
		{"modified scalar", "a", "b", model.ChangeModified},
		{"type mismatch object vs scalar", map[string]any{"a": 1}, "a", model.ChangeModified},
		{"equal nested", map[string]any{"a": []any{1, 2}}, map[string]any{"a": []any{1.0, 2.0}}, model.ChangeUnchanged},
		{"nested modified", map[string]any{"a": 1}, map[string]any{"a": 2}, model.ChangeModified},
	}
	for _, tc := range cases {
		if got := Classify(tc.oldV, tc.newV); got != tc.want {
			t.Errorf("%s: Classify = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDeepEqual_UnchangedIffEqual(t *testing.T) {
	a := map[string]any{"gas_type": "CO2", "emission": 10.0}
	b := map[string]any{"gas_type": "CO2", "emission": 10}
	if !DeepEqual(a, b) {
		t.Error("expected deep equality across int/float representations")
	}
	if Classify(a, b) != model.ChangeUnchanged {
		t.Error("expected unchanged for deep-equal values")
	}
	b["emission"] = 11
	if DeepEqual(a, b) {
		t.Error("expected inequality after mutation")
	}
}

func TestWhollySubtree(t *testing.T) {
	added := []model.ChangeRecord{
		{Field: "f1", NewValue: "a"},
		{Field: "f2", NewValue: 2},
	}
	if !WhollyAdded(added) {
		t.Error("expected wholly added")
	}
	if WhollyDeleted(added) {
		t.Error("did not expect wholly deleted")
	}

	mixed := []model.ChangeRecord{
		{Field: "f1", NewValue: "a"},
		{Field: "f2", OldValue: 1, NewValue: 2},
	}
	if WhollyAdded(mixed) {
		t.Error("a mixed field list is not wholly added")
	}

	// A node with zero fields is ambiguous and counts as neither.
	if WhollyAdded(nil) || WhollyDeleted(nil) {
		t.Error("zero-field node must be neither wholly added nor wholly deleted")
	}
	if got := NodeStatus(nil); got != model.ChangeModified {
		t.Errorf("NodeStatus(nil) = %q, want modified", got)
	}
}

func TestNormalizeDecimal(t *testing.T) {
	cases := []struct {
		v      any
		places int
		want   string
		ok     bool
	}{
		{"12.3400", 4, "12.3400", true},
		{12.34, 4, "12.3400", true},
		{"0.0", 4, "0.0000", true},
		{"0", 0, "0", true},
		{"not a number", 4, "", false},
		{map[string]any{}, 4, "", false},
		{nil, 4, "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeDecimal(tc.v, tc.places)
		if ok != tc.ok || got != tc.want {
			t.Errorf("NormalizeDecimal(%v, %d) = (%q, %v), want (%q, %v)", tc.v, tc.places, got, ok, tc.want, tc.ok)
		}
	}

	if !SameDecimal("12.3400", "12.34", 4) {
		t.Error("expected 12.3400 and 12.34 to be decimal-equal at 4 places")
	}
	if SameDecimal("0", "5.2", 4) {
		t.Error("0 and 5.2 must not be decimal-equal")
	}
	if !IsZero("0.0000", 4) || !IsZero("0", 4) || IsZero("5.2", 4) {
		t.Error("IsZero misclassified a value")
	}
}
