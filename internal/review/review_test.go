package review

import (
	"testing"

	"github.com/carbonlens/ghgreview/internal/model"
)

func findSection(t *testing.T, tree *model.RenderTree, title string) *model.RenderNode {
	t.Helper()
	for i := range tree.Sections {
		if tree.Sections[i].Title == title {
			return &tree.Sections[i]
		}
	}
	return nil
}

func TestReview_EmptyInput(t *testing.T) {
	e := NewEngine(nil)
	tree := e.Review(nil, Options{})
	if len(tree.Sections) != 1 || tree.Sections[0].Title != "No changes detected" {
		t.Fatalf("empty input must render the no-changes marker, got %+v", tree.Sections)
	}
}

func TestReview_NoiseOnlyInputRendersNoChanges(t *testing.T) {
	e := NewEngine(nil)
	tree := e.Review([]model.ChangeRecord{
		{Field: "root['updated_at']", OldValue: "2026-01-01", NewValue: "2026-02-01"},
		{Field: "root['report_operation']['updated_by']", OldValue: "a", NewValue: "b"},
	}, Options{})
	if len(tree.Sections) != 1 || tree.Sections[0].Title != "No changes detected" {
		t.Fatalf("noise-only input must render the no-changes marker, got %+v", tree.Sections)
	}
}

func TestReview_WholeActivityAddedScenario(t *testing.T) {
	e := NewEngine(nil)
	records := []model.ChangeRecord{{
		Field:    "root['facility_reports']['Plant A']['activity_data']['Flaring']",
		OldValue: nil,
		NewValue: map[string]any{
			"source_types": map[string]any{
				"Flare A": map[string]any{
					"emissions": []any{map[string]any{"gas_type": "CO2", "emission": 10.0}},
				},
			},
		},
		ChangeType: model.ChangeAdded,
	}}

	tree := e.Review(records, Options{})
	fac := findSection(t, tree, "Facility Reports")
	if fac == nil {
		t.Fatal("missing Facility Reports section")
	}
	if len(fac.Children) != 1 || fac.Children[0].Title != "Plant A" {
		t.Fatalf("expected one facility Plant A, got %+v", fac.Children)
	}

	plantA := fac.Children[0]
	if len(plantA.Children) != 1 || plantA.Children[0].Title != "Activity Data" {
		t.Fatalf("expected an Activity Data group, got %+v", plantA.Children)
	}
	acts := plantA.Children[0].Children
	if len(acts) != 1 || acts[0].Title != "Flaring" {
		t.Fatalf("expected activity Flaring, got %+v", acts)
	}
	if acts[0].Status != model.ChangeAdded {
		t.Errorf("activity status = %q, want added", acts[0].Status)
	}

	sts := acts[0].Children
	if len(sts) != 1 || sts[0].Title != "Flare A" {
		t.Fatalf("expected synthesized source type Flare A, got %+v", sts)
	}
	if sts[0].Status != model.ChangeAdded {
		t.Errorf("source type status = %q, want added", sts[0].Status)
	}

	ems := sts[0].Children
	if len(ems) != 1 || ems[0].Title != "Emission 1" {
		t.Fatalf("expected Emission 1 node, got %+v", ems)
	}
	if ems[0].Status != model.ChangeAdded || len(ems[0].Children) != 2 {
		t.Fatalf("emission node = %+v, want added with gas_type and emission fields", ems[0])
	}
	for _, leaf := range ems[0].Children {
		if leaf.Status != model.ChangeAdded {
			t.Errorf("leaf %q status = %q, want added", leaf.Title, leaf.Status)
		}
	}
}

func TestReview_UnchangedRecordExcludedEverywhere(t *testing.T) {
	e := NewEngine(nil)
	records := []model.ChangeRecord{
		{Field: "root['facility_reports']['Plant A']['emission_summary']['attributable_for_reporting']", OldValue: 5, NewValue: 5},
		{Field: "root['report_operation']['operator_legal_name']", OldValue: "Acme", NewValue: "Acme"},
	}
	tree := e.Review(records, Options{})
	if len(tree.Sections) != 1 || tree.Sections[0].Title != "No changes detected" {
		t.Fatalf("unchanged records must be excluded from every section, got %+v", tree.Sections)
	}
}

func TestReview_SectionOrderAndGating(t *testing.T) {
	records := []model.ChangeRecord{
		{Field: "root['report_compliance_summary']['products'][0]['excess_emissions']", OldValue: "1", NewValue: "2"},
		{Field: "root['report_new_entrant'][0]['assertion_statement']", OldValue: nil, NewValue: true},
		{Field: "root['report_operation']['operator_legal_name']", OldValue: "Acme", NewValue: "Acme Corp"},
		{Field: "root['report_electricity_import_data'][0]['import_specified_electricity']", OldValue: "1", NewValue: "5"},
	}

	e := NewEngine(nil)

	// New-entrant purpose: new entrant visible, electricity import not.
	tree := e.Review(records, Options{RegistrationPurpose: model.PurposeNewEntrant})
	var titles []string
	for _, s := range tree.Sections {
		titles = append(titles, s.Title)
	}
	want := []string{"Operation Information", "New Entrant Information", "Compliance Summary"}
	if len(titles) != len(want) {
		t.Fatalf("sections = %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("sections = %v, want %v (fixed presentation order)", titles, want)
		}
	}

	// Reporting-only purpose: compliance summary hidden.
	tree = e.Review(records, Options{RegistrationPurpose: model.PurposeReporting})
	if findSection(t, tree, "Compliance Summary") != nil {
		t.Error("compliance summary must be hidden for reporting-only operations")
	}

	// Electricity import purpose: import data visible.
	tree = e.Review(records, Options{RegistrationPurpose: model.PurposeElectricityImport})
	if findSection(t, tree, "Electricity Import Data") == nil {
		t.Error("electricity import section missing for electricity import operation")
	}
}

func TestReview_FacilitySnapshotDerivedPasses(t *testing.T) {
	// One raw facility-modified record encoding an added activity, a
	// removed activity, and a modified source type at once.
	oldSnap := map[string]any{
		"activity_data": map[string]any{
			"Combustion": map[string]any{
				"source_types": map[string]any{
					"Boilers": map[string]any{
						"units": []any{map[string]any{"unit_name": "B1", "annual_fuel_amount": "10.0"}},
					},
				},
			},
			"Venting": map[string]any{
				"source_types": map[string]any{
					"Vents": map[string]any{"emissions": []any{map[string]any{"gas_type": "CH4", "emission": 2.0}}},
				},
			},
		},
	}
	newSnap := map[string]any{
		"activity_data": map[string]any{
			"Combustion": map[string]any{
				"source_types": map[string]any{
					"Boilers": map[string]any{
						"units": []any{map[string]any{"unit_name": "B1", "annual_fuel_amount": "12.0"}},
					},
				},
			},
			"Flaring": map[string]any{
				"source_types": map[string]any{
					"Flare A": map[string]any{"emissions": []any{map[string]any{"gas_type": "CO2", "emission": 1.0}}},
				},
			},
		},
	}
	records := []model.ChangeRecord{
		{Field: "root['facility_reports']['Plant A']", OldValue: oldSnap, NewValue: newSnap},
	}

	e := NewEngine(nil)
	tree := e.Review(records, Options{})
	fac := findSection(t, tree, "Facility Reports")
	if fac == nil {
		t.Fatal("missing Facility Reports section")
	}
	plantA := fac.Children[0]
	var actGroup *model.RenderNode
	for i := range plantA.Children {
		if plantA.Children[i].Title == "Activity Data" {
			actGroup = &plantA.Children[i]
		}
	}
	if actGroup == nil {
		t.Fatalf("missing Activity Data group, got %+v", plantA.Children)
	}

	byTitle := map[string]model.RenderNode{}
	for _, a := range actGroup.Children {
		byTitle[a.Title] = a
	}
	if a, ok := byTitle["Flaring"]; !ok || a.Status != model.ChangeAdded {
		t.Errorf("Flaring = %+v, want added activity", byTitle["Flaring"])
	}
	if a, ok := byTitle["Venting"]; !ok || a.Status != model.ChangeDeleted {
		t.Errorf("Venting = %+v, want deleted activity", byTitle["Venting"])
	}
	if a, ok := byTitle["Combustion"]; !ok || a.Status != model.ChangeModified {
		t.Errorf("Combustion = %+v, want modified activity", byTitle["Combustion"])
	}
}

func TestNormalizeValue_KeyCasing(t *testing.T) {
	in := map[string]any{
		"oldValue": 1,
		"nested": []any{
			map[string]any{"newValue": 2, "changeType": "added"},
		},
	}
	got, ok := normalizeValue(in).(map[string]any)
	if !ok {
		t.Fatal("expected a map back")
	}
	if _, ok := got["old_value"]; !ok {
		t.Error("oldValue not canonicalized")
	}
	nested := got["nested"].([]any)[0].(map[string]any)
	if _, ok := nested["new_value"]; !ok {
		t.Error("nested newValue not canonicalized")
	}
	if nested["change_type"] != "added" {
		t.Error("nested changeType not canonicalized")
	}
	if _, still := in["old_value"]; still {
		t.Error("input map must not be mutated")
	}
}
