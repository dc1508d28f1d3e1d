package render

import (
	"strings"
	"testing"

	"github.com/carbonlens/ghgreview/internal/model"
	"github.com/carbonlens/ghgreview/internal/organizer"
)

func TestSortEmissionsLast(t *testing.T) {
	keys := []string{"flaring", "fugitive_emissions", "venting"}
	got := sortEmissionsLast(keys)
	want := []string{"flaring", "venting", "fugitive_emissions"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sortEmissionsLast = %v, want %v", got, want)
		}
	}
}

func TestSortEmissionsLast_CaseInsensitiveAndStable(t *testing.T) {
	keys := []string{"GSC_Emissions", "boilers", "Fugitive Emissions", "kilns"}
	got := sortEmissionsLast(keys)
	want := []string{"boilers", "kilns", "GSC_Emissions", "Fugitive Emissions"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sortEmissionsLast = %v, want %v", got, want)
		}
	}
}

func TestLeafNode_ZeroSuppression(t *testing.T) {
	cfg := EmissionAllocationConfig()

	if _, ok := leafNode(cfg, "Allocated quantity", "0.0000", "0"); ok {
		t.Error("zero-to-zero allocation entry must be suppressed")
	}

	n, ok := leafNode(cfg, "Allocated quantity", "0", "5.2")
	if !ok {
		t.Fatal("0 -> 5.2 must not be suppressed")
	}
	if n.Status != model.ChangeModified {
		t.Errorf("Status = %q, want modified", n.Status)
	}
}

func TestLeafNode_DecimalDeNoising(t *testing.T) {
	cfg := Config{DecimalPlaces: 4}
	if _, ok := leafNode(cfg, "x", "12.3400", "12.34"); ok {
		t.Error("12.3400 vs 12.34 is representation noise at 4 places and must not render")
	}
	if _, ok := leafNode(cfg, "x", "12.3400", "12.35"); !ok {
		t.Error("a real numeric change must render")
	}
}

func TestLeafNode_NoDecimalConfigComparesRaw(t *testing.T) {
	cfg := Config{}
	n, ok := leafNode(cfg, "x", "0.0", "0")
	if !ok {
		t.Fatal("without decimal config the raw strings differ and must render")
	}
	if n.Status != model.ChangeModified {
		t.Errorf("Status = %q, want modified", n.Status)
	}
}

func TestLeafNode_TextDiff(t *testing.T) {
	cfg := Config{TextDiffMinLen: 10}
	oldS := "emissions were estimated using the standard method"
	newS := "emissions were measured using the standard method"

	n, ok := leafNode(cfg, "Methodology", oldS, newS)
	if !ok {
		t.Fatal("expected a rendered node")
	}
	if n.TextDiff == "" {
		t.Fatal("expected an inline text diff for a long string change")
	}
	if !strings.Contains(n.TextDiff, "[-") || !strings.Contains(n.TextDiff, "{+") {
		t.Errorf("TextDiff %q missing deletion/insertion markers", n.TextDiff)
	}
}

func TestFlatRenderer_RowGrouping(t *testing.T) {
	r := NewFlatRenderer(ProductionDataConfig())
	records := []model.ChangeRecord{
		{Field: "root['facility_reports']['Plant A']['report_products'][0]['annual_production']", OldValue: "10", NewValue: "12"},
		{Field: "root['facility_reports']['Plant A']['report_products'][0]['product_name']", OldValue: "Cement", NewValue: "Clinker"},
		{Field: "root['facility_reports']['Plant A']['report_products'][1]['annual_production']", OldValue: nil, NewValue: "7"},
	}

	nodes := r.Render(records)
	if len(nodes) != 2 {
		t.Fatalf("expected 2 product rows, got %d", len(nodes))
	}
	if nodes[0].Title != "Product 1" || nodes[1].Title != "Product 2" {
		t.Errorf("row titles = %q, %q", nodes[0].Title, nodes[1].Title)
	}
	if len(nodes[0].Children) != 2 {
		t.Errorf("Product 1 children = %d, want 2", len(nodes[0].Children))
	}
	if nodes[0].Children[0].Title != "Annual production" {
		t.Errorf("label = %q, want Annual production", nodes[0].Children[0].Title)
	}
	if nodes[1].Children[0].Status != model.ChangeAdded {
		t.Errorf("new product row status = %q, want added", nodes[1].Children[0].Status)
	}
}

func TestFlatRenderer_EmptySectionRendersNothing(t *testing.T) {
	r := NewFlatRenderer(NewEntrantConfig())
	if nodes := r.Render(nil); len(nodes) != 0 {
		t.Errorf("empty section must render nothing, got %v", nodes)
	}
}

func TestActivityRenderer_SourceTypeOrderAndStatus(t *testing.T) {
	res := organizer.Organize([]model.ChangeRecord{
		{Field: "root['facility_reports']['Plant A']['activity_data']['GSC']['source_types']['flaring']['units'][0]['unit_name']", OldValue: "F1", NewValue: "F2"},
		{Field: "root['facility_reports']['Plant A']['activity_data']['GSC']['source_types']['fugitive_emissions']['units'][0]['unit_name']", OldValue: nil, NewValue: "New unit"},
		{Field: "root['facility_reports']['Plant A']['activity_data']['GSC']['source_types']['venting']['units'][0]['unit_name']", OldValue: "V1", NewValue: nil},
	})

	r := NewActivityRenderer(nil)
	nodes := r.RenderFacility(res.Facilities["Plant A"])
	if len(nodes) != 1 {
		t.Fatalf("expected one activity node, got %d", len(nodes))
	}

	st := nodes[0].Children
	if len(st) != 3 {
		t.Fatalf("expected 3 source types, got %d", len(st))
	}
	if st[0].Title != "flaring" || st[1].Title != "venting" || st[2].Title != "fugitive_emissions" {
		t.Errorf("source type order = %q, %q, %q; want flaring, venting, fugitive_emissions",
			st[0].Title, st[1].Title, st[2].Title)
	}
	if st[0].Status != model.ChangeModified {
		t.Errorf("flaring status = %q, want modified", st[0].Status)
	}
	if st[2].Status != model.ChangeAdded {
		t.Errorf("fugitive_emissions status = %q, want added (all fields pure additions)", st[2].Status)
	}
	if st[1].Status != model.ChangeDeleted {
		t.Errorf("venting status = %q, want deleted", st[1].Status)
	}
}

func TestPrettifyKey(t *testing.T) {
	if got := prettifyKey("annual_fuel_amount"); got != "Annual Fuel Amount" {
		t.Errorf("prettifyKey = %q", got)
	}
}
