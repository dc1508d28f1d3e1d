package fieldpath

import "testing"

func TestParse_DeepSourceTypePath(t *testing.T) {
	path := "root['facility_reports']['Plant A']['activity_data']['Combustion']['source_types']['Flaring']['units'][2]['fuels'][0]['emissions'][1]['gas_type']"

	p := Parse(path)
	if p == nil {
		t.Fatal("expected non-nil parse result")
	}
	if p.FacilityName != "Plant A" {
		t.Errorf("FacilityName = %q, want %q", p.FacilityName, "Plant A")
	}
	if p.Section != SectionActivityData {
		t.Errorf("Section = %q, want activity_data", p.Section)
	}
	if p.ActivityName != "Combustion" {
		t.Errorf("ActivityName = %q, want Combustion", p.ActivityName)
	}
	if p.SourceTypeName != "Flaring" {
		t.Errorf("SourceTypeName = %q, want Flaring", p.SourceTypeName)
	}
	if p.UnitIndex != 2 || p.FuelIndex != 0 || p.EmissionIndex != 1 {
		t.Errorf("indices = (%d,%d,%d), want (2,0,1)", p.UnitIndex, p.FuelIndex, p.EmissionIndex)
	}
	if p.FieldKey != "gas_type" {
		t.Errorf("FieldKey = %q, want gas_type", p.FieldKey)
	}
}

func TestParse_NoFacilityAnchor(t *testing.T) {
	if p := Parse("root['report_operation']['operator_legal_name']"); p != nil {
		t.Fatalf("expected nil for non-facility path, got %+v", p)
	}
}

func TestParse_FacilityLevel(t *testing.T) {
	p := Parse("root['facility_reports']['Plant B']")
	if p == nil {
		t.Fatal("expected non-nil parse result")
	}
	if !p.IsFacilityLevel {
		t.Error("expected IsFacilityLevel")
	}
	if p.Section != SectionFacilityInfo {
		t.Errorf("Section = %q, want facility_info", p.Section)
	}
}

func TestParse_ActivityLevel(t *testing.T) {
	p := Parse("root['facility_reports']['Plant A']['activity_data']['Flaring']")
	if p == nil {
		t.Fatal("expected non-nil parse result")
	}
	if p.ActivityName != "Flaring" {
		t.Errorf("ActivityName = %q, want Flaring", p.ActivityName)
	}
	if p.SourceTypeName != "" || p.FieldKey != "" {
		t.Errorf("activity-level record should carry no source type or field key, got %q/%q", p.SourceTypeName, p.FieldKey)
	}
}

func TestParse_SectionTable(t *testing.T) {
	cases := []struct {
		path string
		want SectionKind
		key  string
	}{
		{"root['facility_reports']['Plant A']['report_products'][0]['annual_production']", SectionProductionData, "annual_production"},
		{"root['facility_reports']['Plant A']['report_emission_allocation']['allocation_methodology']", SectionEmissionAllocation, "allocation_methodology"},
		{"root['facility_reports']['Plant A']['reportnonattributableemissions_records'][1]['gas_type']", SectionNonAttributable, "gas_type"},
		{"root['facility_reports']['Plant A']['emission_summary']['attributable_for_reporting']", SectionEmissionSummary, "attributable_for_reporting"},
		{"root['facility_reports']['Plant A']['facility_name']", SectionFacilityInfo, "facility_name"},
		{"root['facility_reports']['Plant A']['some_unknown_table'][3]['value']", SectionOther, "value"},
	}
	for _, tc := range cases {
		p := Parse(tc.path)
		if p == nil {
			t.Fatalf("Parse(%q) = nil", tc.path)
		}
		if p.Section != tc.want {
			t.Errorf("Parse(%q).Section = %q, want %q", tc.path, p.Section, tc.want)
		}
		if p.FieldKey != tc.key {
			t.Errorf("Parse(%q).FieldKey = %q, want %q", tc.path, p.FieldKey, tc.key)
		}
	}
}

func TestParse_BareNumericSegmentIsOpaqueKey(t *testing.T) {
	// 42 does not follow a recognized array container, so it must not be
	// captured as an index.
	p := Parse("root['facility_reports']['Plant A']['activity_data']['Combustion']['source_types']['Flaring'][42]['note']")
	if p == nil {
		t.Fatal("expected non-nil parse result")
	}
	if p.UnitIndex != NoIndex || p.FuelIndex != NoIndex || p.EmissionIndex != NoIndex {
		t.Errorf("expected no indices, got (%d,%d,%d)", p.UnitIndex, p.FuelIndex, p.EmissionIndex)
	}
	if p.FieldKey != "note" {
		t.Errorf("FieldKey = %q, want note", p.FieldKey)
	}
}

func TestParse_NodeLevelRecord(t *testing.T) {
	p := Parse("root['facility_reports']['Plant A']['activity_data']['Combustion']['source_types']['Flaring']['units'][2]")
	if p == nil {
		t.Fatal("expected non-nil parse result")
	}
	if p.UnitIndex != 2 {
		t.Errorf("UnitIndex = %d, want 2", p.UnitIndex)
	}
	if p.FieldKey != "" {
		t.Errorf("FieldKey = %q, want empty for node-level record", p.FieldKey)
	}
}

func TestBuild_RoundTrip(t *testing.T) {
	addrs := []Parsed{
		{FacilityName: "Plant A", Section: SectionActivityData, ActivityName: "Flaring", UnitIndex: NoIndex, FuelIndex: NoIndex, EmissionIndex: NoIndex},
		{FacilityName: "Plant A", Section: SectionActivityData, ActivityName: "Flaring", SourceTypeName: "Flare A", UnitIndex: NoIndex, FuelIndex: NoIndex, EmissionIndex: NoIndex, FieldKey: "source_type_name"},
		{FacilityName: "Plant A", Section: SectionActivityData, ActivityName: "Combustion", SourceTypeName: "Boilers", UnitIndex: 1, FuelIndex: NoIndex, EmissionIndex: NoIndex, FieldKey: "unit_name"},
		{FacilityName: "Plant A", Section: SectionActivityData, ActivityName: "Combustion", SourceTypeName: "Boilers", UnitIndex: 0, FuelIndex: 2, EmissionIndex: 1, FieldKey: "emission"},
		{FacilityName: "North Site", Section: SectionActivityData, ActivityName: "Flaring", SourceTypeName: "Flare A", UnitIndex: NoIndex, FuelIndex: NoIndex, EmissionIndex: 0, FieldKey: "gas_type"},
	}
	for _, in := range addrs {
		path := Build(in)
		got := Parse(path)
		if got == nil {
			t.Fatalf("Parse(Build(%+v)) = nil (path %q)", in, path)
		}
		if got.FacilityName != in.FacilityName || got.ActivityName != in.ActivityName ||
			got.SourceTypeName != in.SourceTypeName || got.FieldKey != in.FieldKey ||
			got.UnitIndex != in.UnitIndex || got.FuelIndex != in.FuelIndex || got.EmissionIndex != in.EmissionIndex {
			t.Errorf("round trip mismatch:\n in  %+v\n out %+v\n path %s", in, *got, path)
		}
	}
}

func TestTrailingIndex(t *testing.T) {
	if got := TrailingIndex("root['facility_reports']['Plant A']['report_products'][3]['annual_production']"); got != 3 {
		t.Errorf("TrailingIndex = %d, want 3", got)
	}
	if got := TrailingIndex("root['report_operation']['operator_legal_name']"); got != NoIndex {
		t.Errorf("TrailingIndex = %d, want NoIndex", got)
	}
}
