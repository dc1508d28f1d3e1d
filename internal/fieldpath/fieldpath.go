// Package fieldpath parses the opaque bracket-path strings the upstream
// diff collaborator uses to address fields inside a report document, e.g.
//
//	root['facility_reports']['Plant A']['activity_data']['Flaring']['source_types']['Flare A']['units'][2]['fuels'][0]['emissions'][1]['gas_type']
//
// back into a typed hierarchical address. Parsing is a pure function: the
// same path always yields the same address.
package fieldpath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SectionKind is the closed set of report sections a facility-scoped path
// can resolve to.
type SectionKind string

const (
	SectionActivityData       SectionKind = "activity_data"
	SectionEmissionSummary    SectionKind = "emission_summary"
	SectionProductionData     SectionKind = "production_data"
	SectionEmissionAllocation SectionKind = "emission_allocation"
	SectionNonAttributable    SectionKind = "non_attributable_emissions"
	SectionFacilityInfo       SectionKind = "facility_info"
	SectionOther              SectionKind = "other"
)

// NoIndex marks an absent unit/fuel/emission index.
const NoIndex = -1

// Parsed is the structured address a bracket path resolves to.
type Parsed struct {
	FacilityName    string
	Section         SectionKind
	ActivityName    string
	SourceTypeName  string
	UnitIndex       int
	FuelIndex       int
	EmissionIndex   int
	FieldKey        string
	IsFacilityLevel bool
}

const facilityAnchor = "['facility_reports']"

// segment is one bracket component after unquoting.
type segment struct {
	text    string
	numeric bool
	n       int
}

var segmentRe = regexp.MustCompile(`\[(?:'((?:[^'\\]|\\.)*)'|"((?:[^"\\]|\\.)*)"|(\d+))\]`)

// sectionTable maps a path fragment to its section. Matched in order, first
// hit wins; the order is part of the parsing contract.
var sectionTable = []struct {
	fragment string
	kind     SectionKind
}{
	{"report_products", SectionProductionData},
	{"report_emission_allocation", SectionEmissionAllocation},
	{"reportnonattributableemissions_records", SectionNonAttributable},
	{"emission_summary", SectionEmissionSummary},
	{"facility_name", SectionFacilityInfo},
}

// arrayContainers are the recognized array keywords. A numeric segment is an
// index only when it immediately follows one of these; a bare number
// anywhere else is an opaque key.
var arrayContainers = map[string]bool{
	"units":     true,
	"fuels":     true,
	"emissions": true,
}

// Parse resolves a bracket path under facility_reports. It returns nil when
// the path carries no facility_reports anchor; callers then try the
// top-level section matchers instead. Facility names containing literal
// brackets or quotes are not supported: the path grammar cannot round-trip
// arbitrary strings.
func Parse(path string) *Parsed {
	at := strings.Index(path, facilityAnchor)
	if at < 0 {
		return nil
	}

	segs := tokenize(path[at+len(facilityAnchor):])
	if len(segs) == 0 || segs[0].numeric {
		return nil
	}

	p := &Parsed{
		FacilityName:  segs[0].text,
		UnitIndex:     NoIndex,
		FuelIndex:     NoIndex,
		EmissionIndex: NoIndex,
	}
	segs = segs[1:]

	if len(segs) == 0 {
		p.IsFacilityLevel = true
		p.Section = SectionFacilityInfo
		return p
	}

	if segs[0].text == "activity_data" {
		p.Section = SectionActivityData
		parseActivity(p, segs[1:])
		return p
	}

	for _, entry := range sectionTable {
		if containsFragment(segs, entry.fragment) {
			p.Section = entry.kind
			p.FieldKey = segs[len(segs)-1].text
			return p
		}
	}

	p.Section = SectionOther
	p.FieldKey = segs[len(segs)-1].text
	return p
}

// parseActivity consumes the segments after ['activity_data'].
func parseActivity(p *Parsed, segs []segment) {
	if len(segs) == 0 {
		// Path terminates at the activity_data container itself; treat as a
		// facility-level snapshot of all activities.
		p.IsFacilityLevel = true
		p.FieldKey = "activity_data"
		return
	}

	p.ActivityName = segs[0].text
	segs = segs[1:]
	if len(segs) == 0 {
		// Whole-activity add/remove/modify record.
		return
	}

	if segs[0].text != "source_types" {
		// A direct field on the activity.
		p.FieldKey = segs[len(segs)-1].text
		return
	}
	segs = segs[1:]
	if len(segs) == 0 {
		return
	}

	p.SourceTypeName = segs[0].text
	segs = segs[1:]

	for i := 0; i < len(segs); {
		s := segs[i]
		if !s.numeric && arrayContainers[s.text] && i+1 < len(segs) && segs[i+1].numeric {
			switch s.text {
			case "units":
				p.UnitIndex = segs[i+1].n
			case "fuels":
				p.FuelIndex = segs[i+1].n
			case "emissions":
				p.EmissionIndex = segs[i+1].n
			}
			// The field key must follow the last recognized index pair.
			p.FieldKey = ""
			i += 2
			continue
		}
		p.FieldKey = s.text
		i++
	}
}

func containsFragment(segs []segment, fragment string) bool {
	for _, s := range segs {
		if !s.numeric && s.text == fragment {
			return true
		}
	}
	return false
}

func tokenize(rest string) []segment {
	matches := segmentRe.FindAllStringSubmatch(rest, -1)
	segs := make([]segment, 0, len(matches))
	for _, m := range matches {
		switch {
		case m[3] != "":
			n, err := strconv.Atoi(m[3])
			if err != nil {
				segs = append(segs, segment{text: m[3]})
				continue
			}
			segs = append(segs, segment{text: m[3], numeric: true, n: n})
		case m[1] != "" || strings.Contains(m[0], "'"):
			segs = append(segs, segment{text: m[1]})
		default:
			segs = append(segs, segment{text: m[2]})
		}
	}
	return segs
}

// Build constructs the canonical bracket path for a source-type-scoped
// address. The organizer uses it when synthesizing field records out of
// whole-activity snapshots, so Build and Parse must stay inverse of each
// other for every address the organizer can produce.
func Build(p Parsed) string {
	var b strings.Builder
	b.WriteString("root")
	b.WriteString(facilityAnchor)
	writeKey(&b, p.FacilityName)

	if p.IsFacilityLevel && p.FieldKey == "" {
		return b.String()
	}

	switch p.Section {
	case SectionActivityData:
		b.WriteString("['activity_data']")
		if p.ActivityName == "" {
			return b.String()
		}
		writeKey(&b, p.ActivityName)
		if p.SourceTypeName == "" {
			if p.FieldKey != "" {
				writeKey(&b, p.FieldKey)
			}
			return b.String()
		}
		b.WriteString("['source_types']")
		writeKey(&b, p.SourceTypeName)
		if p.UnitIndex != NoIndex {
			fmt.Fprintf(&b, "['units'][%d]", p.UnitIndex)
		}
		if p.FuelIndex != NoIndex {
			fmt.Fprintf(&b, "['fuels'][%d]", p.FuelIndex)
		}
		if p.EmissionIndex != NoIndex {
			fmt.Fprintf(&b, "['emissions'][%d]", p.EmissionIndex)
		}
		if p.FieldKey != "" {
			writeKey(&b, p.FieldKey)
		}
	default:
		if p.FieldKey != "" {
			writeKey(&b, p.FieldKey)
		}
	}
	return b.String()
}

func writeKey(b *strings.Builder, key string) {
	b.WriteString("['")
	b.WriteString(key)
	b.WriteString("']")
}

// TrailingIndex extracts the last numeric bracket segment of a path, for
// renderers that group flat section records by row (e.g. report_products).
// Returns NoIndex when the path has no numeric segment.
func TrailingIndex(path string) int {
	segs := tokenize(path)
	idx := NoIndex
	for _, s := range segs {
		if s.numeric {
			idx = s.n
		}
	}
	return idx
}
