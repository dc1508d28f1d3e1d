package organizer

import (
	"github.com/carbonlens/ghgreview/internal/classify"
	"github.com/carbonlens/ghgreview/internal/fieldpath"
	"github.com/carbonlens/ghgreview/internal/model"
)

// Organize makes a single pass over the flat change list and routes every
// record into exactly one (facility, section) bucket. Records whose path
// does not parse are counted and skipped without mutating any partial
// state; records that classify as unchanged are dropped. Input records are
// never mutated.
func Organize(records []model.ChangeRecord) *Result {
	res := &Result{Facilities: make(map[string]*FacilityReport)}

	for _, rec := range records {
		pp := fieldpath.Parse(rec.Field)
		if pp == nil {
			res.Skipped++
			continue
		}
		if classify.Classify(rec.OldValue, rec.NewValue) == model.ChangeUnchanged {
			continue
		}

		fr := res.facility(pp.FacilityName)

		switch {
		case pp.IsFacilityLevel:
			placeFacilityLevel(fr, rec)
		case pp.Section == fieldpath.SectionActivityData && pp.SourceTypeName == "":
			placeActivityLevel(fr, pp, rec)
		case pp.Section == fieldpath.SectionActivityData:
			st := fr.activity(pp.ActivityName).sourceType(pp.SourceTypeName)
			PlaceChange(st, pp, rec)
		case pp.Section == fieldpath.SectionEmissionSummary:
			fr.EmissionSummary = append(fr.EmissionSummary, rec)
		case pp.Section == fieldpath.SectionProductionData:
			fr.ProductionData = append(fr.ProductionData, rec)
		case pp.Section == fieldpath.SectionEmissionAllocation:
			fr.EmissionAllocation = append(fr.EmissionAllocation, rec)
		case pp.Section == fieldpath.SectionNonAttributable:
			fr.NonAttributable = append(fr.NonAttributable, rec)
		case pp.Section == fieldpath.SectionFacilityInfo && pp.FieldKey == "facility_name":
			r := rec
			fr.NameChange = &r
		default:
			fr.Other = append(fr.Other, rec)
		}
	}
	return res
}

func placeFacilityLevel(fr *FacilityReport, rec model.ChangeRecord) {
	switch classify.Classify(rec.OldValue, rec.NewValue) {
	case model.ChangeAdded:
		fr.IsFacilityAdded = true
		fr.IsFacilityRemoved = false
		fr.FacilityData = rec.NewValue
	case model.ChangeDeleted:
		fr.IsFacilityRemoved = true
		fr.IsFacilityAdded = false
		fr.FacilityData = rec.OldValue
	default:
		// A modified whole-facility snapshot carries nothing the finer
		// records (or the orchestrator's derived passes over the same
		// snapshot pair) don't already encode.
	}
}

func placeActivityLevel(fr *FacilityReport, pp *fieldpath.Parsed, rec model.ChangeRecord) {
	act := fr.activity(pp.ActivityName)

	if pp.FieldKey != "" {
		// A direct field on the activity (no source type).
		act.Fields = append(act.Fields, rec)
		return
	}

	// The path terminates exactly at the activity: a whole-activity
	// add/remove/modify. The whole-activity snapshot still has to render
	// with full nested detail, so synthesize per-source-type field records
	// out of the snapshot as if the backend had emitted them individually.
	ct := classify.Classify(rec.OldValue, rec.NewValue)
	act.ChangeType = ct
	act.OldValue = rec.OldValue
	act.NewValue = rec.NewValue

	switch ct {
	case model.ChangeAdded:
		synthesizeActivity(act, pp, rec.NewValue, model.ChangeAdded)
	case model.ChangeDeleted:
		synthesizeActivity(act, pp, rec.OldValue, model.ChangeDeleted)
	}
}

// PlaceChange routes one source-type-scoped record to the unit/fuel/
// emission node its parsed path addresses, creating intermediate nodes
// lazily. A record with an empty field key terminates at the node itself
// and lands in that node's field list.
func PlaceChange(st *SourceType, pp *fieldpath.Parsed, rec model.ChangeRecord) {
	switch {
	case pp.UnitIndex != fieldpath.NoIndex:
		u := st.unit(pp.UnitIndex)
		switch {
		case pp.FuelIndex != fieldpath.NoIndex:
			f := u.fuel(pp.FuelIndex)
			if pp.EmissionIndex != fieldpath.NoIndex {
				e := f.emission(pp.EmissionIndex)
				e.Fields = append(e.Fields, rec)
				return
			}
			f.Fields = append(f.Fields, rec)
		case pp.EmissionIndex != fieldpath.NoIndex:
			e := u.emission(pp.EmissionIndex)
			e.Fields = append(e.Fields, rec)
		default:
			u.Fields = append(u.Fields, rec)
		}
	case pp.FuelIndex != fieldpath.NoIndex:
		f := st.fuel(pp.FuelIndex)
		if pp.EmissionIndex != fieldpath.NoIndex {
			e := f.emission(pp.EmissionIndex)
			e.Fields = append(e.Fields, rec)
			return
		}
		f.Fields = append(f.Fields, rec)
	case pp.EmissionIndex != fieldpath.NoIndex:
		e := st.emission(pp.EmissionIndex)
		e.Fields = append(e.Fields, rec)
	default:
		st.Fields = append(st.Fields, rec)
	}
}
