package review

import (
	"fmt"
	"sort"

	"github.com/carbonlens/ghgreview/internal/classify"
	"github.com/carbonlens/ghgreview/internal/fieldpath"
	"github.com/carbonlens/ghgreview/internal/model"
	"github.com/carbonlens/ghgreview/internal/reconcile"
)

// expandFacilityRecords derives finer-grained records out of raw
// whole-facility snapshot diffs before the organizer runs. A single
// "facility modified" record can simultaneously encode an added activity,
// a removed activity, and several modified source types within the same
// snapshot pair; the organizer expects those as individual records. For
// wholly added or removed facilities the surviving snapshot side is
// expanded the same way so the review still shows full nested detail.
func expandFacilityRecords(records []model.ChangeRecord) []model.ChangeRecord {
	out := make([]model.ChangeRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, rec)

		pp := fieldpath.Parse(rec.Field)
		if pp == nil || !pp.IsFacilityLevel {
			continue
		}

		oldSnap, _ := rec.OldValue.(map[string]any)
		newSnap, _ := rec.NewValue.(map[string]any)
		if oldSnap == nil && newSnap == nil {
			continue
		}
		out = append(out, expandActivityData(pp.FacilityName, oldSnap, newSnap)...)
	}
	return out
}

// expandActivityData diffs the activity_data objects of two facility
// snapshots. Activities present on only one side become whole-activity
// add/remove records; activities on both sides are diffed per source
// type.
func expandActivityData(facility string, oldSnap, newSnap map[string]any) []model.ChangeRecord {
	oldActs, _ := oldSnap["activity_data"].(map[string]any)
	nowActs, _ := newSnap["activity_data"].(map[string]any)

	var out []model.ChangeRecord
	for _, name := range unionSortedKeys(oldActs, nowActs) {
		oldAct, oldOK := oldActs[name]
		newAct, newOK := nowActs[name]

		path := activityPath(facility, name)
		switch {
		case !oldOK:
			out = append(out, model.ChangeRecord{Field: path, NewValue: newAct, ChangeType: model.ChangeAdded})
		case !newOK:
			out = append(out, model.ChangeRecord{Field: path, OldValue: oldAct, ChangeType: model.ChangeDeleted})
		default:
			if classify.DeepEqual(oldAct, newAct) {
				continue
			}
			out = append(out, expandSourceTypes(facility, name, oldAct, newAct)...)
		}
	}
	return out
}

// expandSourceTypes is the second derived pass: per-source-type deltas of
// one activity present in both snapshots.
func expandSourceTypes(facility, activity string, oldAct, newAct any) []model.ChangeRecord {
	oldMap, _ := oldAct.(map[string]any)
	newMap, _ := newAct.(map[string]any)
	oldSTs, _ := oldMap["source_types"].(map[string]any)
	newSTs, _ := newMap["source_types"].(map[string]any)

	var out []model.ChangeRecord
	for _, name := range unionSortedKeys(oldSTs, newSTs) {
		oldST, oldOK := oldSTs[name]
		newST, newOK := newSTs[name]

		base := fieldpath.Parsed{
			FacilityName:   facility,
			Section:        fieldpath.SectionActivityData,
			ActivityName:   activity,
			SourceTypeName: name,
			UnitIndex:      fieldpath.NoIndex,
			FuelIndex:      fieldpath.NoIndex,
			EmissionIndex:  fieldpath.NoIndex,
		}

		switch {
		case !oldOK:
			out = append(out, model.ChangeRecord{Field: fieldpath.Build(base), NewValue: newST, ChangeType: model.ChangeAdded})
		case !newOK:
			out = append(out, model.ChangeRecord{Field: fieldpath.Build(base), OldValue: oldST, ChangeType: model.ChangeDeleted})
		default:
			if classify.DeepEqual(oldST, newST) {
				continue
			}
			out = append(out, expandSourceTypePair(base, oldST, newST)...)
		}
	}
	return out
}

// expandSourceTypePair diffs one source type's snapshots field by field,
// reconciling the units/fuels/emissions arrays positionally.
func expandSourceTypePair(base fieldpath.Parsed, oldST, newST any) []model.ChangeRecord {
	oldMap, _ := oldST.(map[string]any)
	newMap, _ := newST.(map[string]any)

	var out []model.ChangeRecord
	for _, key := range unionSortedKeys(oldMap, newMap) {
		oldV := oldMap[key]
		newV := newMap[key]

		switch key {
		case "units", "fuels", "emissions":
			oldArr, _ := oldV.([]any)
			newArr, _ := newV.([]any)
			out = append(out, flattenItemDiffs(base, key, reconcile.Arrays(oldArr, newArr))...)
		default:
			if classify.DeepEqual(oldV, newV) {
				continue
			}
			addr := base
			addr.FieldKey = key
			out = append(out, model.ChangeRecord{Field: fieldpath.Build(addr), OldValue: oldV, NewValue: newV})
		}
	}
	return out
}

// flattenItemDiffs converts the reconciler's nested output back into flat
// change records addressed by bracket path, so everything downstream of
// the organizer sees one uniform record shape.
func flattenItemDiffs(base fieldpath.Parsed, container string, diffs []reconcile.ItemDiff) []model.ChangeRecord {
	var out []model.ChangeRecord
	for _, d := range diffs {
		addr := base
		switch container {
		case "units":
			addr.UnitIndex = d.Index
		case "fuels":
			addr.FuelIndex = d.Index
		case "emissions":
			addr.EmissionIndex = d.Index
		}

		for _, f := range d.Fields {
			leaf := addr
			leaf.FieldKey = f.Key
			out = append(out, model.ChangeRecord{
				Field:      fieldpath.Build(leaf),
				OldValue:   f.OldValue,
				NewValue:   f.NewValue,
				ChangeType: f.ChangeType,
			})
		}
		for _, childContainer := range []string{"fuels", "emissions"} {
			if childDiffs, ok := d.Children[childContainer]; ok {
				out = append(out, flattenItemDiffs(addr, childContainer, childDiffs)...)
			}
		}
	}
	return out
}

func activityPath(facility, activity string) string {
	return fmt.Sprintf("root['facility_reports']['%s']['activity_data']['%s']", facility, activity)
}

func unionSortedKeys(a, b map[string]any) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
