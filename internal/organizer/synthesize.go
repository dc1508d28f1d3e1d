package organizer

import (
	"sort"

	"github.com/carbonlens/ghgreview/internal/fieldpath"
	"github.com/carbonlens/ghgreview/internal/model"
)

// synthesizeActivity walks a whole-activity snapshot (the surviving side
// of an added or deleted activity) and emits one field record per leaf,
// exactly as if the backend had produced individual change records for
// each. Every synthesized record goes through Build + Parse + PlaceChange,
// so the synthesized paths stay parseable by construction.
func synthesizeActivity(act *Activity, base *fieldpath.Parsed, snapshot any, ct model.ChangeType) {
	snap, ok := snapshot.(map[string]any)
	if !ok {
		return
	}
	sourceTypes, ok := snap["source_types"].(map[string]any)
	if !ok {
		return
	}

	for _, stName := range sortedKeys(sourceTypes) {
		stSnap, ok := sourceTypes[stName].(map[string]any)
		if !ok {
			continue
		}
		st := act.sourceType(stName)
		addr := fieldpath.Parsed{
			FacilityName:   base.FacilityName,
			Section:        fieldpath.SectionActivityData,
			ActivityName:   base.ActivityName,
			SourceTypeName: stName,
			UnitIndex:      fieldpath.NoIndex,
			FuelIndex:      fieldpath.NoIndex,
			EmissionIndex:  fieldpath.NoIndex,
		}
		synthesizeNode(st, addr, stSnap, ct)
	}
}

// synthesizeNode emits records for one object of the snapshot. Array
// fields named units/fuels/emissions recurse with the corresponding index
// set; everything else is a leaf field of the current node.
func synthesizeNode(st *SourceType, addr fieldpath.Parsed, node map[string]any, ct model.ChangeType) {
	for _, key := range sortedKeys(node) {
		value := node[key]

		if items, ok := childItems(addr, key, value); ok {
			for i, item := range items {
				child := addr
				switch key {
				case "units":
					child.UnitIndex = i
				case "fuels":
					child.FuelIndex = i
				case "emissions":
					child.EmissionIndex = i
				}
				if obj, ok := item.(map[string]any); ok {
					synthesizeNode(st, child, obj, ct)
				} else {
					emit(st, child, "", item, ct)
				}
			}
			continue
		}

		emit(st, addr, key, value, ct)
	}
}

// childItems reports whether key names a recursable array at this depth.
// The grammar only nests units > fuels > emissions, so an already-set
// index blocks re-entering the same container.
func childItems(addr fieldpath.Parsed, key string, value any) ([]any, bool) {
	items, isArray := value.([]any)
	if !isArray {
		return nil, false
	}
	switch key {
	case "units":
		return items, addr.UnitIndex == fieldpath.NoIndex
	case "fuels":
		return items, addr.FuelIndex == fieldpath.NoIndex
	case "emissions":
		return items, addr.EmissionIndex == fieldpath.NoIndex
	}
	return nil, false
}

func emit(st *SourceType, addr fieldpath.Parsed, key string, value any, ct model.ChangeType) {
	addr.FieldKey = key
	path := fieldpath.Build(addr)

	rec := model.ChangeRecord{Field: path, ChangeType: ct}
	if ct == model.ChangeDeleted {
		rec.OldValue = value
	} else {
		rec.NewValue = value
	}

	pp := fieldpath.Parse(path)
	if pp == nil {
		// Build produced something Parse rejects; only reachable when a
		// snapshot key contains bracket/quote characters the grammar
		// cannot represent. Drop it like any other unparseable record.
		return
	}
	PlaceChange(st, pp, rec)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
