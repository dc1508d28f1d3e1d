// Package organizer consumes a flat list of change records and rebuilds
// the nested per-facility structure a reviewer reads: activities, source
// types, units, fuels and emissions, each level carrying its own
// field-level changes.
package organizer

import (
	"github.com/carbonlens/ghgreview/internal/model"
)

// Result is one diff run's output: every distinct facility name seen, in
// encounter order. No facility is dropped even when all of its records
// turned out to be unchanged; it simply has empty collections.
type Result struct {
	Facilities map[string]*FacilityReport
	Order      []string

	// Skipped counts records whose path could not be parsed. Malformed
	// records never abort a run; callers log the count for observability.
	Skipped int
}

func (r *Result) facility(name string) *FacilityReport {
	if fr, ok := r.Facilities[name]; ok {
		return fr
	}
	fr := &FacilityReport{
		FacilityName: name,
		Activities:   make(map[string]*Activity),
	}
	r.Facilities[name] = fr
	r.Order = append(r.Order, name)
	return fr
}

// FacilityReport aggregates every change scoped to one facility name.
type FacilityReport struct {
	FacilityName string

	Activities    map[string]*Activity
	ActivityOrder []string

	EmissionSummary    []model.ChangeRecord
	ProductionData     []model.ChangeRecord
	EmissionAllocation []model.ChangeRecord
	NonAttributable    []model.ChangeRecord
	Other              []model.ChangeRecord

	// Whole-facility markers. Added and Removed are mutually exclusive
	// within one run; FacilityData holds the snapshot side that exists.
	IsFacilityAdded   bool
	IsFacilityRemoved bool
	FacilityData      any

	// NameChange is set when the facility_name field itself changed.
	NameChange *model.ChangeRecord
}

func (f *FacilityReport) activity(name string) *Activity {
	if a, ok := f.Activities[name]; ok {
		return a
	}
	a := &Activity{
		Name:        name,
		SourceTypes: make(map[string]*SourceType),
	}
	f.Activities[name] = a
	f.ActivityOrder = append(f.ActivityOrder, name)
	return a
}

// Activity groups the source types of one regulated emitting process.
// ChangeType is non-empty only when a change record terminated exactly at
// the activity (a whole-activity add/remove/modify); it coexists with
// finer per-source-type records from sibling change records.
type Activity struct {
	Name string

	SourceTypes     map[string]*SourceType
	SourceTypeOrder []string

	// Direct fields on the activity itself (no source type in the path).
	Fields []model.ChangeRecord

	ChangeType model.ChangeType
	OldValue   any
	NewValue   any
}

func (a *Activity) sourceType(name string) *SourceType {
	if st, ok := a.SourceTypes[name]; ok {
		return st
	}
	st := &SourceType{Name: name}
	a.SourceTypes[name] = st
	a.SourceTypeOrder = append(a.SourceTypeOrder, name)
	return st
}

// SourceType holds changes terminating directly under the source type plus
// its indexed children. Depending on the activity's schema a source type
// carries units, bare fuels, or bare emissions, so all three maps exist at
// this level.
type SourceType struct {
	Name   string
	Fields []model.ChangeRecord

	Units     map[int]*Unit
	Fuels     map[int]*Fuel
	Emissions map[int]*Emission
}

func (st *SourceType) unit(i int) *Unit {
	if st.Units == nil {
		st.Units = make(map[int]*Unit)
	}
	if u, ok := st.Units[i]; ok {
		return u
	}
	u := &Unit{Index: i}
	st.Units[i] = u
	return u
}

func (st *SourceType) fuel(i int) *Fuel {
	if st.Fuels == nil {
		st.Fuels = make(map[int]*Fuel)
	}
	if f, ok := st.Fuels[i]; ok {
		return f
	}
	f := &Fuel{Index: i}
	st.Fuels[i] = f
	return f
}

func (st *SourceType) emission(i int) *Emission {
	if st.Emissions == nil {
		st.Emissions = make(map[int]*Emission)
	}
	if e, ok := st.Emissions[i]; ok {
		return e
	}
	e := &Emission{Index: i}
	st.Emissions[i] = e
	return e
}

// Unit is one position of a source type's units array. The index is the
// positional index in the underlying array at diff time, not a stable
// identity; see the package note in reconcile.
type Unit struct {
	Index  int
	Fields []model.ChangeRecord

	Fuels     map[int]*Fuel
	Emissions map[int]*Emission
}

func (u *Unit) fuel(i int) *Fuel {
	if u.Fuels == nil {
		u.Fuels = make(map[int]*Fuel)
	}
	if f, ok := u.Fuels[i]; ok {
		return f
	}
	f := &Fuel{Index: i}
	u.Fuels[i] = f
	return f
}

func (u *Unit) emission(i int) *Emission {
	if u.Emissions == nil {
		u.Emissions = make(map[int]*Emission)
	}
	if e, ok := u.Emissions[i]; ok {
		return e
	}
	e := &Emission{Index: i}
	u.Emissions[i] = e
	return e
}

// Fuel is one position of a fuels array.
type Fuel struct {
	Index  int
	Fields []model.ChangeRecord

	Emissions map[int]*Emission
}

func (f *Fuel) emission(i int) *Emission {
	if f.Emissions == nil {
		f.Emissions = make(map[int]*Emission)
	}
	if e, ok := f.Emissions[i]; ok {
		return e
	}
	e := &Emission{Index: i}
	f.Emissions[i] = e
	return e
}

// Emission is one position of an emissions array.
type Emission struct {
	Index  int
	Fields []model.ChangeRecord
}
