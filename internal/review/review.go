// Package review is the top-level change-review orchestrator. It takes
// the raw flat change list for a report-version pair, filters noise,
// buckets records into the fixed top-level sections, runs the facility
// bucket through the organizer, and assembles the final render tree in
// presentation order.
//
// The whole computation is pure and synchronous: no I/O, no shared state
// across invocations, input records never mutated. Reviews for different
// version pairs can run concurrently without coordination.
package review

import (
	"strings"

	"github.com/carbonlens/ghgreview/internal/logging"
	"github.com/carbonlens/ghgreview/internal/model"
	"github.com/carbonlens/ghgreview/internal/organizer"
	"github.com/carbonlens/ghgreview/internal/render"
)

// Options gate which sections are visible. Gating never changes what the
// engine computes, only what the assembled tree shows.
type Options struct {
	Flow                model.Flow
	RegistrationPurpose model.RegistrationPurpose
}

// Engine holds the section renderers. One Engine can serve any number of
// concurrent Review calls.
type Engine struct {
	logger   logging.Logger
	activity *render.ActivityRenderer
}

func NewEngine(logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewStdoutLogger("review")
	}
	return &Engine{
		logger:   logger.With(logging.Field{Key: "component", Value: "review"}),
		activity: render.NewActivityRenderer(nil),
	}
}

// section ties a bucket prefix to its renderer and visibility rule. Order
// of the slice is the fixed presentation order of the review.
type section struct {
	title   string
	prefix  string
	cfg     render.Config
	visible func(Options) bool
}

func always(Options) bool { return true }

func sections() []section {
	return []section{
		{"Operation Information", "root['report_operation']", render.OperationInfoConfig(), always},
		{"Person Responsible", "root['report_person_responsible']", render.PersonResponsibleConfig(), always},
		{"Facility Reports", "root['facility_reports']", render.Config{}, always},
		{"Additional Reporting Data", "root['report_additional_data']", render.AdditionalDataConfig(), always},
		{"New Entrant Information", "root['report_new_entrant']", render.NewEntrantConfig(), func(o Options) bool {
			return o.RegistrationPurpose == model.PurposeNewEntrant
		}},
		{"Electricity Import Data", "root['report_electricity_import_data']", render.ElectricityImportConfig(), func(o Options) bool {
			return o.RegistrationPurpose == model.PurposeElectricityImport || o.Flow == model.FlowEIO
		}},
		{"Operation Emission Summary", "root['report_operation_emission_summary']", render.OperationEmissionSummaryConfig(), always},
		{"Compliance Summary", "root['report_compliance_summary']", render.ComplianceSummaryConfig(), func(o Options) bool {
			return o.RegistrationPurpose != model.PurposeReporting
		}},
	}
}

// Review runs the full pipeline over one flat change list and returns the
// assembled render tree. An empty input renders a single "no changes"
// marker instead of empty sections.
func (e *Engine) Review(records []model.ChangeRecord, opts Options) *model.RenderTree {
	kept := make([]model.ChangeRecord, 0, len(records))
	for _, rec := range records {
		if isNoise(rec.Field) {
			continue
		}
		kept = append(kept, normalizeRecord(rec))
	}

	tree := &model.RenderTree{}
	if len(kept) == 0 {
		tree.Sections = append(tree.Sections, model.RenderNode{Title: "No changes detected"})
		return tree
	}

	buckets := make(map[string][]model.ChangeRecord)
	var unmatched int
	for _, rec := range kept {
		placed := false
		for _, sec := range sections() {
			if strings.HasPrefix(rec.Field, sec.prefix) {
				buckets[sec.prefix] = append(buckets[sec.prefix], rec)
				placed = true
				break
			}
		}
		if !placed {
			unmatched++
		}
	}
	if unmatched > 0 {
		e.logger.Warn("records matched no section prefix",
			logging.Field{Key: "count", Value: unmatched})
	}

	for _, sec := range sections() {
		recs := buckets[sec.prefix]
		if len(recs) == 0 || !sec.visible(opts) {
			continue
		}

		var node model.RenderNode
		if sec.prefix == "root['facility_reports']" {
			node = e.renderFacilityReports(recs)
		} else {
			flat := render.NewFlatRenderer(sec.cfg)
			node = model.RenderNode{Title: sec.title, Children: flat.Render(recs)}
		}
		if len(node.Children) == 0 {
			continue
		}
		tree.Sections = append(tree.Sections, node)
	}

	if len(tree.Sections) == 0 {
		tree.Sections = append(tree.Sections, model.RenderNode{Title: "No changes detected"})
	}
	return tree
}

// renderFacilityReports expands facility snapshot records into derived
// activity and source-type records, organizes everything, and assembles
// one node per facility in encounter order.
func (e *Engine) renderFacilityReports(records []model.ChangeRecord) model.RenderNode {
	res := organizer.Organize(expandFacilityRecords(records))
	if res.Skipped > 0 {
		e.logger.Warn("skipped unparseable change records",
			logging.Field{Key: "count", Value: res.Skipped})
	}

	node := model.RenderNode{Title: "Facility Reports"}
	for _, name := range res.Order {
		fr := res.Facilities[name]
		fn := e.renderFacility(fr)
		if len(fn.Children) == 0 && fn.Status == "" {
			continue
		}
		node.Children = append(node.Children, fn)
	}
	return node
}

func (e *Engine) renderFacility(fr *organizer.FacilityReport) model.RenderNode {
	node := model.RenderNode{Title: fr.FacilityName}
	switch {
	case fr.IsFacilityAdded:
		node.Status = model.ChangeAdded
	case fr.IsFacilityRemoved:
		node.Status = model.ChangeDeleted
	}

	if fr.NameChange != nil {
		node.Children = append(node.Children, model.RenderNode{
			Title:    "Facility name",
			Status:   model.ChangeModified,
			OldValue: fr.NameChange.OldValue,
			NewValue: fr.NameChange.NewValue,
		})
	}

	if acts := e.activity.RenderFacility(fr); len(acts) > 0 {
		node.Children = append(node.Children, model.RenderNode{
			Title:    "Activity Data",
			Children: acts,
		})
	}

	subsections := []struct {
		cfg     render.Config
		records []model.ChangeRecord
	}{
		{render.EmissionSummaryConfig(), fr.EmissionSummary},
		{render.ProductionDataConfig(), fr.ProductionData},
		{render.EmissionAllocationConfig(), fr.EmissionAllocation},
		{render.NonAttributableConfig(), fr.NonAttributable},
		{render.Config{Title: "Other Changes"}, fr.Other},
	}
	for _, sub := range subsections {
		if len(sub.records) == 0 {
			continue
		}
		flat := render.NewFlatRenderer(sub.cfg)
		children := flat.Render(sub.records)
		if len(children) == 0 {
			continue
		}
		node.Children = append(node.Children, model.RenderNode{
			Title:    sub.cfg.Title,
			Children: children,
		})
	}
	return node
}
