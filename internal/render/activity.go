package render

import (
	"fmt"

	"github.com/carbonlens/ghgreview/internal/classify"
	"github.com/carbonlens/ghgreview/internal/model"
	"github.com/carbonlens/ghgreview/internal/organizer"
)

// ActivityRenderer renders the nested activity trees of the Facility
// Reports section: activities, source types, units, fuels, emissions.
type ActivityRenderer struct {
	cfg Config
}

// NewActivityRenderer builds the renderer with the activity-data label
// table unless a custom config is supplied.
func NewActivityRenderer(cfg *Config) *ActivityRenderer {
	if cfg == nil {
		c := activityConfig()
		cfg = &c
	}
	return &ActivityRenderer{cfg: *cfg}
}

// RenderFacility renders one facility's activity tree in encounter order.
func (r *ActivityRenderer) RenderFacility(fr *organizer.FacilityReport) []model.RenderNode {
	out := make([]model.RenderNode, 0, len(fr.ActivityOrder))
	for _, name := range fr.ActivityOrder {
		act := fr.Activities[name]
		node := r.renderActivity(act)
		if len(node.Children) == 0 && node.Status == "" {
			continue
		}
		out = append(out, node)
	}
	return out
}

func (r *ActivityRenderer) renderActivity(act *organizer.Activity) model.RenderNode {
	node := model.RenderNode{Title: act.Name, Status: act.ChangeType}

	node.Children = append(node.Children, fieldNodes(r.cfg, act.Fields, r.recordLabel)...)

	for _, stName := range sortEmissionsLast(act.SourceTypeOrder) {
		st := act.SourceTypes[stName]
		stNode := r.renderSourceType(st)
		if len(stNode.Children) == 0 {
			continue
		}
		node.Children = append(node.Children, stNode)
	}

	if node.Status == "" && len(node.Children) > 0 {
		node.Status = classify.NodeStatus(collectActivityFields(act))
	}
	return node
}

func (r *ActivityRenderer) renderSourceType(st *organizer.SourceType) model.RenderNode {
	node := model.RenderNode{
		Title:  st.Name,
		Status: classify.NodeStatus(collectSourceTypeFields(st)),
	}

	node.Children = append(node.Children, fieldNodes(r.cfg, st.Fields, r.recordLabel)...)

	for _, i := range sortedIndices(st.Units) {
		node.Children = append(node.Children, r.renderUnit(st.Units[i]))
	}
	for _, i := range sortedIndices(st.Fuels) {
		node.Children = append(node.Children, r.renderFuel(st.Fuels[i]))
	}
	for _, i := range sortedIndices(st.Emissions) {
		node.Children = append(node.Children, r.renderEmission(st.Emissions[i]))
	}
	return node
}

func (r *ActivityRenderer) renderUnit(u *organizer.Unit) model.RenderNode {
	node := model.RenderNode{
		Title:  fmt.Sprintf("Unit %d", u.Index+1),
		Status: classify.NodeStatus(collectUnitFields(u)),
	}
	node.Children = append(node.Children, fieldNodes(r.cfg, u.Fields, r.recordLabel)...)
	for _, i := range sortedIndices(u.Fuels) {
		node.Children = append(node.Children, r.renderFuel(u.Fuels[i]))
	}
	for _, i := range sortedIndices(u.Emissions) {
		node.Children = append(node.Children, r.renderEmission(u.Emissions[i]))
	}
	return node
}

func (r *ActivityRenderer) renderFuel(f *organizer.Fuel) model.RenderNode {
	node := model.RenderNode{
		Title:  fmt.Sprintf("Fuel %d", f.Index+1),
		Status: classify.NodeStatus(collectFuelFields(f)),
	}
	node.Children = append(node.Children, fieldNodes(r.cfg, f.Fields, r.recordLabel)...)
	for _, i := range sortedIndices(f.Emissions) {
		node.Children = append(node.Children, r.renderEmission(f.Emissions[i]))
	}
	return node
}

func (r *ActivityRenderer) renderEmission(e *organizer.Emission) model.RenderNode {
	node := model.RenderNode{
		Title:  fmt.Sprintf("Emission %d", e.Index+1),
		Status: classify.NodeStatus(e.Fields),
	}
	node.Children = append(node.Children, fieldNodes(r.cfg, e.Fields, r.recordLabel)...)
	return node
}

func (r *ActivityRenderer) recordLabel(rec model.ChangeRecord) string {
	return r.cfg.Label(fieldKeyOf(rec))
}

// collect*Fields gather every change record under a node, recursively, so
// whole-subtree added/deleted status can be derived on demand rather than
// stored and risk going stale.

func collectActivityFields(act *organizer.Activity) []model.ChangeRecord {
	out := append([]model.ChangeRecord(nil), act.Fields...)
	for _, st := range act.SourceTypes {
		out = append(out, collectSourceTypeFields(st)...)
	}
	return out
}

func collectSourceTypeFields(st *organizer.SourceType) []model.ChangeRecord {
	out := append([]model.ChangeRecord(nil), st.Fields...)
	for _, u := range st.Units {
		out = append(out, collectUnitFields(u)...)
	}
	for _, f := range st.Fuels {
		out = append(out, collectFuelFields(f)...)
	}
	for _, e := range st.Emissions {
		out = append(out, e.Fields...)
	}
	return out
}

func collectUnitFields(u *organizer.Unit) []model.ChangeRecord {
	out := append([]model.ChangeRecord(nil), u.Fields...)
	for _, f := range u.Fuels {
		out = append(out, collectFuelFields(f)...)
	}
	for _, e := range u.Emissions {
		out = append(out, e.Fields...)
	}
	return out
}

func collectFuelFields(f *organizer.Fuel) []model.ChangeRecord {
	out := append([]model.ChangeRecord(nil), f.Fields...)
	for _, e := range f.Emissions {
		out = append(out, e.Fields...)
	}
	return out
}
