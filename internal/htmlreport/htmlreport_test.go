package htmlreport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/carbonlens/ghgreview/internal/model"
)

func parseDoc(t *testing.T, html []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		t.Fatalf("parse rendered html: %v", err)
	}
	return doc
}

func TestRenderSectionsAndLeaves(t *testing.T) {
	tree := &model.RenderTree{
		Sections: []model.RenderNode{
			{
				Title:  "Facility Reports",
				Status: model.ChangeModified,
				Children: []model.RenderNode{
					{
						Title: "Plant A",
						Children: []model.RenderNode{
							{
								Title:    "Fuel Amount",
								Status:   model.ChangeModified,
								OldValue: "100.0000",
								NewValue: "120.0000",
							},
						},
					},
				},
			},
			{Title: "Compliance Summary"},
		},
	}

	html, err := Render("Review of Report rep-1", tree)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc := parseDoc(t, html)

	if got := doc.Find("h1").Text(); got != "Review of Report rep-1" {
		t.Errorf("h1 = %q", got)
	}

	headings := doc.Find("h2").Map(func(_ int, s *goquery.Selection) string {
		return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s.Text()), "Modified"))
	})
	if len(headings) != 2 || headings[0] != "Facility Reports" || headings[1] != "Compliance Summary" {
		t.Errorf("unexpected section headings: %v", headings)
	}

	leaf := doc.Find("li.node").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Text(), "Fuel Amount")
	})
	if leaf.Length() == 0 {
		t.Fatal("expected a node for Fuel Amount")
	}
	if old := leaf.Find("span.old").First().Text(); old != "100.0000" {
		t.Errorf("old value = %q", old)
	}
	if newV := leaf.Find("span.new").First().Text(); newV != "120.0000" {
		t.Errorf("new value = %q", newV)
	}
}

func TestRenderStatusBadges(t *testing.T) {
	tree := &model.RenderTree{
		Sections: []model.RenderNode{
			{
				Title: "Facility Reports",
				Children: []model.RenderNode{
					{Title: "Plant B", Status: model.ChangeAdded},
					{Title: "Plant C", Status: model.ChangeDeleted},
				},
			},
		},
	}

	html, err := Render("Review", tree)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc := parseDoc(t, html)

	if doc.Find("span.status.added").Length() != 1 {
		t.Error("expected one added badge")
	}
	if doc.Find("span.status.deleted").Length() != 1 {
		t.Error("expected one deleted badge")
	}
}

func TestRenderEmptyTree(t *testing.T) {
	html, err := Render("Review", nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc := parseDoc(t, html)

	if got := doc.Find("p.empty").Text(); got != "No changes detected." {
		t.Errorf("empty message = %q", got)
	}
	if doc.Find("h2").Length() != 0 {
		t.Error("empty tree should render no sections")
	}
}

func TestRenderIsSelfContained(t *testing.T) {
	html, err := Render("Review", &model.RenderTree{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc := parseDoc(t, html)

	if doc.Find("script").Length() != 0 {
		t.Error("report must not contain scripts")
	}
	if doc.Find("link").Length() != 0 {
		t.Error("report must not reference external stylesheets")
	}
}
