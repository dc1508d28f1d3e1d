package export

import (
	"context"
	"strings"
	"testing"

	"github.com/carbonlens/ghgreview/internal/config"
	"github.com/carbonlens/ghgreview/internal/interfaces"
	"github.com/carbonlens/ghgreview/internal/model"
)

func TestNewExporterUnknownBackend(t *testing.T) {
	_, err := NewExporter(config.ExportConfig{Backend: "docx"}, interfaces.NewTestLogger(false))
	if err == nil {
		t.Fatal("expected error for unregistered backend")
	}
	if !strings.Contains(err.Error(), "docx") {
		t.Errorf("error should name the backend: %v", err)
	}
}

func TestNewExporterDefaultsToHTML(t *testing.T) {
	RegisterDefaultBackends()

	exp, err := NewExporter(config.ExportConfig{}, interfaces.NewTestLogger(false))
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}
	if _, ok := exp.(*HTMLExporter); !ok {
		t.Errorf("expected HTMLExporter, got %T", exp)
	}
}

func TestHTMLExporterProducesDocument(t *testing.T) {
	exp := NewHTMLExporter(interfaces.NewTestLogger(false))

	tree := &model.RenderTree{
		Sections: []model.RenderNode{{Title: "Facility Reports"}},
	}
	doc, contentType, err := exp.Export(context.Background(), "Review", tree)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if contentType != "text/html; charset=utf-8" {
		t.Errorf("content type = %q", contentType)
	}
	if !strings.Contains(string(doc), "Facility Reports") {
		t.Error("document should contain the section title")
	}
}

func TestHTMLExporterHonoursCancelledContext(t *testing.T) {
	exp := NewHTMLExporter(interfaces.NewTestLogger(false))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := exp.Export(ctx, "Review", &model.RenderTree{}); err == nil {
		t.Error("expected error from cancelled context")
	}
}
