package export

import (
	"context"

	"github.com/carbonlens/ghgreview/internal/htmlreport"
	"github.com/carbonlens/ghgreview/internal/interfaces"
	"github.com/carbonlens/ghgreview/internal/model"
)

// HTMLExporter writes the review as a standalone HTML document.
type HTMLExporter struct {
	logger interfaces.Logger
}

func NewHTMLExporter(logger interfaces.Logger) *HTMLExporter {
	return &HTMLExporter{logger: logger}
}

func (e *HTMLExporter) Export(ctx context.Context, title string, tree *model.RenderTree) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	doc, err := htmlreport.Render(title, tree)
	if err != nil {
		return nil, "", err
	}
	if e.logger != nil {
		e.logger.Debug("exported html report",
			interfaces.Field{Key: "title", Value: title},
			interfaces.Field{Key: "bytes", Value: len(doc)})
	}
	return doc, "text/html; charset=utf-8", nil
}
