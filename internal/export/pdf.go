package export

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/carbonlens/ghgreview/internal/htmlreport"
	"github.com/carbonlens/ghgreview/internal/interfaces"
	"github.com/carbonlens/ghgreview/internal/model"
)

// PDFExporter prints the HTML report to PDF through a headless browser.
type PDFExporter struct {
	timeout time.Duration
	logger  interfaces.Logger
}

func NewPDFExporter(timeout time.Duration, logger interfaces.Logger) *PDFExporter {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &PDFExporter{timeout: timeout, logger: logger}
}

func (e *PDFExporter) Export(ctx context.Context, title string, tree *model.RenderTree) ([]byte, string, error) {
	doc, err := htmlreport.Render(title, tree)
	if err != nil {
		return nil, "", err
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	ctx, browserCancel := chromedp.NewContext(ctx)
	defer browserCancel()

	var pdf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, string(doc)).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, "", fmt.Errorf("print report to pdf: %w", err)
	}

	if e.logger != nil {
		e.logger.Debug("exported pdf report",
			interfaces.Field{Key: "title", Value: title},
			interfaces.Field{Key: "bytes", Value: len(pdf)})
	}
	return pdf, "application/pdf", nil
}
