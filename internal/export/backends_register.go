package export

import (
	"time"

	"github.com/carbonlens/ghgreview/internal/config"
	"github.com/carbonlens/ghgreview/internal/interfaces"
)

// RegisterDefaultBackends registers the html and pdf backends. Call this
// early in main() to make backends available to NewExporter.
func RegisterDefaultBackends() {
	RegisterBackend("html", func(cfg config.ExportConfig, logger interfaces.Logger) (interfaces.Exporter, error) {
		return NewHTMLExporter(logger), nil
	})

	RegisterBackend("pdf", func(cfg config.ExportConfig, logger interfaces.Logger) (interfaces.Exporter, error) {
		timeout := time.Duration(cfg.PDFTimeoutSeconds) * time.Second
		return NewPDFExporter(timeout, logger), nil
	})
}
