package interfaces

import (
	"context"

	"github.com/carbonlens/ghgreview/internal/model"
)

// ReportSource is the cross-package contract for the upstream reporting
// backend: it supplies full report-version documents and the pre-computed
// flat diff between two versions. Implementations should be safe for
// concurrent use.
type ReportSource interface {
	// GetVersion fetches one stored version of a report document.
	GetVersion(ctx context.Context, reportID, versionID string) (*model.ReportVersion, error)

	// GetDiff fetches the flat change list between two versions of a report.
	GetDiff(ctx context.Context, reportID, baseVersion, headVersion string) ([]model.ChangeRecord, error)

	// Close releases resources held by the source.
	Close() error
}

// Exporter turns a rendered review tree into a downloadable audit document.
type Exporter interface {
	// Export renders the tree. It returns the document bytes and the MIME
	// content type to serve them with.
	Export(ctx context.Context, title string, tree *model.RenderTree) ([]byte, string, error)
}
