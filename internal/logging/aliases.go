package logging

import "github.com/carbonlens/ghgreview/internal/interfaces"

// Aliases so callers can take a logger without importing interfaces directly.
type (
	Logger = interfaces.Logger
	Field  = interfaces.Field
)
