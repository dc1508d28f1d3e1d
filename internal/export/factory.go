// Package export turns rendered review trees into downloadable documents.
// Backends are registered by name so the server can select one from config
// without linking every renderer into the decision.
package export

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/carbonlens/ghgreview/internal/config"
	"github.com/carbonlens/ghgreview/internal/interfaces"
)

// BackendConstructor constructs an interfaces.Exporter given the export
// config and logger.
type BackendConstructor func(cfg config.ExportConfig, logger interfaces.Logger) (interfaces.Exporter, error)

var (
	mu       sync.RWMutex
	registry = map[string]BackendConstructor{}
)

// RegisterBackend registers a named backend constructor. Name is lower-cased
// internally. Registering the same name again overwrites the previous
// constructor.
func RegisterBackend(name string, ctor BackendConstructor) {
	if name == "" || ctor == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(name)] = ctor
}

// NewExporter constructs the configured export backend. It returns an error
// if the named backend has not been registered.
func NewExporter(cfg config.ExportConfig, logger interfaces.Logger) (interfaces.Exporter, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = "html"
	}

	mu.RLock()
	ctor, ok := registry[backend]
	mu.RUnlock()
	if !ok || ctor == nil {
		return nil, fmt.Errorf("export backend %q not registered: available backends=%v", backend, ListBackends())
	}

	exp, err := ctor(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to construct export backend %q: %w", backend, err)
	}
	if exp == nil {
		return nil, errors.New("export constructor returned nil")
	}
	return exp, nil
}

// ListBackends returns the list of registered backend names.
func ListBackends() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	return out
}
