// Package demoserver is a stub reporting backend for local development.
// It serves one demo report with two versions and a canned diff touching
// every review section, so the full pipeline can be exercised without the
// real reporting system.
package demoserver

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DemoServer is a simple HTTP server that mimics the reporting backend's
// version and diff endpoints.
type DemoServer struct {
	cfg Config
}

// NewDemoServer creates a new demo backend instance.
func NewDemoServer(cfg Config) *DemoServer {
	return &DemoServer{cfg: cfg}
}

// Handler returns the demo backend's routes.
func (s *DemoServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /reports/{reportID}/versions/{versionID}", s.versionHandler)
	mux.HandleFunc("GET /reports/{reportID}/diff", s.diffHandler)
	return mux
}

// Start starts the demo backend.
func (s *DemoServer) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	fmt.Printf("Demo reporting backend starting on http://localhost%s\n", addr)
	fmt.Printf("Try: GET http://localhost%s/reports/%s/diff?base_version=1&head_version=2\n", addr, DemoReportID)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *DemoServer) versionHandler(w http.ResponseWriter, r *http.Request) {
	reportID := r.PathValue("reportID")
	versionID := r.PathValue("versionID")

	if reportID != DemoReportID {
		writeJSONError(w, http.StatusNotFound, "unknown report: "+reportID)
		return
	}
	version, ok := demoVersions()[versionID]
	if !ok {
		writeJSONError(w, http.StatusNotFound, "unknown version: "+versionID)
		return
	}
	writeJSONBody(w, http.StatusOK, version)
}

func (s *DemoServer) diffHandler(w http.ResponseWriter, r *http.Request) {
	reportID := r.PathValue("reportID")
	if reportID != DemoReportID {
		writeJSONError(w, http.StatusNotFound, "unknown report: "+reportID)
		return
	}

	versions := demoVersions()
	base := r.URL.Query().Get("base_version")
	head := r.URL.Query().Get("head_version")
	if _, ok := versions[base]; !ok {
		writeJSONError(w, http.StatusNotFound, "unknown base version: "+base)
		return
	}
	if _, ok := versions[head]; !ok {
		writeJSONError(w, http.StatusNotFound, "unknown head version: "+head)
		return
	}

	// The demo only knows the forward diff between its two versions.
	if base == head {
		writeJSONBody(w, http.StatusOK, []any{})
		return
	}
	writeJSONBody(w, http.StatusOK, demoDiff())
}

func writeJSONBody(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSONBody(w, status, map[string]string{"error": msg})
}
