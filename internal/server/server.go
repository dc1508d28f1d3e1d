package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/carbonlens/ghgreview/internal/app"
	"github.com/carbonlens/ghgreview/internal/config"
	"github.com/carbonlens/ghgreview/internal/export"
	"github.com/carbonlens/ghgreview/internal/interfaces"
	"github.com/carbonlens/ghgreview/internal/logging"
	"github.com/carbonlens/ghgreview/internal/model"
	"github.com/carbonlens/ghgreview/internal/reportclient"
	"github.com/carbonlens/ghgreview/internal/store"

	_ "github.com/carbonlens/ghgreview/docs/swagger" // swagger spec registration
)

// Server is the HTTP + WebSocket API surface for the review service.
type Server struct {
	cfg          Config
	orchestrator *app.Orchestrator
	router       chi.Router
	upgrader     websocket.Upgrader
	logger       logging.Logger
}

// NewServer creates a new Server with its own Orchestrator.
func NewServer(cfg Config) (*Server, error) {
	if cfg.AppConfig == nil {
		cfg.AppConfig = config.DefaultConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("Server")
	}

	source := cfg.Source
	if source == nil {
		client, err := reportclient.New(reportclient.Config{
			BaseURL:        cfg.AppConfig.Backend.BaseURL,
			TimeoutSeconds: cfg.AppConfig.Backend.TimeoutSeconds,
		}, logger, nil)
		if err != nil {
			return nil, fmt.Errorf("creating report client: %w", err)
		}
		source = client
	}

	st, err := store.Open(store.Config{Path: cfg.AppConfig.Store.Path}, logger)
	if err != nil {
		return nil, fmt.Errorf("opening review store: %w", err)
	}

	export.RegisterDefaultBackends()
	exporter, err := export.NewExporter(cfg.AppConfig.Export, logger)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating exporter: %w", err)
	}

	orch := app.NewOrchestrator(cfg.AppConfig, source, st, exporter, logger)

	r := chi.NewRouter()
	s := &Server{
		cfg:          cfg,
		orchestrator: orch,
		router:       r,
		logger:       logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: tighten for production
				return true
			},
		},
	}

	s.routes()
	return s, nil
}

// Orchestrator returns the underlying orchestrator for advanced use (tests, etc.).
func (s *Server) Orchestrator() *app.Orchestrator {
	return s.orchestrator
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/reviews", s.optionsHandler("GET, POST"))
	r.Options("/reviews/{runID}", s.optionsHandler("GET"))
	r.Options("/reviews/{runID}/export", s.optionsHandler("GET"))
	r.Options("/jobs", s.optionsHandler("GET, POST"))
	r.Options("/jobs/{jobID}", s.optionsHandler("GET, DELETE"))
	r.Options("/ws/reviews", s.optionsHandler("GET"))

	// Reviews
	r.Post("/reviews", s.handleCreateReview)
	r.Get("/reviews", s.handleListReviews)
	r.Get("/reviews/{runID}", s.handleGetReview)
	r.Get("/reviews/{runID}/export", s.handleExportReview)

	// Jobs over REST
	r.Post("/jobs", s.handleStartReviewJob)
	r.Get("/jobs", s.handleListJobs)
	r.Get("/jobs/{jobID}", s.handleGetJob)
	r.Delete("/jobs/{jobID}", s.handleCancelJob)

	// WebSocket for job progress
	r.Get("/ws/reviews", s.handleReviewWS)

	// API documentation
	r.Get("/swagger/*", httpSwagger.Handler())
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}

	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) {
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, logging.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// Close shuts down the orchestrator and underlying resources.
func (s *Server) Close() {
	if s.orchestrator != nil {
		s.orchestrator.Close()
	}
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeReviewRequest(r *http.Request) (app.ReviewRequest, error) {
	var body StartReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return app.ReviewRequest{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if body.ReportID == "" || body.BaseVersion == "" || body.HeadVersion == "" {
		return app.ReviewRequest{}, fmt.Errorf("report_id, base_version and head_version are required")
	}
	return app.ReviewRequest{
		ReportID:            body.ReportID,
		BaseVersion:         body.BaseVersion,
		HeadVersion:         body.HeadVersion,
		Flow:                model.Flow(body.Flow),
		RegistrationPurpose: model.RegistrationPurpose(body.RegistrationPurpose),
		RequestedBy:         body.RequestedBy,
	}, nil
}

// --- HTTP handlers ---

// Reviews

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReviewRequest(r)
	if err != nil {
		s.logger.Warn("decoding review request", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	run, err := s.orchestrator.RunReview(r.Context(), req)
	if err != nil {
		s.logger.Warn("running review", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("created review run",
		logging.Field{Key: "run_id", Value: run.ID},
		logging.Field{Key: "report_id", Value: run.ReportID})
	writeJSON(w, http.StatusCreated, run)
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	reportID := r.URL.Query().Get("report_id")
	limit := 0
	if ls := r.URL.Query().Get("limit"); ls != "" {
		if v, err := strconv.Atoi(ls); err == nil && v > 0 {
			limit = v
		}
	}

	runs, err := s.orchestrator.ListRuns(r.Context(), reportID, limit)
	if err != nil {
		s.logger.Warn("listing review runs", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []*store.ReviewRun{}
	}
	s.logger.Info("listed review runs", logging.Field{Key: "count", Value: len(runs)})
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")

	run, err := s.orchestrator.GetRun(r.Context(), runID)
	if err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "review run not found")
			return
		}
		s.logger.Warn("getting review run", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleExportReview(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")

	run, err := s.orchestrator.GetRun(r.Context(), runID)
	if err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "review run not found")
			return
		}
		s.logger.Warn("getting review run for export", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	exporter, err := s.exporterFor(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	title := fmt.Sprintf("Change Review: Report %s (v%s to v%s)", run.ReportID, run.BaseVersion, run.HeadVersion)
	doc, contentType, err := exporter.Export(r.Context(), title, run.Tree)
	if err != nil {
		s.logger.Warn("exporting review run", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Info("exported review run",
		logging.Field{Key: "run_id", Value: runID},
		logging.Field{Key: "content_type", Value: contentType})
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// exporterFor builds an exporter for the requested format, falling back to
// the configured backend when format is empty.
func (s *Server) exporterFor(format string) (interfaces.Exporter, error) {
	cfg := s.cfg.AppConfig.Export
	if format != "" {
		if !config.IsValidExportBackend(format) {
			return nil, fmt.Errorf("unsupported export format %q", format)
		}
		cfg.Backend = format
	}
	return export.NewExporter(cfg, s.logger)
}

// Jobs (REST)

func (s *Server) handleStartReviewJob(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReviewRequest(r)
	if err != nil {
		s.logger.Warn("decoding review job request", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := s.orchestrator.StartReviewJob(context.Background(), req)
	if err != nil {
		s.logger.Warn("starting review job", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("started review job",
		logging.Field{Key: "job_id", Value: job.ID},
		logging.Field{Key: "report_id", Value: req.ReportID})
	writeJSON(w, http.StatusAccepted, job)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs := s.orchestrator.ListJobs()
	s.logger.Info("listed jobs", logging.Field{Key: "count", Value: len(jobs)})
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		s.logger.Warn("getting job: not found", logging.Field{Key: "job_id", Value: jobID})
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleCancelJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	s.orchestrator.CancelJob(jobID)
	s.logger.Info("canceled job", logging.Field{Key: "job_id", Value: jobID})
	writeJSON(w, http.StatusNoContent, nil)
}

// WebSocket

func (s *Server) handleReviewWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := app.ReviewRequest{
		ReportID:            q.Get("report_id"),
		BaseVersion:         q.Get("base_version"),
		HeadVersion:         q.Get("head_version"),
		Flow:                model.Flow(q.Get("flow")),
		RegistrationPurpose: model.RegistrationPurpose(q.Get("registration_purpose")),
		RequestedBy:         q.Get("requested_by"),
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	if req.ReportID == "" || req.BaseVersion == "" || req.HeadVersion == "" {
		_ = conn.WriteJSON(map[string]string{"error": "report_id, base_version and head_version are required"})
		return
	}

	job, err := s.orchestrator.StartReviewJob(r.Context(), req)
	if err != nil {
		s.logger.Warn("starting review job", logging.Field{Key: "error", Value: err.Error()})
		_ = conn.WriteJSON(map[string]string{"error": err.Error()})
		return
	}

	s.logger.Info("started review job", logging.Field{Key: "job_id", Value: job.ID})
	_ = conn.WriteJSON(job)

	for ev := range job.Events {
		if err := conn.WriteJSON(ev); err != nil {
			// Assume client disconnected; cancel job
			s.orchestrator.CancelJob(job.ID)
			return
		}
	}
}
