// Package app wires the review engine to its backing services and runs
// review computations as cancellable jobs.
package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carbonlens/ghgreview/internal/config"
	"github.com/carbonlens/ghgreview/internal/interfaces"
	"github.com/carbonlens/ghgreview/internal/logging"
	"github.com/carbonlens/ghgreview/internal/model"
	"github.com/carbonlens/ghgreview/internal/review"
	"github.com/carbonlens/ghgreview/internal/store"
)

type JobEventType string

const (
	JobEventStatus JobEventType = "status"
	JobEventResult JobEventType = "result"
)

type JobEvent struct {
	JobID string       `json:"job_id"`
	Type  JobEventType `json:"type"`

	// For status changes
	Status JobStatus `json:"status,omitempty"`
	Error  string    `json:"error,omitempty"`

	// Set on result events
	RunID string `json:"run_id,omitempty"`
}

type JobStatus string

const (
	JobPending  JobStatus = "pending"
	JobRunning  JobStatus = "running"
	JobDone     JobStatus = "done"
	JobFailed   JobStatus = "failed"
	JobCanceled JobStatus = "canceled"
)

// ReviewRequest names the two report versions to review and the review
// context that drives section visibility.
type ReviewRequest struct {
	ReportID            string                    `json:"report_id"`
	BaseVersion         string                    `json:"base_version"`
	HeadVersion         string                    `json:"head_version"`
	Flow                model.Flow                `json:"flow,omitempty"`
	RegistrationPurpose model.RegistrationPurpose `json:"registration_purpose,omitempty"`
	RequestedBy         string                    `json:"requested_by,omitempty"`
}

type Job struct {
	ID        string        `json:"id"`
	Request   ReviewRequest `json:"request"`
	Status    JobStatus     `json:"status"`
	Error     string        `json:"error,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   time.Time     `json:"ended_at"`
	Events    chan JobEvent `json:"-"`

	// Set when the job completes
	RunID string `json:"run_id,omitempty"`
}

type Orchestrator struct {
	cfg      *config.Config
	source   interfaces.ReportSource
	store    *store.Store
	exporter interfaces.Exporter
	logger   logging.Logger

	jobsMu     sync.Mutex
	jobs       map[string]*Job
	jobCancels map[string]context.CancelFunc
}

// NewOrchestrator ties together config, report source, run store, exporter
// and logger.
func NewOrchestrator(cfg *config.Config, source interfaces.ReportSource, st *store.Store, exporter interfaces.Exporter, logger logging.Logger) *Orchestrator {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.NewStdoutLogger("orchestrator")
	}
	return &Orchestrator{
		cfg:      cfg,
		source:   source,
		store:    st,
		exporter: exporter,
		logger:   logger,
	}
}

// RunReview fetches the change records for the requested version pair,
// runs the engine, persists the result and returns the saved run.
func (o *Orchestrator) RunReview(ctx context.Context, req ReviewRequest) (*store.ReviewRun, error) {
	records, err := o.source.GetDiff(ctx, req.ReportID, req.BaseVersion, req.HeadVersion)
	if err != nil {
		return nil, fmt.Errorf("fetch diff for report %s: %w", req.ReportID, err)
	}

	engine := review.NewEngine(o.logger)
	tree := engine.Review(records, review.Options{
		Flow:                req.Flow,
		RegistrationPurpose: req.RegistrationPurpose,
	})

	run := &store.ReviewRun{
		ReportID:            req.ReportID,
		BaseVersion:         req.BaseVersion,
		HeadVersion:         req.HeadVersion,
		Flow:                req.Flow,
		RegistrationPurpose: req.RegistrationPurpose,
		RequestedBy:         req.RequestedBy,
		RecordCount:         len(records),
		Tree:                tree,
	}
	if err := o.store.Save(ctx, run); err != nil {
		return nil, err
	}

	o.logger.Info("review completed",
		logging.Field{Key: "run_id", Value: run.ID},
		logging.Field{Key: "report_id", Value: req.ReportID},
		logging.Field{Key: "records", Value: len(records)})
	return run, nil
}

// GetRun returns a persisted run including its tree.
func (o *Orchestrator) GetRun(ctx context.Context, runID string) (*store.ReviewRun, error) {
	return o.store.Get(ctx, runID)
}

// ListRuns returns recent runs, optionally filtered by report.
func (o *Orchestrator) ListRuns(ctx context.Context, reportID string, limit int) ([]*store.ReviewRun, error) {
	return o.store.List(ctx, reportID, limit)
}

// ExportRun renders a persisted run through the configured export backend.
func (o *Orchestrator) ExportRun(ctx context.Context, runID string) ([]byte, string, error) {
	run, err := o.store.Get(ctx, runID)
	if err != nil {
		return nil, "", err
	}
	title := fmt.Sprintf("Change Review: Report %s (v%s to v%s)", run.ReportID, run.BaseVersion, run.HeadVersion)
	return o.exporter.Export(ctx, title, run.Tree)
}

func (o *Orchestrator) emitJobEvent(jobID string, ev JobEvent) {
	o.jobsMu.Lock()
	job, ok := o.jobs[jobID]
	o.jobsMu.Unlock()
	if !ok || job == nil || job.Events == nil {
		return
	}

	// Non-blocking send; drop if buffer is full.
	select {
	case job.Events <- ev:
	default:
	}
}

func (o *Orchestrator) setJob(job *Job) {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	if o.jobs == nil {
		o.jobs = make(map[string]*Job)
	}
	o.jobs[job.ID] = job
}

func (o *Orchestrator) setCancel(jobID string, cancel context.CancelFunc) {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	if o.jobCancels == nil {
		o.jobCancels = make(map[string]context.CancelFunc)
	}
	o.jobCancels[jobID] = cancel
}

func (o *Orchestrator) deleteCancel(jobID string) {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	delete(o.jobCancels, jobID)
}

func (o *Orchestrator) getCancel(jobID string) context.CancelFunc {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	return o.jobCancels[jobID]
}

// StartReviewJob runs RunReview in the background and returns immediately.
// Progress is observable through the job's Events channel, which is closed
// when the job reaches a terminal state.
func (o *Orchestrator) StartReviewJob(ctx context.Context, req ReviewRequest) (*Job, error) {
	jobID := uuid.New().String()

	job := &Job{
		ID:        jobID,
		Request:   req,
		Status:    JobPending,
		StartedAt: time.Now().UTC(),
		Events:    make(chan JobEvent, 16),
	}
	o.setJob(job)

	jobCtx, cancel := context.WithCancel(ctx)
	o.setCancel(jobID, cancel)

	o.emitJobEvent(jobID, JobEvent{
		JobID:  jobID,
		Type:   JobEventStatus,
		Status: JobPending,
	})

	go func() {
		defer func() {
			o.jobsMu.Lock()
			j := o.jobs[jobID]
			if j != nil {
				j.EndedAt = time.Now().UTC()
			}
			o.jobsMu.Unlock()
			o.deleteCancel(jobID)
			if j != nil && j.Events != nil {
				close(j.Events)
			}
		}()

		o.jobsMu.Lock()
		if j, ok := o.jobs[jobID]; ok {
			j.Status = JobRunning
		}
		o.jobsMu.Unlock()
		o.emitJobEvent(jobID, JobEvent{
			JobID:  jobID,
			Type:   JobEventStatus,
			Status: JobRunning,
		})

		run, err := o.RunReview(jobCtx, req)
		if err != nil {
			select {
			case <-jobCtx.Done():
				o.finishJob(jobID, JobCanceled, jobCtx.Err().Error(), "")
			default:
				o.finishJob(jobID, JobFailed, err.Error(), "")
			}
			return
		}

		select {
		case <-jobCtx.Done():
			o.finishJob(jobID, JobCanceled, jobCtx.Err().Error(), "")
		default:
			o.finishJob(jobID, JobDone, "", run.ID)
		}
	}()

	return job, nil
}

func (o *Orchestrator) finishJob(jobID string, status JobStatus, errMsg, runID string) {
	o.jobsMu.Lock()
	if j, ok := o.jobs[jobID]; ok {
		j.Status = status
		j.Error = errMsg
		j.RunID = runID
	}
	o.jobsMu.Unlock()

	evType := JobEventStatus
	if status == JobDone {
		evType = JobEventResult
	}
	o.emitJobEvent(jobID, JobEvent{
		JobID:  jobID,
		Type:   evType,
		Status: status,
		Error:  errMsg,
		RunID:  runID,
	})
}

func (o *Orchestrator) CancelJob(jobID string) {
	cancel := o.getCancel(jobID)
	if cancel != nil {
		cancel()
	}
}

func (o *Orchestrator) GetJob(jobID string) *Job {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	return o.jobs[jobID]
}

// ListJobs returns all known jobs, newest first.
func (o *Orchestrator) ListJobs() []*Job {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	out := make([]*Job, 0, len(o.jobs))
	for _, j := range o.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool {
		return out[i].StartedAt.After(out[k].StartedAt)
	})
	return out
}

// Close releases the orchestrator's backing services.
func (o *Orchestrator) Close() error {
	if o.source != nil {
		if err := o.source.Close(); err != nil {
			o.logger.Warn("closing report source", logging.Field{Key: "error", Value: err.Error()})
		}
	}
	if o.store != nil {
		return o.store.Close()
	}
	return nil
}
