// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/carbonlens/ghgreview/internal/logging"
	"github.com/carbonlens/ghgreview/internal/model"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// ─── ReportSource ──────────────────────────────────────────────────────

// DummyReportSource implements interfaces.ReportSource from preconfigured
// data. Set Err to force every call to fail; set Delay to simulate a slow
// backend that honours context cancellation.
type DummyReportSource struct {
	Versions map[string]*model.ReportVersion
	Records  []model.ChangeRecord
	Err      error
	Delay    time.Duration

	mu        sync.Mutex
	DiffCalls int
}

func (d *DummyReportSource) GetVersion(ctx context.Context, reportID, versionID string) (*model.ReportVersion, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	v, ok := d.Versions[reportID+"/"+versionID]
	if !ok {
		return nil, &errString{"version not found: " + reportID + "/" + versionID}
	}
	return v, nil
}

func (d *DummyReportSource) GetDiff(ctx context.Context, reportID, baseVersion, headVersion string) ([]model.ChangeRecord, error) {
	if d.Delay > 0 {
		select {
		case <-time.After(d.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	d.mu.Lock()
	d.DiffCalls++
	d.mu.Unlock()

	if d.Err != nil {
		return nil, d.Err
	}
	return append([]model.ChangeRecord(nil), d.Records...), nil
}

func (d *DummyReportSource) Close() error { return nil }

// ─── Exporter ──────────────────────────────────────────────────────────

// DummyExporter implements interfaces.Exporter, recording export titles.
type DummyExporter struct {
	ContentType string
	Err         error

	mu     sync.Mutex
	Titles []string
}

func (d *DummyExporter) Export(_ context.Context, title string, _ *model.RenderTree) ([]byte, string, error) {
	if d.Err != nil {
		return nil, "", d.Err
	}
	d.mu.Lock()
	d.Titles = append(d.Titles, title)
	d.mu.Unlock()

	ct := d.ContentType
	if ct == "" {
		ct = "text/plain"
	}
	return []byte("export:" + title), ct, nil
}

// ─── helpers ───────────────────────────────────────────────────────────

type errString struct{ s string }

func (e *errString) Error() string { return e.s }
