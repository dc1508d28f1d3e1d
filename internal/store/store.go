// Package store persists completed review runs in SQLite so auditors can
// re-open the exact tree a past review produced instead of recomputing it
// against a backend that may have moved on.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/carbonlens/ghgreview/internal/logging"
	"github.com/carbonlens/ghgreview/internal/model"

	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed schema.sql
var schemaFS embed.FS

var ErrRunNotFound = errors.New("review run not found")

// Config controls on-disk placement of the store.
type Config struct {
	// Path is the directory holding reviews.db. Empty means in-memory
	// (tests).
	Path string `json:"path" yaml:"path"`
}

// ReviewRun is one persisted review: the request parameters plus the
// rendered tree, frozen at computation time.
type ReviewRun struct {
	ID                  string                    `json:"id"`
	ReportID            string                    `json:"report_id"`
	BaseVersion         string                    `json:"base_version"`
	HeadVersion         string                    `json:"head_version"`
	Flow                model.Flow                `json:"flow,omitempty"`
	RegistrationPurpose model.RegistrationPurpose `json:"registration_purpose,omitempty"`
	RequestedBy         string                    `json:"requested_by,omitempty"`
	RecordCount         int                       `json:"record_count"`
	Tree                *model.RenderTree         `json:"tree,omitempty"`
	CreatedAt           time.Time                 `json:"created_at"`
}

// Store wraps the SQLite handle.
type Store struct {
	db     *sql.DB
	logger logging.Logger
}

// Open creates the database (and its directory) if needed and applies the
// schema.
func Open(cfg Config, logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewStdoutLogger("store")
	}

	dsn := ":memory:"
	if cfg.Path != "" {
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("ensure store directory %s: %w", cfg.Path, err)
		}
		dsn = filepath.Join(cfg.Path, "reviews.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open reviews database: %w", err)
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	logger.Info("review store opened", logging.Field{Key: "dsn", Value: dsn})
	return &Store{db: db, logger: logger}, nil
}

// Save assigns the run an id and timestamp and inserts it. The passed run
// is updated in place with both.
func (s *Store) Save(ctx context.Context, run *ReviewRun) error {
	if run == nil {
		return errors.New("nil run")
	}
	if run.Tree == nil {
		return errors.New("run has no rendered tree")
	}

	treeJSON, err := json.Marshal(run.Tree)
	if err != nil {
		return fmt.Errorf("marshal tree: %w", err)
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO review_runs
			(id, report_id, base_version, head_version, flow, registration_purpose,
			 requested_by, record_count, tree_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.ReportID, run.BaseVersion, run.HeadVersion,
		string(run.Flow), string(run.RegistrationPurpose),
		run.RequestedBy, run.RecordCount,
		string(treeJSON), run.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert review run: %w", err)
	}

	s.logger.Info("review run saved",
		logging.Field{Key: "run_id", Value: run.ID},
		logging.Field{Key: "report_id", Value: run.ReportID})
	return nil
}

// Get returns one run including its tree.
func (s *Store) Get(ctx context.Context, runID string) (*ReviewRun, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, report_id, base_version, head_version, flow, registration_purpose,
		       requested_by, record_count, tree_json, created_at
		FROM review_runs WHERE id = ?`, runID)

	run, err := scanRun(row, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	return run, err
}

// List returns recent runs, newest first, without their trees. reportID
// filters when non-empty.
func (s *Store) List(ctx context.Context, reportID string, limit int) ([]*ReviewRun, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, report_id, base_version, head_version, flow, registration_purpose,
		       requested_by, record_count, tree_json, created_at
		FROM review_runs`
	args := []any{}
	if reportID != "" {
		query += ` WHERE report_id = ?`
		args = append(args, reportID)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list review runs: %w", err)
	}
	defer rows.Close()

	var runs []*ReviewRun
	for rows.Next() {
		run, err := scanRun(rows, false)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner, withTree bool) (*ReviewRun, error) {
	var (
		run       ReviewRun
		treeJSON  string
		createdAt string
		flow      string
		purpose   string
	)
	err := row.Scan(&run.ID, &run.ReportID, &run.BaseVersion, &run.HeadVersion,
		&flow, &purpose, &run.RequestedBy, &run.RecordCount,
		&treeJSON, &createdAt)
	if err != nil {
		return nil, err
	}

	run.Flow = model.Flow(flow)
	run.RegistrationPurpose = model.RegistrationPurpose(purpose)
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		run.CreatedAt = t
	}
	if withTree {
		var tree model.RenderTree
		if err := json.Unmarshal([]byte(treeJSON), &tree); err != nil {
			return nil, fmt.Errorf("decode stored tree: %w", err)
		}
		run.Tree = &tree
	}
	return &run, nil
}
