package reportclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carbonlens/ghgreview/internal/interfaces"
	"github.com/carbonlens/ghgreview/internal/model"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/reports/r-1/versions/v2", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"report_id":"r-1","version_id":"v2","document":{"report_operation":{"operator_legal_name":"Acme"}}}`))
	})
	mux.HandleFunc("/reports/r-1/diff", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("base_version") != "v1" || r.URL.Query().Get("head_version") != "v2" {
			http.Error(w, "bad version pair", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"field":"root['report_operation']['operator_legal_name']","oldValue":"Acme","newValue":"Acme Corp","changeType":"modified"}]`))
	})
	return httptest.NewServer(mux)
}

func TestClient_GetVersion(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL}, interfaces.NewTestLogger(false), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	rv, err := c.GetVersion(context.Background(), "r-1", "v2")
	if err != nil {
		t.Fatalf("GetVersion: %v", err)
	}
	if rv.VersionID != "v2" {
		t.Errorf("VersionID = %q, want v2", rv.VersionID)
	}
	if rv.Document["report_operation"] == nil {
		t.Error("expected document payload")
	}
}

func TestClient_GetDiff_CamelCaseKeysAccepted(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL}, interfaces.NewTestLogger(false), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	records, err := c.GetDiff(context.Background(), "r-1", "v1", "v2")
	if err != nil {
		t.Fatalf("GetDiff: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.OldValue != "Acme" || rec.NewValue != "Acme Corp" {
		t.Errorf("camelCase keys not decoded: %+v", rec)
	}
	if rec.ChangeType != model.ChangeModified {
		t.Errorf("ChangeType = %q, want modified", rec.ChangeType)
	}
}

func TestClient_BackendError(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL}, interfaces.NewTestLogger(false), nil)
	defer c.Close()

	if _, err := c.GetDiff(context.Background(), "r-1", "bogus", "v2"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}, interfaces.NewTestLogger(false), nil); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}
