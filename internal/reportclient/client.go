// Package reportclient talks to the upstream reporting REST backend that
// stores submitted report versions and computes flat version-pair diffs.
package reportclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/carbonlens/ghgreview/internal/interfaces"
	"github.com/carbonlens/ghgreview/internal/logging"
	"github.com/carbonlens/ghgreview/internal/model"
)

// Config controls the backend connection.
type Config struct {
	// BaseURL is the backend root, e.g. http://localhost:9999.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// TimeoutSeconds bounds each request; 0 means the 30s default.
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// Client implements interfaces.ReportSource over net/http.
type Client struct {
	base   string
	client *http.Client
	logger logging.Logger
}

var _ interfaces.ReportSource = (*Client)(nil)

// New creates a Client. Pass a non-nil httpClient to override transport
// behavior (tests); otherwise a default client with the configured
// timeout is built.
func New(cfg Config, logger logging.Logger, httpClient *http.Client) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("reportclient: base URL is required")
	}
	if logger == nil {
		logger = logging.NewStdoutLogger("reportclient")
	}

	if httpClient == nil {
		timeout := 30 * time.Second
		if cfg.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		base:   strings.TrimRight(cfg.BaseURL, "/"),
		client: httpClient,
		logger: logger.With(logging.Field{Key: "component", Value: "reportclient"}),
	}, nil
}

// GetVersion fetches one stored version of a report document.
func (c *Client) GetVersion(ctx context.Context, reportID, versionID string) (*model.ReportVersion, error) {
	u := fmt.Sprintf("%s/reports/%s/versions/%s", c.base, url.PathEscape(reportID), url.PathEscape(versionID))

	var rv model.ReportVersion
	if err := c.getJSON(ctx, u, &rv); err != nil {
		return nil, fmt.Errorf("get version %s/%s: %w", reportID, versionID, err)
	}
	return &rv, nil
}

// GetDiff fetches the flat change list between two versions.
func (c *Client) GetDiff(ctx context.Context, reportID, baseVersion, headVersion string) ([]model.ChangeRecord, error) {
	u := fmt.Sprintf("%s/reports/%s/diff?base_version=%s&head_version=%s",
		c.base, url.PathEscape(reportID), url.QueryEscape(baseVersion), url.QueryEscape(headVersion))

	var records []model.ChangeRecord
	if err := c.getJSON(ctx, u, &records); err != nil {
		return nil, fmt.Errorf("get diff %s %s..%s: %w", reportID, baseVersion, headVersion, err)
	}
	return records, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	c.logger.Debug("sending http request",
		logging.Field{Key: "method", Value: http.MethodGet},
		logging.Field{Key: "url", Value: u})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("http request failed",
			logging.Field{Key: "url", Value: u},
			logging.Field{Key: "error", Value: err.Error()})
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Close releases resources. The shared http.Client has nothing to close;
// present to satisfy interfaces.ReportSource.
func (c *Client) Close() error { return nil }
