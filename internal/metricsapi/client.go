// Package metricsapi provides a client for the CI test metrics REST API.
package metricsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quay/ci-metrics-dashboard/internal/model"
)

const DefaultBaseURL = "http://127.0.0.1:5000"

// Config holds metrics API connection settings.
type Config struct {
	BaseURL string        // e.g. http://127.0.0.1:5000
	Timeout time.Duration // zero means 30s
}

// Client is a read-only metrics API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new metrics API client.
func New(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the configured metrics API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListRuns returns every run known to the API.
func (c *Client) ListRuns(ctx context.Context) ([]model.TestRun, error) {
	var list model.TestRunList
	if err := c.getJSON(ctx, "list_runs", "/runs", &list); err != nil {
		return nil, err
	}
	return nonNil(list.Runs), nil
}

// ListTests returns the aggregate record of every test.
func (c *Client) ListTests(ctx context.Context) ([]model.Test, error) {
	var list model.TestList
	if err := c.getJSON(ctx, "list_tests", "/tests", &list); err != nil {
		return nil, err
	}
	return nonNil(list.Tests), nil
}

// ListRunsByBuild returns the runs of the named build.
func (c *Client) ListRunsByBuild(ctx context.Context, name string) ([]model.TestRun, error) {
	var list model.TestRunList
	p := "/build_name/" + url.PathEscape(name) + "/runs"
	if err := c.getJSON(ctx, "runs_by_build", p, &list); err != nil {
		return nil, err
	}
	return nonNil(list.Runs), nil
}

// ListResultsByRun returns the results of one run keyed by test name.
func (c *Client) ListResultsByRun(ctx context.Context, runID string) (map[string]model.TestResult, error) {
	results := map[string]model.TestResult{}
	p := "/run/" + url.PathEscape(runID) + "/test_runs"
	if err := c.getJSON(ctx, "results_by_run", p, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = map[string]model.TestResult{}
	}
	return results, nil
}

func (c *Client) getJSON(ctx context.Context, operation, path string, v any) (err error) {
	start := time.Now()
	defer func() { observe(operation, start, err) }()

	reqURL := c.baseURL + path
	body, err := c.doGet(ctx, reqURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &DecodeError{URL: reqURL, Err: err}
	}
	return nil
}

func (c *Client) doGet(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{Kind: Unreachable, URL: reqURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: Unreachable, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: Unreachable, URL: reqURL, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			Kind:       BadResponse,
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", string(body[:min(len(body), 200)])),
		}
	}

	return body, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
