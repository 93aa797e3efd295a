// IAM web service client.
//
// Purpose:
//
//	REST client for the IAM backend. Every request carries the admin
//	credentials as basic auth. Fetches go through the shared retry helper;
//	mutations are issued exactly once and their failures surfaced to the
//	caller.
//
// Dependencies:
//   - net/http: HTTP client
//   - internal/client: retry logic for read paths
//   - go.uber.org/zap: request logging
package iam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ethz-iam/iamctl/internal/client"
)

// legacyConfigPath returns the well-known location of the unsupported
// legacy per-user config. Replaced in tests.
var legacyConfigPath = func() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".ethz_iam")
}

// Client provides access to the IAM web service.
type Client struct {
	baseURL    string
	host       string
	username   string
	password   string
	httpClient *http.Client
	retryCfg   client.RetryConfig
	logger     *zap.Logger
}

// Options tune client construction.
type Options struct {
	Timeout time.Duration // per-request timeout, default 30s
	Logger  *zap.Logger   // default zap.NewNop()
}

// Authenticate constructs a client bound to (username, password, host,
// basePath) and verifies it with a single probe request. Credentials must
// already be resolved; this function never prompts. A probe failure is an
// AuthError and is not retried.
func Authenticate(ctx context.Context, username, password, host, basePath string, opts Options) (*Client, error) {
	if legacy := legacyConfigPath(); legacy != "" {
		if _, err := os.Stat(legacy); err == nil {
			return nil, &UnsupportedConfigError{Path: legacy}
		}
	}

	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password must be resolved before authenticating")
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		baseURL:    strings.TrimRight(host, "/") + basePath,
		host:       host,
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: timeout},
		retryCfg:   client.DefaultRetryConfig(),
		logger:     logger,
	}

	if err := c.probe(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// probe issues one request against the API base to verify reachability and
// credentials. Any HTTP status except 401/403 proves the session.
func (c *Client) probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UnavailableError{Host: c.host, Err: err}
	}
	defer resp.Body.Close()
	c.logRequest(req, resp.StatusCode, start)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &AuthError{Host: c.host, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	return nil
}

// GetPerson fetches a person record by identifier.
func (c *Client) GetPerson(ctx context.Context, id string) (*Person, error) {
	raw, err := c.fetch(ctx, "/persons/"+url.PathEscape(id), "person", id)
	if err != nil {
		return nil, err
	}
	return &Person{ID: id, Raw: raw, client: c}, nil
}

// GetUser fetches a user record by identifier.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	raw, err := c.fetch(ctx, "/usernames/"+url.PathEscape(id), "user", id)
	if err != nil {
		return nil, err
	}
	username := id
	if s, ok := raw["username"].(string); ok && s != "" {
		username = s
	}
	return &User{
		Username: username,
		Services: serviceBindings(raw),
		Raw:      raw,
		client:   c,
	}, nil
}

// GetGroup fetches a group record by identifier.
func (c *Client) GetGroup(ctx context.Context, id string) (*Group, error) {
	raw, err := c.fetch(ctx, "/groups/"+url.PathEscape(id), "group", id)
	if err != nil {
		return nil, err
	}
	name := id
	if s, ok := raw["name"].(string); ok && s != "" {
		name = s
	}
	return &Group{
		Name:    name,
		Raw:     raw,
		members: memberSet(raw),
		client:  c,
	}, nil
}

// fetch performs a GET with retry and decodes the attribute map.
func (c *Client) fetch(ctx context.Context, path, kind, id string) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	start := time.Now()
	resp, err := client.DoWithRetry(ctx, c.httpClient, req, c.retryCfg)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.logRequest(req, resp.StatusCode, start)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &NotFoundError{Kind: kind, ID: id}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &AuthError{Host: c.host, Err: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("get %s %q failed: %s", kind, id, errorMessage(resp))
	}

	var raw map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return raw, nil
}

// do performs a single mutation request, without retry. The returned
// response body is already closed; its decoded attribute map (if any) is
// returned.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, wantStatus ...int) (map[string]interface{}, int, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.logRequest(req, resp.StatusCode, start)

	for _, want := range wantStatus {
		if resp.StatusCode == want {
			var raw map[string]interface{}
			if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil && err != io.EOF {
				return nil, resp.StatusCode, fmt.Errorf("decode response: %w", err)
			}
			return raw, resp.StatusCode, nil
		}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, resp.StatusCode, &AuthError{Host: c.host, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	return nil, resp.StatusCode, fmt.Errorf("%s %s failed: %s", method, path, errorMessage(resp))
}

func (c *Client) logRequest(req *http.Request, status int, start time.Time) {
	c.logger.Debug("iam request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", status),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// errorMessage extracts a diagnostic from an error response body.
func errorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil || len(data) == 0 {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}

	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &parsed); err == nil && parsed.Message != "" {
		return fmt.Sprintf("status %d: %s", resp.StatusCode, parsed.Message)
	}
	return fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
}
