package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"slaved/internal/api"
)

// ErrDaemonUnavailable reports that no daemon address was configured.
var ErrDaemonUnavailable = errors.New("slave daemon unavailable")

// StatusError carries the HTTP status and body of a failed request, so
// callers can surface messages like the registration 403 verbatim.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("slave returned status %d", e.Code)
}

// Client talks to a running slave daemon over its web UI endpoints.
type Client struct {
	base *url.URL
	http *http.Client
}

// New builds a client for the given bind address ("host:port" or a full URL).
func New(bind string) (*Client, error) {
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return nil, ErrDaemonUnavailable
	}
	if !strings.Contains(bind, "://") {
		bind = "http://" + bind
	}
	base, err := url.Parse(bind)
	if err != nil {
		return nil, fmt.Errorf("parse daemon address: %w", err)
	}
	base.Path = ""
	base.RawQuery = ""
	base.Fragment = ""

	return &Client{
		base: base,
		http: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Status fetches the daemon's runtime status.
func (c *Client) Status(ctx context.Context) (api.SlaveStatus, error) {
	var status api.SlaveStatus
	if err := c.getJSON(ctx, "/api/status", &status); err != nil {
		return api.SlaveStatus{}, err
	}
	return status, nil
}

// Frameworks fetches the frameworks registered on the slave.
func (c *Client) Frameworks(ctx context.Context) ([]api.Framework, error) {
	var resp api.FrameworkListResponse
	if err := c.getJSON(ctx, "/api/frameworks", &resp); err != nil {
		return nil, err
	}
	return resp.Frameworks, nil
}

// SlaveLog fetches the slave's own log at the given level. A positive lines
// value requests only the trailing lines.
func (c *Client) SlaveLog(ctx context.Context, level string, lines int) (string, error) {
	path := "/log/" + strings.ToUpper(strings.TrimSpace(level))
	if lines > 0 {
		path += "/" + strconv.Itoa(lines)
	}
	return c.getText(ctx, path)
}

// FrameworkLog fetches a framework's stdout or stderr log.
func (c *Client) FrameworkLog(ctx context.Context, frameworkID int64, logType string, lines int) (string, error) {
	path := fmt.Sprintf("/framework-logs/%d/%s", frameworkID, strings.ToLower(strings.TrimSpace(logType)))
	if lines > 0 {
		path += "/" + strconv.Itoa(lines)
	}
	return c.getText(ctx, path)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.get(ctx, path, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) getText(ctx context.Context, path string) (string, error) {
	body, err := c.get(ctx, path, "text/plain")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) get(ctx context.Context, path string, accept string) ([]byte, error) {
	if c == nil {
		return nil, ErrDaemonUnavailable
	}
	endpoint := c.base.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contact slave daemon: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	return body, nil
}
