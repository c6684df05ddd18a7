// Package api is the HTTP client for the Tactyo REST API. It owns
// request construction (credentials, active-project header, request
// ids) and error-body normalization; everything else in the CLI goes
// through it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tactyo/tactyo/internal/state"
)

// sessionCookieName is the cookie the server issues on login.
const sessionCookieName = "tactyo_session"

// Error is an application error extracted from a non-2xx response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is an API error with HTTP 401.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// IsConflict reports whether err is an API error with HTTP 409.
func IsConflict(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Status == http.StatusConflict
}

// Client issues credentialed requests against the Tactyo API. The
// session cookie and the active project id live in the state store so
// they survive between CLI invocations.
type Client struct {
	baseURL string
	http    *http.Client
	state   state.Store
	log     *slog.Logger
}

// NewClient creates a client for the given API base URL, e.g.
// "https://tactyo.example.com". Requests are single-shot: no retries,
// no backoff.
func NewClient(baseURL string, st state.Store, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		state:   st,
		log:     log,
	}
}

// errorBody is the JSON shape of API error responses. Detail is either
// a plain string or FastAPI's list of {loc, msg} validation entries.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type validationEntry struct {
	Msg string `json:"msg"`
}

// normalizeError extracts a human-readable message from an error body,
// falling back to the HTTP status line when the body is not JSON.
func normalizeError(status int, statusLine string, body []byte) *Error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if len(eb.Detail) > 0 {
			var s string
			if err := json.Unmarshal(eb.Detail, &s); err == nil && s != "" {
				return &Error{Status: status, Message: s}
			}
			var entries []validationEntry
			if err := json.Unmarshal(eb.Detail, &entries); err == nil && len(entries) > 0 {
				msgs := make([]string, 0, len(entries))
				for _, entry := range entries {
					if entry.Msg != "" {
						msgs = append(msgs, entry.Msg)
					}
				}
				if len(msgs) > 0 {
					return &Error{Status: status, Message: strings.Join(msgs, "; ")}
				}
			}
		}
		if eb.Message != "" {
			return &Error{Status: status, Message: eb.Message}
		}
	}
	return &Error{Status: status, Message: statusLine}
}

// do issues a single request and decodes the JSON response into out
// (skipped when out is nil). The active-project header and session
// cookie are read from the state store on every call; a Set-Cookie for
// the session is captured back into it.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", ulid.Make().String())

	cookie, err := c.state.Get(ctx, state.KeySessionCookie)
	if err != nil {
		return fmt.Errorf("read session cookie: %w", err)
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	projectID, err := c.state.Get(ctx, state.KeyActiveProjectID)
	if err != nil {
		return fmt.Errorf("read active project: %w", err)
	}
	if projectID != "" {
		req.Header.Set("X-Project-Id", projectID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.DebugContext(ctx, "api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	c.captureSessionCookie(ctx, resp)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return normalizeError(resp.StatusCode, resp.Status, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// captureSessionCookie persists the session cookie whenever the server
// sets or refreshes it.
func (c *Client) captureSessionCookie(ctx context.Context, resp *http.Response) {
	for _, ck := range resp.Cookies() {
		if ck.Name != sessionCookieName {
			continue
		}
		value := ""
		if ck.Value != "" {
			value = ck.Name + "=" + ck.Value
		}
		var err error
		if value == "" {
			err = c.state.Delete(ctx, state.KeySessionCookie)
		} else {
			err = c.state.Set(ctx, state.KeySessionCookie, value)
		}
		if err != nil {
			c.log.WarnContext(ctx, "persist session cookie", "error", err)
		}
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// queryString renders non-empty params as a query string with a
// leading "?", or "" when all params are empty.
func queryString(params map[string]string) string {
	values := url.Values{}
	for k, v := range params {
		if v != "" {
			values.Set(k, v)
		}
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// Ping checks API reachability via GET /api/health.
func (c *Client) Ping(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	return c.get(ctx, "/api/health", &out)
}
