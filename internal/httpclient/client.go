package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ev-marketplace/internal/marketerrors"
	"ev-marketplace/utils"
)

// TokenSource yields the bearer credential to attach, or "" when signed out.
type TokenSource interface {
	Token() (string, error)
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource
	Headers http.Header
	// HTTPClient overrides the default transport, mostly for tests.
	HTTPClient *http.Client
}

// Client sends JSON requests to one base URL and normalizes failures into
// NetworkError, HTTPError and DecodeError. It never retries.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	headers http.Header
}

// Request is one outbound call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header
}

// New builds a Client. BaseURL must be absolute.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/") + "/")
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("httpclient: invalid base url %q", opts.BaseURL)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: base,
		http:    hc,
		tokens:  opts.Tokens,
		headers: opts.Headers,
	}, nil
}

// Do sends a request and decodes the {success, message, data} envelope,
// storing data into out when out is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, status, err := c.send(ctx, Request{Method: method, Path: path, Query: query, Body: body})
	if err != nil {
		return err
	}

	var env struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return &marketerrors.DecodeError{Err: fmt.Errorf("%s %s: %w", method, path, err)}
	}
	if !env.Success {
		return &marketerrors.HTTPError{Status: status, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &marketerrors.DecodeError{Err: fmt.Errorf("%s %s data: %w", method, path, err)}
	}
	return nil
}

// Send performs a request and returns the raw body of a 2xx answer.
func (c *Client) Send(ctx context.Context, req Request) ([]byte, error) {
	raw, _, err := c.send(ctx, req)
	return raw, err
}

func (c *Client) send(ctx context.Context, req Request) ([]byte, int, error) {
	op := req.Method + " " + req.Path

	target, err := c.resolve(req.Path, req.Query)
	if err != nil {
		return nil, 0, err
	}

	var payload io.Reader
	if req.Body != nil {
		buf, err := json.Marshal(req.Body)
		if err != nil {
			return nil, 0, fmt.Errorf("httpclient: encode %s body: %w", op, err)
		}
		payload = bytes.NewReader(buf)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, payload)
	if err != nil {
		return nil, 0, fmt.Errorf("httpclient: build %s: %w", op, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	c.authorize(httpReq)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, 0, ctxErr
		}
		return nil, 0, &marketerrors.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &marketerrors.NetworkError{Op: op, Err: err}
	}

	utils.Debug("http request", map[string]any{
		"method":  req.Method,
		"path":    req.Path,
		"status":  resp.StatusCode,
		"latency": time.Since(start).String(),
	})

	if resp.StatusCode >= http.StatusBadRequest {
		return raw, resp.StatusCode, &marketerrors.HTTPError{Status: resp.StatusCode, Message: errorMessage(raw, resp.StatusCode)}
	}
	return raw, resp.StatusCode, nil
}

func (c *Client) resolve(path string, query url.Values) (string, error) {
	rel, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return "", fmt.Errorf("httpclient: invalid path %q: %w", path, err)
	}
	u := c.baseURL.ResolveReference(rel)
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	token, err := c.tokens.Token()
	if err != nil {
		// An unreadable profile slot is treated as signed out.
		utils.Warn("could not read session token", map[string]any{"error": err.Error()})
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// errorMessage extracts "message" (or "error") from an error body.
func errorMessage(raw []byte, status int) string {
	var body struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if s, ok := body.Error.(string); ok && s != "" {
			return s
		}
		if m, ok := body.Error.(map[string]any); ok {
			if s, ok := m["message"].(string); ok && s != "" {
				return s
			}
		}
	}
	return http.StatusText(status)
}

// IsCanceled reports whether err came from a canceled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
