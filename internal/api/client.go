// Package api is the HTTP client for the RAG service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 120 * time.Second

	queryPath  = "/api/v1/rag/query"
	healthPath = "/api/v1/rag/health"

	// MaxResponseSize caps how much of a reply body is read.
	MaxResponseSize = 10 * 1024 * 1024
)

// Client talks to one RAG service. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithToken sets a static bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func NewClient(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// WithAPIKey returns a copy of c that sends key as its bearer token. The
// copy shares the underlying http.Client.
func (c *Client) WithAPIKey(key string) *Client {
	cp := *c
	cp.token = key
	return &cp
}

// Query posts a question and returns the generated answer.
func (c *Client) Query(ctx context.Context, req QueryRequest) (QueryResponse, error) {
	out, _, err := c.QueryRaw(ctx, req)
	return out, err
}

// Health checks that the service is reachable.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	if err := c.do(ctx, http.MethodGet, healthPath, nil, &out); err != nil {
		return out, errors.Wrap(err, "health")
	}
	return out, nil
}

// QueryRaw is Query but also hands back the undecoded body for debug display.
func (c *Client) QueryRaw(ctx context.Context, req QueryRequest) (QueryResponse, []byte, error) {
	var raw json.RawMessage
	var out QueryResponse
	if strings.TrimSpace(req.Query) == "" {
		return out, nil, ErrEmptyQuery
	}
	body, err := json.Marshal(req)
	if err != nil {
		return out, nil, errors.Wrap(err, "encode query")
	}
	if err := c.do(ctx, http.MethodPost, queryPath, body, &raw); err != nil {
		return out, nil, errors.Wrap(err, "query")
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, raw, errors.Wrap(err, "decode query response")
	}
	return out, raw, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if tok := strings.TrimSpace(c.token); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Detail: detailFrom(data)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// detailFrom pulls the message out of a FastAPI-style error body. Validation
// errors carry a list of objects with a msg field instead of a string.
func detailFrom(body []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &env); err != nil || len(env.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(env.Detail, &s); err == nil {
		return s
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(env.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
