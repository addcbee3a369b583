// Package client talks to an Elasticsearch-compatible engine over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/adfharrison1/go-esmigrate/pkg/domain"
)

// Client is a domain.EngineClient over the engine's REST API.
// Only reads are retried; mutating requests are sent exactly once.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retries    uint64
	backoff    time.Duration
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRetries sets how many times a failed read is retried
func WithRetries(retries uint64) Option {
	return func(c *Client) {
		c.retries = retries
	}
}

// WithBackoff sets the base of the Fibonacci backoff between read retries
func WithBackoff(backoff time.Duration) Option {
	return func(c *Client) {
		c.backoff = backoff
	}
}

// New creates a client for the engine at baseURL
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		retries:    3,
		backoff:    200 * time.Millisecond,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// ResponseError is an error reported by the engine
type ResponseError struct {
	Status int
	Type   string
	Reason string
}

func (e *ResponseError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("engine returned status %d: %s", e.Status, e.Reason)
	}
	return fmt.Sprintf("engine returned status %d: %s: %s", e.Status, e.Type, e.Reason)
}

type aliasesEntry struct {
	Aliases map[string]json.RawMessage `json:"aliases"`
}

// ListAliases reads GET /_aliases, retrying transport failures and 5xx responses
func (c *Client) ListAliases(ctx context.Context) (domain.AliasMap, error) {
	var raw map[string]aliasesEntry

	backoff := retry.WithMaxRetries(c.retries, retry.NewFibonacci(c.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		raw = nil
		err := c.do(ctx, http.MethodGet, "/_aliases", nil, &raw)
		if retryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	aliasMap := make(domain.AliasMap, len(raw))
	for index, entry := range raw {
		aliases := make([]string, 0, len(entry.Aliases))
		for alias := range entry.Aliases {
			aliases = append(aliases, alias)
		}
		sort.Strings(aliases)
		aliasMap[index] = aliases
	}
	return aliasMap, nil
}

// CreateIndex sends PUT /{name} with the body
func (c *Client) CreateIndex(ctx context.Context, name string, body domain.IndexBody) (domain.Response, error) {
	if body == nil {
		body = domain.IndexBody{}
	}
	var response domain.Response
	if err := c.do(ctx, http.MethodPut, "/"+url.PathEscape(name), body, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// Reindex sends POST /_reindex
func (c *Client) Reindex(ctx context.Context, req domain.ReindexRequest) (domain.Response, error) {
	dest := map[string]interface{}{"index": req.Dest}
	if req.VersionType != "" {
		dest["version_type"] = req.VersionType
	}
	body := map[string]interface{}{
		"source": map[string]interface{}{"index": req.Source},
		"dest":   dest,
	}

	var response domain.Response
	if err := c.do(ctx, http.MethodPost, "/_reindex", body, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// UpdateAliases sends POST /_aliases with the actions as one batch
func (c *Client) UpdateAliases(ctx context.Context, actions []domain.AliasAction) (domain.Response, error) {
	body := map[string]interface{}{"actions": actions}

	var response domain.Response
	if err := c.do(ctx, http.MethodPost, "/_aliases", body, &response); err != nil {
		return nil, err
	}
	return response, nil
}

// DeleteIndex sends DELETE /{name}
func (c *Client) DeleteIndex(ctx context.Context, name string) (domain.Response, error) {
	var response domain.Response
	if err := c.do(ctx, http.MethodDelete, "/"+url.PathEscape(name), nil, &response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp.StatusCode, payload)
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

type errorEnvelope struct {
	Error json.RawMessage `json:"error"`
}

type errorCause struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// decodeError reads an Elasticsearch error envelope; "error" may be an object or a plain string
func decodeError(status int, payload []byte) error {
	respErr := &ResponseError{Status: status, Reason: http.StatusText(status)}

	var envelope errorEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil || len(envelope.Error) == 0 {
		if text := strings.TrimSpace(string(payload)); text != "" {
			respErr.Reason = text
		}
		return respErr
	}

	var cause errorCause
	if err := json.Unmarshal(envelope.Error, &cause); err == nil {
		respErr.Type = cause.Type
		respErr.Reason = cause.Reason
		return respErr
	}

	var text string
	if err := json.Unmarshal(envelope.Error, &text); err == nil {
		respErr.Reason = text
	}
	return respErr
}

// retryable reports whether a read failed in a way worth repeating
func retryable(err error) bool {
	if err == nil {
		return false
	}
	if respErr, ok := err.(*ResponseError); ok {
		return respErr.Status >= http.StatusInternalServerError
	}
	// transport failure
	return true
}

var _ domain.EngineClient = (*Client)(nil)
