package todoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Service defines the todo operations offered by the remote store.
// This interface is implemented by *Client and can be used for testing.
type Service interface {
	List(ctx context.Context) ([]Todo, error)
	Create(ctx context.Context, todo *Todo) (Todo, error)
	Update(ctx context.Context, todo *Todo) (Todo, error)
	Delete(ctx context.Context, todo *Todo) (Ack, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the todo service HTTP API.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	userAgent  string
	logger     *zap.Logger
	strictList bool
}

// Options tune a Client. The zero value is usable.
type Options struct {
	HTTPClient *http.Client
	Timeout    time.Duration // ignored when HTTPClient is set
	Logger     *zap.Logger
	UserAgent  string
	// StrictList makes List report failures like the mutating operations
	// instead of logging them and returning the best-effort payload.
	StrictList bool
}

const (
	// DefaultBaseURL is the service address used when none is configured.
	DefaultBaseURL = "http://localhost:3000"

	defaultUserAgent = "jot/0.1"
	defaultTimeout   = 5 * time.Second
	collectionPath   = "api/"
	maxResponseBytes = 4 << 20
)

// NewClient builds a Client for the service rooted at baseURL.
func NewClient(baseURL string, opts Options) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:    base,
		http:       httpClient,
		userAgent:  userAgent,
		logger:     logger.Named("todoapi"),
		strictList: opts.StrictList,
	}, nil
}

// BaseURL returns the normalized service address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// List retrieves every todo in server order.
//
// Unless the client is strict, failures are only logged: the caller gets
// whatever could be parsed, which may be empty.
func (c *Client) List(ctx context.Context) ([]Todo, error) {
	const op = "list"
	if c == nil {
		return nil, validationError(op, "client is nil")
	}
	rel := &url.URL{Path: collectionPath}
	status, data, err := c.roundTrip(ctx, http.MethodGet, rel, nil)
	if err != nil {
		c.logger.Warn("list todos failed", zap.String("url", c.resolve(rel)), zap.Error(err))
		if c.strictList {
			return nil, transportError(op, "could not reach the todo service")
		}
		return nil, nil
	}
	if !isSuccess(status) {
		c.logger.Warn("list todos returned non-success status",
			zap.String("url", c.resolve(rel)),
			zap.Int("status", status),
		)
		if c.strictList {
			return nil, transportError(op, statusMessage(status))
		}
	}
	todos, ok := decodeList(data)
	if !ok {
		c.logger.Warn("list todos payload unreadable",
			zap.Int("status", status),
			zap.Int("bytes", len(data)),
		)
		if c.strictList {
			return nil, transportError(op, "unreadable response")
		}
	}
	return todos, nil
}

// Create stores a new todo and returns it with the identifier assigned by
// the service.
func (c *Client) Create(ctx context.Context, todo *Todo) (Todo, error) {
	const op = "create"
	if err := c.validate(op, todo, true); err != nil {
		return Todo{}, err
	}
	data, err := c.mutate(ctx, op, http.MethodPost, &url.URL{Path: collectionPath}, todo)
	if err != nil {
		return Todo{}, err
	}
	var resp createResponse
	if err := c.decode(op, data, &resp); err != nil {
		return Todo{}, err
	}
	return resp.merge(*todo), nil
}

// Update replaces the todo identified by todo.ID. Any JSON body counts as
// success; when it is not a todo document the sent todo is returned.
func (c *Client) Update(ctx context.Context, todo *Todo) (Todo, error) {
	const op = "update"
	if err := c.validate(op, todo, true); err != nil {
		return Todo{}, err
	}
	data, err := c.mutate(ctx, op, http.MethodPatch, itemPath(todo.ID), todo)
	if err != nil {
		return Todo{}, err
	}
	resp, err := decodeLoose[createResponse](c, op, data)
	if err != nil {
		return Todo{}, err
	}
	return resp.merge(*todo), nil
}

// Delete removes the todo identified by todo.ID. Any JSON body counts as
// success; Ack.Success is only set when the body is {"success": bool}.
func (c *Client) Delete(ctx context.Context, todo *Todo) (Ack, error) {
	const op = "delete"
	if err := c.validate(op, todo, false); err != nil {
		return Ack{}, err
	}
	data, err := c.mutate(ctx, op, http.MethodDelete, itemPath(todo.ID), nil)
	if err != nil {
		return Ack{}, err
	}
	ack, err := decodeLoose[Ack](c, op, data)
	if err != nil {
		return Ack{}, err
	}
	ack.Raw = json.RawMessage(bytes.TrimSpace(data))
	return ack, nil
}

func (c *Client) validate(op string, todo *Todo, needBody bool) error {
	if c == nil {
		return validationError(op, "client is nil")
	}
	if todo == nil {
		return validationError(op, "todo is missing")
	}
	if needBody && strings.TrimSpace(todo.Body) == "" {
		return validationError(op, "body is empty")
	}
	return nil
}

// mutate issues a request and normalizes every failure into a transport
// error. The underlying cause only reaches the log.
func (c *Client) mutate(ctx context.Context, op, method string, rel *url.URL, payload any) ([]byte, error) {
	start := time.Now()
	status, data, err := c.roundTrip(ctx, method, rel, payload)
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("method", method),
		zap.String("url", c.resolve(rel)),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		c.logger.Error("todo request failed", append(fields, zap.Error(err))...)
		return nil, transportError(op, "could not reach the todo service")
	}
	if !isSuccess(status) {
		c.logger.Error("todo request rejected",
			append(fields, zap.Int("status", status), zap.ByteString("body", truncate(data, 512)))...)
		return nil, transportError(op, statusMessage(status))
	}
	c.logger.Debug("todo request", append(fields, zap.Int("status", status))...)
	return data, nil
}

func (c *Client) decode(op string, data []byte, dest any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	if err := json.Unmarshal(trimmed, dest); err != nil {
		c.logger.Error("decode todo response", zap.String("op", op), zap.Error(err))
		return transportError(op, "unreadable response")
	}
	return nil
}

// decodeLoose returns data decoded as T, or the zero T when data is JSON of
// another shape. Only bodies that are not JSON at all are an error.
func decodeLoose[T any](c *Client, op string, data []byte) (T, error) {
	var out T
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return out, nil
	}
	if !json.Valid(trimmed) {
		c.logger.Error("decode todo response", zap.String("op", op), zap.Int("bytes", len(trimmed)))
		return out, transportError(op, "unreadable response")
	}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		c.logger.Debug("todo response has unexpected shape", zap.String("op", op), zap.Error(err))
		var zero T
		return zero, nil
	}
	return out, nil
}

func (c *Client) roundTrip(ctx context.Context, method string, rel *url.URL, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.resolve(rel), body)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

func (c *Client) resolve(rel *url.URL) string {
	return c.baseURL.ResolveReference(rel).String()
}

func itemPath(id string) *url.URL {
	return &url.URL{
		Path:    collectionPath + id,
		RawPath: collectionPath + url.PathEscape(id),
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func statusMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("service returned status %d (%s)", status, text)
	}
	return fmt.Sprintf("service returned status %d", status)
}

func truncate(data []byte, limit int) []byte {
	if len(data) <= limit {
		return data
	}
	return data[:limit]
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse service base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("service base url %q has no host", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
		if u.RawPath != "" {
			u.RawPath += "/"
		}
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
