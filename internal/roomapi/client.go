package roomapi

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

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request id for log correlation
const RequestIDHeader = "X-Request-Id"

// Config holds client settings
type Config struct {
	BaseURL string
	// Timeout bounds each request. Zero disables the timeout.
	Timeout time.Duration
}

// DefaultConfig returns a Config pointing at a local server
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:3000",
		Timeout: 30 * time.Second,
	}
}

// Client is an HTTP client for the room API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a new room API client
func New(cfg Config, logger *slog.Logger) *Client {
	return NewWithHTTPClient(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout}, logger)
}

// NewWithHTTPClient creates a client using an existing http.Client (for testing)
func NewWithHTTPClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// errorBody is the error envelope used by the room API
type errorBody struct {
	Error string `json:"error"`
}

// Do performs an HTTP request against the room API.
// A non-2xx status, or a 2xx body with a non-empty "error" field, yields an *APIError.
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	log := c.logger.With(
		slog.String("request_id", requestID),
		slog.String("method", method),
		slog.String("path", path),
	)
	log.Debug("room api request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug("room api request failed", slog.String("error", err.Error()))
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: method + " " + path, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	log.Debug("room api response",
		slog.Int("status", resp.StatusCode),
		slog.Int("size", len(respBody)),
		slog.Duration("duration", time.Since(start)),
	)

	var errResp errorBody
	decodeErr := json.Unmarshal(respBody, &errResp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	// Some servers report failures with a 2xx status and an error payload
	if decodeErr == nil && errResp.Error != "" {
		return &APIError{Status: resp.StatusCode, Message: errResp.Error}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.Do(ctx, http.MethodGet, path, nil, result)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPost, path, body, result)
}

// roomPath builds /sala/{roomID}[/suffix] with the room id escaped
func roomPath(roomID string, suffix ...string) string {
	parts := append([]string{"/sala", url.PathEscape(roomID)}, suffix...)
	return strings.Join(parts, "/")
}
