// Package generation talks to the remote text generation service over HTTP.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/wai-go/internal/domain"
	"github.com/doeshing/wai-go/internal/ports"
)

// maxErrorBody caps how much of a failed response is read for diagnostics.
const maxErrorBody = 4 << 10

// Client implements ports.GenerationService and ports.HealthChecker.
type Client struct {
	endpoint       string
	healthEndpoint string
	httpClient     *http.Client
	logger         ports.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger ports.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient builds a client for endpoint. A zero timeout waits indefinitely.
func NewClient(endpoint, healthEndpoint string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		endpoint:       endpoint,
		healthEndpoint: healthEndpoint,
		httpClient:     &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the generation URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Generate posts payload and returns the generated text.
func (c *Client) Generate(ctx context.Context, payload domain.RequestPayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &domain.NetworkError{Endpoint: c.endpoint, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	c.debug("generation request", map[string]interface{}{
		"request_id": requestID,
		"mode":       string(payload.Mode),
		"chars":      len(payload.Text),
	})

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.NetworkError{Endpoint: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.NetworkError{Endpoint: c.endpoint, Err: err}
	}

	c.debug("generation response", map[string]interface{}{
		"request_id": requestID,
		"status":     resp.StatusCode,
		"elapsed":    time.Since(started).String(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &domain.ServiceError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	var decoded domain.GenerateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", &domain.ServiceError{StatusCode: resp.StatusCode, Message: "malformed response body"}
	}
	if decoded.GeneratedText == nil {
		return "", &domain.ServiceError{StatusCode: resp.StatusCode, Message: "response is missing generatedText"}
	}
	return *decoded.GeneratedText, nil
}

// Health queries the service health endpoint.
func (c *Client) Health(ctx context.Context) (domain.ServiceHealth, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthEndpoint, nil)
	if err != nil {
		return domain.ServiceHealth{}, &domain.NetworkError{Endpoint: c.healthEndpoint, Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ServiceHealth{}, &domain.NetworkError{Endpoint: c.healthEndpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domain.ServiceHealth{}, &domain.ServiceError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	var health domain.ServiceHealth
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return domain.ServiceHealth{}, &domain.ServiceError{StatusCode: resp.StatusCode, Message: "malformed health body"}
	}
	return health, nil
}

// errorMessage extracts the service's {"error": "..."} field, falling back to
// a trimmed snippet of the raw body.
func errorMessage(raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	text := strings.TrimSpace(string(raw))
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return text
}

func (c *Client) debug(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}

var (
	_ ports.GenerationService = (*Client)(nil)
	_ ports.HealthChecker     = (*Client)(nil)
)
