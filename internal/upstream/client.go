// Package upstream is the HTTP client for the campus pass service. It
// owns request construction, per-call deadlines and error
// classification; retry policy belongs to callers.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds a single upstream call unless configured.
const DefaultTimeout = 5 * time.Second

// maxBodyBytes caps how much of a response is read. Bodies here are
// small JSON envelopes; anything larger is a misbehaving server.
const maxBodyBytes = 1 << 20

const satokenHeader = "satoken"

// Config captures how to reach the pass service.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
	Logger  *slog.Logger
}

// Client issues authenticated requests against the pass service. It is
// safe for concurrent use.
type Client struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
	logger  *slog.Logger
}

// NewClient builds an upstream client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("upstream base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		client:  hc,
		logger:  logger,
	}, nil
}

// get performs one GET against path, decodes the JSON body into out and
// classifies every failure mode. satoken may be empty for the
// unauthenticated login endpoint.
func (c *Client) get(ctx context.Context, path string, query url.Values, satoken string, out any) error {
	endpoint := path
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", endpoint, err)
	}
	if satoken != "" {
		req.Header.Set(satokenHeader, satoken)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		classified := c.classifyDo(ctx, reqCtx, endpoint, err)
		c.logger.DebugContext(ctx, "upstream request failed",
			"endpoint", endpoint, "request_id", requestID,
			"kind", Classify(classified), "elapsed", time.Since(start))
		return classified
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if reqCtx.Err() != nil {
			return c.classifyDo(ctx, reqCtx, endpoint, reqCtx.Err())
		}
		return &TransportError{Endpoint: endpoint, Err: err}
	}

	c.logger.DebugContext(ctx, "upstream request",
		"endpoint", endpoint, "request_id", requestID,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServerError{Endpoint: endpoint, Status: resp.StatusCode, RawBody: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Endpoint: endpoint, RawBody: string(body), Err: err}
	}
	return nil
}

// classifyDo separates deadline, caller cancellation and connection
// failures for a request that produced no usable response.
func (c *Client) classifyDo(callerCtx, reqCtx context.Context, endpoint string, err error) error {
	switch {
	case callerCtx.Err() != nil:
		// The caller gave up; report its error so cancelled cycles are
		// not mistaken for upstream timeouts.
		return callerCtx.Err()
	case errors.Is(err, context.DeadlineExceeded) || reqCtx.Err() == context.DeadlineExceeded:
		return &TimeoutError{Endpoint: endpoint, Limit: c.timeout}
	default:
		return &TransportError{Endpoint: endpoint, Err: err}
	}
}
