// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jeranaias/statescope/internal/config"
	"github.com/jeranaias/statescope/internal/logging"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the API client.
type ClientConfig struct {
	// BaseURL is the API root (default: http://localhost:5001/api)
	BaseURL string

	// Timeout for read requests (default: 30s)
	Timeout time.Duration

	// AskTimeout for question requests (default: 60s)
	AskTimeout time.Duration

	// AskPerMinute caps questions per minute; 0 disables the limiter.
	// The server rejects more than 10 per minute with 429.
	AskPerMinute int

	// UserAgent sent with every request (default: "statescope")
	UserAgent string

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client

	// Logger receives request records (default: discard)
	Logger *logging.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:      config.DefaultBaseURL,
		Timeout:      config.DefaultTimeoutSecs * time.Second,
		AskTimeout:   config.DefaultAskTimeout * time.Second,
		AskPerMinute: config.DefaultAskPerMinute,
		UserAgent:    "statescope",
	}
}

// ConfigFrom derives a client configuration from the application config.
func ConfigFrom(cfg *config.Config, log *logging.Logger) *ClientConfig {
	return &ClientConfig{
		BaseURL:      cfg.API.BaseURL,
		Timeout:      cfg.API.Timeout(),
		AskTimeout:   cfg.API.AskTimeout(),
		AskPerMinute: cfg.API.AskPerMinute,
		UserAgent:    cfg.API.UserAgent,
		Logger:       log,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the policy API. It is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logging.Logger
}

// NewClient creates a new client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new client with custom configuration.
// Zero values are filled from DefaultConfig, except AskPerMinute where 0
// means unlimited.
func NewClientWithConfig(cfg *ClientConfig) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	defaults := DefaultConfig()

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout == 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.AskTimeout == 0 {
		cfg.AskTimeout = defaults.AskTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	log := cfg.Logger
	if log == nil {
		log = logging.NewNop()
	}

	var limiter *rate.Limiter
	if cfg.AskPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.AskPerMinute)), cfg.AskPerMinute)
	}

	return &Client{
		config:     cfg,
		httpClient: httpClient,
		limiter:    limiter,
		log:        log.Named("api"),
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// REQUEST PRIMITIVES
// =============================================================================

// GetJSON issues GET base+path?query and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, target, nil, out)
}

// PostJSON marshals body, issues POST base+path and decodes into out. The
// default timeout applies unless ctx already carries a deadline.
func (c *Client) PostJSON(ctx context.Context, path string, body, out interface{}) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidRequest, Message: "failed to marshal request", Cause: err}
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(payload), out)
}

func (c *Client) do(ctx context.Context, method, target string, body io.Reader, out interface{}) error {
	requestID := uuid.NewString()
	log := c.log.With(
		zap.String("method", method),
		zap.String("path", target),
		zap.String("request_id", requestID),
	)

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+target, body)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidRequest, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		cerr := transportError(method, target, err)
		log.Warn("request failed", zap.Duration("elapsed", time.Since(start)), zap.Error(cerr))
		return cerr
	}
	defer resp.Body.Close()

	log = log.With(zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused; the body is not interpreted.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

		errType := ErrTypeStatus
		if resp.StatusCode == http.StatusTooManyRequests {
			errType = ErrTypeRateLimited
		}
		log.Warn("unexpected status")
		return &ClientError{
			Type:    errType,
			Message: method + " " + target,
			Cause:   &StatusError{Code: resp.StatusCode, Method: method, Path: target},
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			log.Warn("decode failed", zap.Error(err))
			return &ClientError{Type: ErrTypeDecode, Message: "failed to decode response", Cause: err}
		}
	}

	log.Debug("request complete")
	return nil
}

func transportError(method, target string, err error) *ClientError {
	msg := method + " " + target
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &ClientError{Type: ErrTypeTimeout, Message: msg + ": request timed out", Cause: err}
	case errors.Is(err, context.Canceled):
		return &ClientError{Type: ErrTypeCanceled, Message: msg + ": request canceled", Cause: err}
	default:
		return &ClientError{Type: ErrTypeConnection, Message: msg, Cause: err}
	}
}
