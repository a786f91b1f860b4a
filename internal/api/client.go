// Package api is the REST client for the booking backend. Every
// response is decoded into an explicit DTO at this boundary; payloads
// that fail to decode surface as network errors instead of leaking
// undefined fields into state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/dentabook/booking-client/pkg/errors"
	"github.com/dentabook/booking-client/pkg/logger"
)

// Client talks to the booking backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient(cfg Config, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.WithComponent("api"),
	}
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// do performs one request and decodes a 2xx body into out (out may be
// nil for endpoints whose body is ignored). Non-2xx responses carry the
// server-supplied message verbatim when the error body is well-formed,
// a generic message otherwise.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, token string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.Internal(fmt.Errorf("marshal request body: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("build request: %w", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(err, "request failed", "method", method, "path", path)
		return apperrors.Network("", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Network("", fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFrom(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Network("unexpected response from server", fmt.Errorf("decode %s %s: %w", method, path, err))
	}
	return nil
}

func (c *Client) errorFrom(status int, data []byte) error {
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return apperrors.Network(body.Error, &StatusError{Code: status})
	}
	return apperrors.Network("", &StatusError{Code: status})
}

// StatusError records the HTTP status behind a network error.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d", e.Code)
}

// StatusOf extracts the HTTP status from an error chain, or 0.
func StatusOf(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}
	return 0
}
