// Package client is the HTTP client of the bridge node and validator APIs.
package client

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/chainsafe/burnmint-bridge/pkg/app/errors"
	apphttp "github.com/chainsafe/burnmint-bridge/pkg/app/http"
	"github.com/chainsafe/burnmint-bridge/pkg/auth"
	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
)

const defaultTimeout = 30 * time.Second

// Client calls a bridge API. Mutating calls are signed with the configured key.
type Client struct {
	baseURL string
	http    *http.Client
	key     *ecdsa.PrivateKey
	now     func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithKey sets the key requests are signed with.
func WithKey(key *ecdsa.PrivateKey) Option {
	return func(cl *Client) { cl.key = key }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// As returns a copy of the client signing with key.
func (c *Client) As(key *ecdsa.PrivateKey) *Client {
	cp := *c
	cp.key = key
	return &cp
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, false)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, nil, body, out, true)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, signed bool) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if signed {
		if c.key == nil {
			return fmt.Errorf("%s %s requires a signing key", method, path)
		}
		ts := c.now().Unix()
		sig, err := auth.SignRequest(c.key, method, req.URL.RequestURI(), payload, ts)
		if err != nil {
			return err
		}
		req.Header.Set(auth.HeaderSignature, sig)
		req.Header.Set(auth.HeaderTimestamp, strconv.FormatInt(ts, 10))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, apphttp.MaxRequestBytes*8))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError rebuilds the ServiceError the server returned. Known reason codes are
// unwrapped to the matching bridge sentinel so callers can use errors.Is.
func decodeError(status int, data []byte) error {
	var body apphttp.ErrorResponse
	if err := json.Unmarshal(data, &body); err != nil || body.ErrMsg == "" {
		body.ErrMsg = http.StatusText(status)
	}

	cause := bridge.ErrorForReason(body.Reason)
	if cause == nil {
		cause = errors.New(body.ErrMsg)
	} else {
		cause = fmt.Errorf("%w: %s", cause, body.ErrMsg)
	}
	return &apperrors.ServiceError{
		Category: apperrors.CategoryFromStatus(status),
		Message:  body.ErrMsg,
		Reason:   body.Reason,
		Err:      cause,
	}
}
