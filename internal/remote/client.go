// Package remote is the HTTP client for the EduNova API. Every call is
// normalized into a result.Result; no error escapes as a Go error.
package remote

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

	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/remote/wire"
	"github.com/msomdec/edunova/internal/result"
)

var (
	_ domain.AuthAPI    = (*Client)(nil)
	_ domain.CourseAPI  = (*Client)(nil)
	_ domain.ProfileAPI = (*Client)(nil)
	_ domain.UserAPI    = (*Client)(nil)
	_ domain.SessionAPI = (*Client)(nil)
)

const (
	msgEmptyResponse = "empty server response"
	msgUnknown       = "unknown error"
)

// Client talks to the EduNova API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its Timeout is kept as is.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the API rooted at baseURL. Every call is bounded
// by timeout.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: base url must be http or https, got %q", domain.ErrInvalidInput, baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/") + "/",
		http:    &http.Client{Timeout: timeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// response is a completed HTTP exchange.
type response struct {
	status int
	body   []byte
}

// send performs one request. A non-nil failure means the exchange did not
// produce a usable 2xx body.
func (c *Client) send(ctx context.Context, method, path, token string, body any) (*response, *result.Failure) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, &result.Failure{Kind: result.KindValidation, Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+strings.TrimLeft(path, "/"), reader)
	if err != nil {
		return nil, &result.Failure{Kind: result.KindNetwork, Message: fmt.Sprintf("network connection error: %v", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", "method", method, "path", path, "error", err)
		return nil, &result.Failure{Kind: result.KindNetwork, Message: fmt.Sprintf("network connection error: %v", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &result.Failure{Kind: result.KindNetwork, Message: fmt.Sprintf("network connection error: %v", err)}
	}
	c.logger.Debug("api request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &result.Failure{
			Kind:    result.KindServer,
			Message: fmt.Sprintf("error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &result.Failure{Kind: result.KindServer, Message: msgEmptyResponse}
	}
	return &response{status: resp.StatusCode, body: data}, nil
}

// call decodes an unwrapped JSON body into T.
func call[T any](ctx context.Context, c *Client, method, path, token string, body any) result.Result[T] {
	resp, fail := c.send(ctx, method, path, token, body)
	if fail != nil {
		return result.Error[T](fail.Kind, fail.Message)
	}
	var out T
	if err := json.Unmarshal(resp.body, &out); err != nil {
		return result.Errorf[T](result.KindServer, "malformed server response: %v", err)
	}
	return result.Success(out)
}

// callEnvelope unwraps an Envelope. With requireData, the data member is
// decoded into T and its absence is a failure; otherwise data is ignored.
func callEnvelope[T any](ctx context.Context, c *Client, method, path, token string, body any, requireData bool) result.Result[T] {
	env := call[wire.Envelope](ctx, c, method, path, token, body)
	if !env.IsSuccess() {
		return result.Recast[T](env)
	}

	e := env.Data()
	if !e.Success || (requireData && !e.HasData()) {
		msg := e.Message
		if msg == "" {
			msg = e.Error
		}
		if msg == "" {
			msg = msgUnknown
		}
		return result.Error[T](result.KindServer, msg)
	}

	var out T
	if requireData {
		if err := json.Unmarshal(e.Data, &out); err != nil {
			return result.Errorf[T](result.KindServer, "malformed server response: %v", err)
		}
	}
	return result.Success(out)
}

func mapSlice[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}
