// Package api is the client for the marketplace backend REST API.
//
// A Client carries no ambient credentials: call WithToken to obtain a
// copy bound to one user's bearer token.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/leboncoincoin/marketplace-web/pkg/logger"
	"github.com/leboncoincoin/marketplace-web/pkg/metrics"
	"github.com/leboncoincoin/marketplace-web/pkg/tracing"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8080/api"

// Error is returned for every non-2xx backend reply.
type Error struct {
	StatusCode int    `json:"status"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// Client calls the marketplace backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	logger     *logger.Logger
	tracer     trace.Tracer
}

// New creates a client. An empty baseURL means DefaultBaseURL.
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
		tracer:     tracing.Tracer("marketplace-api"),
	}
}

// WithHTTPClient returns a copy using hc for requests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	cp := *c
	cp.httpClient = hc
	return &cp
}

// WithToken returns a copy that authenticates as the token's owner.
// An empty token yields an anonymous client.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Listings returns the listings endpoints.
func (c *Client) Listings() *Listings { return &Listings{c: c} }

// Users returns the current-user endpoints.
func (c *Client) Users() *Users { return &Users{c: c} }

// Favorites returns the favorites endpoints.
func (c *Client) Favorites() *Favorites { return &Favorites{c: c} }

// Uploads returns the image upload endpoints.
func (c *Client) Uploads() *Uploads { return &Uploads{c: c} }

// Messaging returns the conversation endpoints.
func (c *Client) Messaging() *Messaging { return &Messaging{c: c} }

// Contact returns the contact form endpoint.
func (c *Client) Contact() *Contact { return &Contact{c: c} }

// call describes one backend request. route is the templated path used
// for span names and metric labels.
type call struct {
	method string
	route  string
	path   string
	query  url.Values
	body   interface{}
	out    interface{}
}

func (c *Client) do(ctx context.Context, cl call) error {
	ctx, span := c.tracer.Start(ctx, cl.method+" "+cl.route, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	start := time.Now()
	status, err := c.send(ctx, cl)
	metrics.RecordBackendCall(cl.method, cl.route, statusLabel(status), time.Since(start).Seconds())

	span.SetAttributes(
		attribute.String("http.method", cl.method),
		attribute.String("http.route", cl.route),
		attribute.Int("http.status_code", status),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Debug("backend call failed",
			zap.String("method", cl.method),
			zap.String("route", cl.route),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	return err
}

func (c *Client) send(ctx context.Context, cl call) (int, error) {
	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		buf, err := json.Marshal(cl.body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, body)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", cl.method, cl.route, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &Error{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	if cl.out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, cl.out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s response: %w", cl.route, err)
	}
	return resp.StatusCode, nil
}

// errorMessage extracts a human message from a backend error body.
func errorMessage(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	const maxLen = 200
	if len(raw) > maxLen {
		raw = raw[:maxLen]
	}
	return string(raw)
}

func statusLabel(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status)
}
