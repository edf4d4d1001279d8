/*
Package remote is the HTTP client of the order API.

Every operation returns (T, error) where a non-nil error is always an
*errors.AppError carrying a message fit for the user:

  - VALIDATION_ERROR  a local precondition failed, nothing was sent
  - UNAUTHORIZED      login refused the credentials
  - BUSINESS_FAILURE  the server answered with a failure message
  - CONNECTION_ERROR  network failure, or a response without a usable body

There are no retries. Each request carries an X-Request-ID and is logged.
*/
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/keilahoriye/tilapiasuprememobile/config"
	"github.com/keilahoriye/tilapiasuprememobile/pkg/ctxutil"
	apperrors "github.com/keilahoriye/tilapiasuprememobile/pkg/errors"
	"github.com/keilahoriye/tilapiasuprememobile/pkg/logger"
)

// DefaultTimeout applies when no timeout is configured
const DefaultTimeout = 15 * time.Second

// maxErrorBody bounds how much of a failed response is read for a message
const maxErrorBody = 64 << 10

// Client order API client. Safe for concurrent use.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
	loc     *time.Location
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithRateLimiter throttles outgoing requests
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithLocation sets the zone in which zone-less server timestamps are read
func WithLocation(loc *time.Location) Option {
	return func(c *Client) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// NewClient creates a client for baseURL, e.g. http://host:8080/api.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q: missing host", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		log:     logger.Named("remote"),
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromConfig creates a client from the api section of cfg
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	base := []Option{WithLocation(cfg.Location())}
	if rl := cfg.API.RateLimit; rl.Enabled && rl.Rate > 0 {
		burst := rl.Burst
		if burst < 1 {
			burst = 1
		}
		base = append(base, WithRateLimiter(rate.NewLimiter(rate.Limit(rl.Rate), burst)))
	}
	return NewClient(cfg.API.BaseURL, cfg.API.Timeout, append(base, opts...)...)
}

// BaseURL returns the API base URL
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Location returns the zone used for zone-less timestamps
func (c *Client) Location() *time.Location {
	return c.loc
}

// messages the user-facing texts of one operation's failures
type messages struct {
	// connection: network failure or a response that could not be read
	connection string
	// rejected: the server failed without saying why
	rejected string
}

// request one API call
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	msgs   messages
}

// response a completed exchange with a 2xx or non-2xx status
type response struct {
	status int
	header http.Header
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// send performs the exchange. Only transport failures are returned as
// errors; any HTTP status yields a response.
func (c *Client) send(ctx context.Context, req request) (*response, error) {
	requestID := ctxutil.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	u := c.baseURL.JoinPath(req.path)
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		buf, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set(ctxutil.HeaderRequestID, requestID)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	latency := time.Since(start)
	if err != nil {
		c.log.Warn("API request failed",
			zap.String("request_id", requestID),
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.Duration("latency", latency),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	limit := int64(-1)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		limit = maxErrorBody
	}
	var reader io.Reader = resp.Body
	if limit > 0 {
		reader = io.LimitReader(resp.Body, limit)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.log.Debug("API request",
		zap.String("request_id", requestID),
		zap.String("method", req.method),
		zap.String("path", req.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", latency),
		zap.Int("bytes", len(data)),
	)

	return &response{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

// call performs req and decodes a 2xx body into out (when non-nil),
// normalizing every failure into an AppError.
func (c *Client) call(ctx context.Context, req request, out any) error {
	resp, err := c.send(ctx, req)
	if err != nil {
		return apperrors.Connection(err, req.msgs.connection)
	}

	if !resp.ok() {
		if msg := failureMessage(resp); msg != "" {
			return apperrors.Wrap(statusError(resp.status), apperrors.CodeBusiness, msg)
		}
		return apperrors.Connection(statusError(resp.status), req.msgs.rejected)
	}

	payload, err := unwrapEnvelope(resp.body)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Message == "" {
				appErr.Message = req.msgs.rejected
			}
			return appErr
		}
		return apperrors.Connection(err, req.msgs.connection)
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		c.log.Warn("undecodable API response",
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.Error(err),
		)
		return apperrors.Connection(fmt.Errorf("decode response: %w", err), req.msgs.connection)
	}
	return nil
}

// decodeBody unwraps and decodes a 2xx body that must not be empty
func decodeBody(body []byte, out any) error {
	payload, err := unwrapEnvelope(body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return errors.New("empty response body")
	}
	return json.Unmarshal(payload, out)
}

type statusError int

func (s statusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", int(s), http.StatusText(int(s)))
}

// envelope the {success, data, message} shape some endpoints wrap results in
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// unwrapEnvelope returns the payload of a 2xx body. A body shaped
// {success:false, message} is a business failure; {success:true, data} is
// unwrapped; anything else is returned unchanged.
func unwrapEnvelope(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return body, nil
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		// not an envelope; let the caller's decode report it
		return body, nil
	}
	if env.Success == nil {
		return body, nil
	}
	if !*env.Success {
		return nil, apperrors.Business(strings.TrimSpace(env.Message))
	}
	if len(env.Data) > 0 {
		return env.Data, nil
	}
	return body, nil
}

// failureMessage extracts a usable message from a non-2xx body: the
// "message" or "error" field of a JSON object, or a short plain text body.
func failureMessage(resp *response) string {
	body := bytes.TrimSpace(resp.body)
	if len(body) == 0 {
		return ""
	}
	if body[0] == '{' {
		var m struct {
			Message any `json:"message"`
			Error   any `json:"error"`
		}
		if err := json.Unmarshal(body, &m); err != nil {
			return ""
		}
		for _, v := range []any{m.Message, m.Error} {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
		return ""
	}
	if strings.HasPrefix(resp.header.Get("Content-Type"), "text/plain") && len(body) <= 300 {
		return string(body)
	}
	return ""
}

// errorField returns the "error" field of a JSON object body, used by login
func errorField(body []byte) string {
	var m struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(body), &m); err != nil {
		return ""
	}
	return strings.TrimSpace(m.Error)
}

// invalidID reports ids that cannot name a single path segment. "." and
// ".." survive escaping and would be cleaned out of the joined URL.
func invalidID(id string) bool {
	switch strings.TrimSpace(id) {
	case "", ".", "..":
		return true
	}
	return false
}

// pathID escapes an order id as a single path segment
func pathID(id string) string {
	return url.PathEscape(strings.TrimSpace(id))
}
