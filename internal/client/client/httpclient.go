package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/http/httpguts"

	"github.com/dmitrijs2005/gostconsole/internal/client/notify"
	"github.com/dmitrijs2005/gostconsole/internal/common"
	"github.com/dmitrijs2005/gostconsole/internal/logging"
)

const (
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 10 << 20
)

// TokenSource is the session as the pipeline sees it.
type TokenSource interface {
	// Token returns the current bearer token, "" when signed out.
	Token() string
	// Invalidate clears the session if it still holds token and reports
	// whether it did. Clearing an already empty session is a no-op.
	Invalidate(ctx context.Context, token string) bool
}

// Navigator moves the console to another route.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// Request describes one API call relative to the client's base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// method returns the HTTP method, GET when none is set.
func (r *Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

// HTTPClient is the single transport pipeline of the console: request
// stage, network call, outcome stage.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	loginRoute string

	session   TokenSource
	notifier  notify.Notifier
	navigator Navigator
	logger    logging.Logger
	metrics   *Metrics

	// redirecting is set by the first forced logout and cleared when a
	// request goes out with a token again.
	redirecting atomic.Bool
}

// ClientOption configures the HTTPClient.
type ClientOption func(*HTTPClient)

// WithTimeout sets the per-call upper bound.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *HTTPClient) { c.timeout = d }
}

// WithHTTPClient replaces the underlying client. It is copied, so the
// caller's value is never modified.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *HTTPClient) {
		cp := *hc
		c.httpClient = &cp
	}
}

func WithSession(s TokenSource) ClientOption {
	return func(c *HTTPClient) { c.session = s }
}

func WithNotifier(n notify.Notifier) ClientOption {
	return func(c *HTTPClient) { c.notifier = n }
}

func WithNavigator(n Navigator) ClientOption {
	return func(c *HTTPClient) { c.navigator = n }
}

// WithLoginRoute overrides the forced-logout target (default /login).
func WithLoginRoute(route string) ClientOption {
	return func(c *HTTPClient) { c.loginRoute = route }
}

func WithUserAgent(ua string) ClientOption {
	return func(c *HTTPClient) { c.userAgent = ua }
}

func WithLogger(l logging.Logger) ClientOption {
	return func(c *HTTPClient) { c.logger = l }
}

func WithMetrics(m *Metrics) ClientOption {
	return func(c *HTTPClient) { c.metrics = m }
}

// NewHTTPClient creates a pipeline for the API rooted at baseURL, e.g.
// "http://127.0.0.1:8080/api/v1".
func NewHTTPClient(baseURL string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
		loginRoute: common.LoginRoute,
		notifier:   notify.Discard,
		navigator:  NavigatorFunc(func(string) {}),
		logger:     logging.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		c.httpClient.Timeout = c.timeout
	}

	return c
}

// SetSession attaches the session after construction. The session itself
// calls through this client, so one of the two has to be wired late. It
// must be called before the first Do.
func (c *HTTPClient) SetSession(s TokenSource) {
	c.session = s
}

// Do runs r through the pipeline. On success the envelope's data is
// decoded into out (when out is non-nil). On failure the operator has
// already been notified, and for 401/40100 the session is already cleared
// and the console sent to the login route, before the *Error is returned.
func (c *HTTPClient) Do(ctx context.Context, r *Request, out any) error {
	start := time.Now()

	req, token, err := c.newRequest(ctx, r)
	if err != nil {
		c.notifier.Notify(ctx, notify.Error(err.Error()))
		c.logger.Error(ctx, "api request rejected", "method", r.method(), "path", r.Path, "error", err)
		c.metrics.observe(r.method(), outcomeRejected, start)
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}

	c.logger.Debug(ctx, "api request",
		"method", req.Method,
		"path", r.Path,
		"request_id", req.Header.Get(common.RequestIDHeaderName),
		"authenticated", token != "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(ctx, req, token, Classify(Outcome{Err: err}), start)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return c.fail(ctx, req, token, Classify(Outcome{Err: fmt.Errorf("failed to read response body: %w", err)}), start)
	}

	outcome, data := readOutcome(resp.StatusCode, body)
	if cerr := Classify(outcome); cerr != nil {
		return c.fail(ctx, req, token, cerr, start)
	}

	if out != nil && !isNullPayload(data) {
		if err := json.Unmarshal(data, out); err != nil {
			return c.fail(ctx, req, token, &Error{
				Kind:    KindHTTPStatus,
				Message: MsgRequestFailed,
				Status:  resp.StatusCode,
				Err:     fmt.Errorf("failed to decode %s payload: %w", r.Path, err),
			}, start)
		}
	}

	c.metrics.observe(req.Method, outcomeOK, start)
	c.logger.Debug(ctx, "api request finished",
		"method", req.Method,
		"path", r.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start))
	return nil
}

// newRequest is the request stage. It returns the token that was attached
// ("" for an anonymous call).
func (c *HTTPClient) newRequest(ctx context.Context, r *Request) (*http.Request, string, error) {
	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method(), target, body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	token, err := c.authorize(req)
	if err != nil {
		return nil, "", err
	}
	return req, token, nil
}

func (c *HTTPClient) authorize(req *http.Request) (string, error) {
	if c.session == nil {
		return "", nil
	}
	token := c.session.Token()
	if token == "" {
		return "", nil
	}

	value := common.BearerScheme + " " + token
	if !httpguts.ValidHeaderFieldValue(value) {
		return "", ErrInvalidCredentialHeader
	}
	req.Header.Set(common.AuthorizationHeaderName, value)
	c.redirecting.Store(false)
	return token, nil
}

// fail is the failure half of the outcome stage: notify, force logout when
// required, then hand the error back.
func (c *HTTPClient) fail(ctx context.Context, req *http.Request, token string, e *Error, start time.Time) error {
	c.notifier.Notify(ctx, notify.Error(e.Message))

	if e.ForcesLogout {
		c.forceLogout(ctx, token)
	}

	c.metrics.observe(req.Method, outcomeLabel(e.Kind), start)
	c.logger.Warn(ctx, "api request failed",
		"method", req.Method,
		"path", req.URL.Path,
		"kind", e.Kind.String(),
		"status", e.Status,
		"code", e.Code,
		"message", e.Message,
		"error", e.Err)
	return e
}

// forceLogout clears the session the failed call was made with and sends
// the console to the login route. Concurrent callers produce at most one
// navigation; a session that was replaced in the meantime is left alone.
func (c *HTTPClient) forceLogout(ctx context.Context, token string) {
	if c.session != nil {
		if c.session.Invalidate(ctx, token) {
			c.metrics.forcedLogout()
			c.logger.Info(ctx, "session invalidated by server")
		}
		if c.session.Token() != "" {
			return
		}
	}

	if !c.redirecting.CompareAndSwap(false, true) {
		return
	}
	c.logger.Info(ctx, "redirecting to login", "route", c.loginRoute)
	c.navigator.Navigate(c.loginRoute)
}
