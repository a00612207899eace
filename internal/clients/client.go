package clients

import (
	"bytes"
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/metrics"
	"github.com/juju/clock"
	"github.com/juju/retry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	healthPath      = "/api/health"
	maxErrorBodyLen = 64 << 10
)

type Options struct {
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	// Transport defaults to an OpenTelemetry instrumented http.DefaultTransport.
	Transport http.RoundTripper
	Clock     clock.Clock
}

// Client is a JSON client for one backend service.
type Client struct {
	service    string
	baseURL    string
	httpClient *http.Client
	attempts   int
	delay      time.Duration
	clock      clock.Clock
}

func New(service, baseURL string, opts Options) *Client {

	transport := opts.Transport
	if transport == nil {
		transport = otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return service + " " + r.Method
			}),
		)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	attempts := max(opts.RetryAttempts, 1)

	delay := opts.RetryDelay
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.WallClock
	}

	return &Client{
		service:    service,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Transport: transport, Timeout: timeout},
		attempts:   attempts,
		delay:      delay,
		clock:      clk,
	}
}

func (c *Client) Service() string {
	return c.service
}

// Do sends one request and decodes a 2xx JSON response into out (when non-nil).
// GET requests are retried on transport errors and 5xx responses.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {

	logger := middleware.LoggerFromContext(ctx).With(slog.String("upstream", c.service))

	var payload []byte
	if body != nil {
		var err error

		payload, err = json.Marshal(body)
		if err != nil {
			return errors.InternalError("Failed to encode request").WithError(err)
		}
	}

	call := func() error {
		return c.do(ctx, method, path, query, payload, out)
	}

	if method != http.MethodGet || c.attempts <= 1 {
		return call()
	}

	err := retry.Call(retry.CallArgs{
		Func:         call,
		IsFatalError: func(err error) bool { return !retryable(err) },
		NotifyFunc: func(err error, attempt int) {
			if attempt < c.attempts {
				metrics.IncUpstreamRetry(c.service)
				logger.Warn("Retrying upstream request",
					slog.String("path", path),
					slog.Int("attempt", attempt),
					slog.String("error", err.Error()))
			}
		},
		Attempts:    c.attempts,
		Delay:       c.delay,
		BackoffFunc: retry.DoubleDelay,
		Clock:       c.clock,
		Stop:        ctx.Done(),
	})

	if retry.IsAttemptsExceeded(err) || retry.IsRetryStopped(err) {
		return retry.LastError(err)
	}

	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte, out any) error {

	logger := middleware.LoggerFromContext(ctx)

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return errors.InternalError("Failed to build upstream request").WithError(err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token := middleware.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.RequestIDHeader, requestID)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(c.service, method, "error", time.Since(start))
		logger.Error("Upstream request failed",
			slog.String("upstream", c.service),
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()))

		return errors.Unavailable(c.service, err)
	}
	defer resp.Body.Close()

	metrics.ObserveUpstream(c.service, method, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))

		logger.Warn("Upstream returned an error",
			slog.String("upstream", c.service),
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode))

		return errors.FromUpstream(c.service, resp.StatusCode, respBody)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !stdErrors.Is(err, io.EOF) {
		return errors.ThirdPartyError(errors.MsgUnexpected).
			WithDetail(fmt.Sprintf("invalid response from %s service", c.service)).
			WithError(err)
	}

	return nil
}

// Ping checks the service health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, healthPath, nil, nil, nil)
}

func retryable(err error) bool {
	appErr, ok := errors.IsAppError(err)
	if !ok {
		return false
	}

	return appErr.StatusCode >= http.StatusInternalServerError
}
