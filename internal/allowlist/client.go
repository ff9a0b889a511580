// Package allowlist queries the external email-domain allowlist service.
//
// The client never returns an error: unconfigured endpoints, transport
// failures and malformed responses all fold into a ServiceError result so the
// caller only ever decides between three cases.
package allowlist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"regguard/internal/platform/metrics"
	"regguard/pkg/email"
	"regguard/pkg/requestcontext"
)

const (
	// FieldDomainAllowed is the boolean the service answers with.
	FieldDomainAllowed = "domainAllowed"

	maxResponseBytes = 1 << 20
	tracerName       = "regguard/internal/allowlist"
)

type checkRequest struct {
	Email string `json:"email"`
}

type checkResponse struct {
	DomainAllowed *bool  `json:"domainAllowed"`
	Message       string `json:"message,omitempty"`
}

// Client checks email domains against the allowlist service. It holds no
// per-call state and is safe for concurrent use.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

type Option func(*Client)

// WithHTTPClient replaces the transport. The default client applies no
// timeout of its own; cancellation comes from the caller's context.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = tracer
	}
}

// New builds a client for endpoint. An empty endpoint is accepted and makes
// every check fail closed.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		logger:     slog.New(slog.DiscardHandler),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckDomain asks the allowlist service whether the email's domain may register.
func (c *Client) CheckDomain(ctx context.Context, address string) Result {
	ctx, span := c.tracer.Start(ctx, "allowlist.CheckDomain",
		trace.WithAttributes(attribute.String("email.domain", email.Domain(address))))
	defer span.End()

	result := c.check(ctx, address)

	span.SetAttributes(attribute.String("allowlist.verdict", string(result.Verdict)))
	if c.metrics != nil {
		c.metrics.IncrementVerdict(string(result.Verdict))
	}
	if result.Verdict == ServiceError {
		span.SetStatus(codes.Error, result.Detail)
		c.logger.WarnContext(ctx, "allowlist check failed",
			"detail", result.Detail,
			"email_domain", email.Domain(address),
			"request_id", requestcontext.RequestID(ctx),
		)
		return result
	}

	c.logger.InfoContext(ctx, "allowlist check completed",
		"verdict", string(result.Verdict),
		"email_domain", email.Domain(address),
		"request_id", requestcontext.RequestID(ctx),
	)
	return result
}

func (c *Client) check(ctx context.Context, address string) Result {
	if c.endpoint == "" {
		return serviceError("endpoint not configured")
	}

	payload, err := json.Marshal(checkRequest{Email: address})
	if err != nil {
		return serviceError(fmt.Sprintf("encode request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return serviceError(fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.metrics != nil {
		c.metrics.ObserveAllowlistLatency(time.Since(start))
	}
	if err != nil {
		return serviceError(err.Error())
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return serviceError(fmt.Sprintf("read response: %v", err))
	}
	return parseResponse(resp.StatusCode, body)
}

// parseResponse interprets a raw allowlist response.
func parseResponse(status int, body []byte) Result {
	if status != http.StatusOK {
		return serviceError(fmt.Sprintf("unexpected status %d", status))
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return serviceError("empty response body")
	}

	var resp checkResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return serviceError(fmt.Sprintf("decode response: %v", err))
	}
	if resp.DomainAllowed == nil {
		return serviceError("missing allowlist field")
	}
	if *resp.DomainAllowed {
		return allowed()
	}
	return notAllowed()
}
