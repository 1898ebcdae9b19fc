// Package client talks to the AppWash REST API. Every operation returns
// either its result or an *Error classifying the failure.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/omfj/appwash-cli/pkg/client/api"
)

const (
	DefaultUserAgent = "appwash cli github.com/omfj/appwash-cli"
	defaultReferer   = "https://appwash.com/"
	platform         = "appWash"
	tracerName       = "github.com/omfj/appwash-cli/pkg/client"
)

// Config configures a BaseClient.
type Config struct {
	BaseURL   string
	Language  string
	UserAgent string
	// Timeout bounds a whole request. Zero means no timeout.
	Timeout time.Duration
	// HTTPClient overrides the instrumented default client.
	HTTPClient *http.Client
	Logger     logr.Logger
}

// BaseClient holds the transport shared by the resource clients.
type BaseClient struct {
	baseURL    string
	language   string
	userAgent  string
	httpClient *http.Client
	log        logr.Logger
	tracer     trace.Tracer
}

func NewBaseClient(cfg Config) *BaseClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	language := cfg.Language
	if language == "" {
		language = "en"
	}
	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &BaseClient{
		baseURL:    cfg.BaseURL,
		language:   language,
		userAgent:  userAgent,
		httpClient: httpClient,
		log:        log.WithName("appwash-client"),
		tracer:     otel.Tracer(tracerName),
	}
}

// Get sends an authenticated GET and decodes the response into out. It
// returns the HTTP status alongside any error.
func (c *BaseClient) Get(ctx context.Context, path, token string, out any) (int, error) {
	return c.do(ctx, http.MethodGet, path, nil, token, out)
}

// Post sends body as JSON and decodes the response into out. An empty token
// sends an anonymous request.
func (c *BaseClient) Post(ctx context.Context, path string, body any, token string, out any) (int, error) {
	return c.do(ctx, http.MethodPost, path, body, token, out)
}

// do runs one exchange under a client span. The span covers decoding, so
// non-zero errorCode replies are recorded on it too.
func (c *BaseClient) do(ctx context.Context, method, path string, body any, token string, out any) (int, error) {
	ctx, span := c.tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.Bool("appwash.authenticated", token != "")),
	)
	defer span.End()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Referer", defaultReferer)
	req.Header.Set("language", c.language)
	req.Header.Set("platform", platform)
	if token != "" {
		req.Header.Set("token", token)
	}

	c.log.V(1).Info("sending request", "method", method, "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.log.Error(err, "request failed", "method", method, "path", path)
		return 0, transportError(err)
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if err := DecodeResponse(resp, out); err != nil {
		if code, ok := ErrorCode(err); ok {
			span.SetAttributes(attribute.Int("appwash.error_code", code))
		}
		span.SetStatus(codes.Error, err.Error())
		c.log.V(1).Info("request returned an error", "method", method, "path", path, "error", err.Error())
		return resp.StatusCode, err
	}
	return resp.StatusCode, nil
}

// DecodeResponse closes resp.Body, turns a non-zero errorCode or a non-2xx
// status into an *Error and decodes the body into out when out is non-nil.
func DecodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(fmt.Errorf("failed to read response body: %w", err))
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	var status api.Status
	if err := json.Unmarshal(raw, &status); err != nil {
		if !ok {
			return remoteError(0, resp.StatusCode, "")
		}
		return malformed(resp.StatusCode, "body is not JSON: %v", err)
	}
	if status.ErrorCode != 0 {
		return remoteError(status.ErrorCode, resp.StatusCode, status.ErrorDescription)
	}
	if !ok {
		return remoteError(0, resp.StatusCode, "")
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return malformed(resp.StatusCode, "unexpected body shape: %v", err)
	}
	return nil
}

// ClientSet groups the resource clients.
type ClientSet struct {
	Auth     Auth
	Machines Machines
	Account  Account
}

func New(cfg Config) *ClientSet {
	base := NewBaseClient(cfg)
	return &ClientSet{
		Auth:     NewAuthClient(base),
		Machines: NewMachinesClient(base),
		Account:  NewAccountClient(base),
	}
}
