package lulu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL          = "https://api.lulu.com"
	sandboxBaseURL          = "https://api.sandbox.lulu.com"
	tokenEndpoint           = "/auth/realms/glasstree/protocol/openid-connect/token"
	printJobsEndpoint       = "/print-jobs/"
	printJobEndpoint        = "/print-jobs/%d/"
	printJobCostsEndpoint   = "/print-jobs/%d/costs/"
	printJobStatusEndpoint  = "/print-jobs/%d/status/"
	statisticsEndpoint      = "/print-jobs/statistics/"
	costCalculationEndpoint = "/print-job-cost-calculations/"
	shippingOptionsEndpoint = "/shipping-options/"
	validateInteriorPath    = "/validate-interior/"
	validateCoverPath       = "/validate-cover/"
	webhooksEndpoint        = "/webhooks/"
	webhookEndpoint         = "/webhooks/%s/"
	webhookTestEndpoint     = "/webhooks/%s/test-submission/%s/"
	submissionsEndpoint     = "/webhook-submissions/"
	defaultUserAgent        = "lulu-go"
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a Lulu Print API client. It is safe for concurrent use.
type Client struct {
	httpClient Doer
	baseURL    string
	authURL    string
	sandbox    bool
	tokens     TokenSource
	logger     zerolog.Logger
	limiter    *rate.Limiter
	userAgent  string
}

// Option is a function that configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient Doer) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithSandbox points the client at the sandbox environment.
func WithSandbox() Option {
	return func(c *Client) {
		c.sandbox = true
		c.baseURL = sandboxBaseURL
	}
}

// WithAuthURL sets a custom token endpoint. By default it is derived from the base URL.
func WithAuthURL(authURL string) Option {
	return func(c *Client) {
		c.authURL = authURL
	}
}

// WithTokenSource replaces the client credentials flow with ts.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithLogger sets the logger used for request tracing at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit caps the request rate of this client.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// New creates a new Lulu client authenticating with the given API key and secret.
func New(clientKey, clientSecret string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		logger:     zerolog.Nop(),
		userAgent:  defaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.authURL == "" {
		c.authURL = c.baseURL + tokenEndpoint
	}
	if c.tokens == nil {
		c.tokens = NewClientCredentials(clientKey, clientSecret, c.authURL, c.httpClient)
	}

	return c
}

// doRequest performs an authenticated HTTP request.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, query url.Values, body any) (*http.Response, error) {
	fullURL := endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		fullURL = c.baseURL + endpoint
	}
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", req.URL.Path).Msg("lulu request failed")
		return nil, fmt.Errorf("executing request: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("lulu request")

	return resp, nil
}

// parseResponse reads and parses the API response. Non-2xx statuses become a
// *RemoteError. Numbers inside untyped values are kept as json.Number.
func parseResponse(resp *http.Response, v any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("request failed with status %d: %w", resp.StatusCode, err)
		}
		return newRemoteError(resp.StatusCode, body)
	}

	if v == nil {
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// IsSandbox reports whether the client targets the sandbox environment.
func (c *Client) IsSandbox() bool {
	return c.sandbox
}

// BaseURL returns the API base URL in use.
func (c *Client) BaseURL() string {
	return c.baseURL
}
