package lulu

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SignatureHeader carries the HMAC-SHA256 signature of a webhook delivery.
const SignatureHeader = "Lulu-HMAC-SHA256"

// TopicPrintJobStatusChanged is sent whenever a print job changes status.
const TopicPrintJobStatusChanged = "PRINT_JOB_STATUS_CHANGED"

const (
	defaultSubmissionsPage     = 1
	defaultSubmissionsPageSize = 100
)

// Webhook is a webhook subscription.
type Webhook struct {
	ID       string   `json:"id"`
	IsActive bool     `json:"is_active"`
	Topics   []string `json:"topics"`
	URL      string   `json:"url"`
}

// WebhookList is a page of webhook subscriptions.
type WebhookList struct {
	Count    int64     `json:"count"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Results  []Webhook `json:"results"`
}

// UpdateWebhookOptions holds the fields to change. Nil fields are left as they are.
type UpdateWebhookOptions struct {
	Topics   []string
	URL      *string
	IsActive *bool
}

// WebhookSubmission is one delivery attempt record.
type WebhookSubmission struct {
	DateCreated  string       `json:"date_created"`
	DateModified string       `json:"date_modified"`
	Payload      WebhookEvent `json:"payload"`
	Topic        string       `json:"topic"`
	IsSuccess    bool         `json:"is_success"`
	ResponseCode *int         `json:"response_code"`
	Attempts     int          `json:"attempts"`
	Webhook      Webhook      `json:"webhook"`
}

// WebhookSubmissionList is a page of webhook submissions.
type WebhookSubmissionList struct {
	Count    int64               `json:"count"`
	Next     *string             `json:"next"`
	Previous *string             `json:"previous"`
	Results  []WebhookSubmission `json:"results"`
}

// WebhookSubmissionsOptions filters webhook submissions.
type WebhookSubmissionsOptions struct {
	Page          int
	PageSize      int
	CreatedAfter  time.Time
	CreatedBefore time.Time
	IsSuccess     *bool
	ResponseCode  int
	WebhookID     string
}

// WebhookEvent is the body of a webhook delivery.
type WebhookEvent struct {
	Topic string          `json:"topic"`
	Data  json.RawMessage `json:"data"`
}

func parseWebhookID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("invalid webhook ID %q: %w", id, err)
	}
	return parsed.String(), nil
}

// CreateWebhook subscribes destinationURL to the given topics.
func (c *Client) CreateWebhook(ctx context.Context, topics []string, destinationURL string) (*Webhook, error) {
	if len(topics) == 0 {
		return nil, fmt.Errorf("at least one topic is required")
	}
	if _, err := url.ParseRequestURI(destinationURL); err != nil {
		return nil, fmt.Errorf("invalid destination URL: %w", err)
	}

	body := map[string]any{
		"topics": topics,
		"url":    destinationURL,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, webhooksEndpoint, nil, body)
	if err != nil {
		return nil, fmt.Errorf("creating webhook: %w", err)
	}

	var webhook Webhook
	if err := parseResponse(resp, &webhook); err != nil {
		return nil, fmt.Errorf("parsing webhook response: %w", err)
	}

	return &webhook, nil
}

// ListWebhooks lists all webhook subscriptions.
func (c *Client) ListWebhooks(ctx context.Context) (*WebhookList, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, webhooksEndpoint, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("listing webhooks: %w", err)
	}

	var list WebhookList
	if err := parseResponse(resp, &list); err != nil {
		return nil, fmt.Errorf("parsing webhooks response: %w", err)
	}

	return &list, nil
}

// GetWebhook retrieves a single webhook subscription.
func (c *Client) GetWebhook(ctx context.Context, id string) (*Webhook, error) {
	id, err := parseWebhookID(id)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf(webhookEndpoint, id), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting webhook: %w", err)
	}

	var webhook Webhook
	if err := parseResponse(resp, &webhook); err != nil {
		return nil, fmt.Errorf("parsing webhook response: %w", err)
	}

	return &webhook, nil
}

// UpdateWebhook changes the fields set in opts.
func (c *Client) UpdateWebhook(ctx context.Context, id string, opts UpdateWebhookOptions) (*Webhook, error) {
	id, err := parseWebhookID(id)
	if err != nil {
		return nil, err
	}

	body := map[string]any{}
	if opts.Topics != nil {
		body["topics"] = opts.Topics
	}
	if opts.URL != nil {
		body["url"] = *opts.URL
	}
	if opts.IsActive != nil {
		body["is_active"] = *opts.IsActive
	}

	resp, err := c.doRequest(ctx, http.MethodPatch, fmt.Sprintf(webhookEndpoint, id), nil, body)
	if err != nil {
		return nil, fmt.Errorf("updating webhook: %w", err)
	}

	var webhook Webhook
	if err := parseResponse(resp, &webhook); err != nil {
		return nil, fmt.Errorf("parsing webhook response: %w", err)
	}

	return &webhook, nil
}

// DeleteWebhook permanently deletes a webhook subscription.
func (c *Client) DeleteWebhook(ctx context.Context, id string) error {
	id, err := parseWebhookID(id)
	if err != nil {
		return err
	}

	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf(webhookEndpoint, id), nil, nil)
	if err != nil {
		return fmt.Errorf("deleting webhook: %w", err)
	}

	if err := parseResponse(resp, nil); err != nil {
		return fmt.Errorf("parsing delete response: %w", err)
	}

	return nil
}

// TestWebhook asks the provider to send a test delivery for topic. It
// returns the confirmation message when the response is JSON.
func (c *Client) TestWebhook(ctx context.Context, id, topic string) (string, error) {
	id, err := parseWebhookID(id)
	if err != nil {
		return "", err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf(webhookTestEndpoint, id, url.PathEscape(topic)), nil, nil)
	if err != nil {
		return "", fmt.Errorf("testing webhook: %w", err)
	}

	var raw json.RawMessage
	if err := parseResponse(resp, &raw); err != nil {
		var syntaxErr *json.SyntaxError
		if !errors.As(err, &syntaxErr) {
			return "", fmt.Errorf("parsing test webhook response: %w", err)
		}
		// The body was not JSON; nothing more to report.
		return "", nil
	}

	var message string
	if err := json.Unmarshal(raw, &message); err == nil {
		return message, nil
	}
	return strings.TrimSpace(string(raw)), nil
}

// ListWebhookSubmissions lists webhook delivery records. Page defaults to 1
// and page size to 100.
func (c *Client) ListWebhookSubmissions(ctx context.Context, opts *WebhookSubmissionsOptions) (*WebhookSubmissionList, error) {
	if opts == nil {
		opts = &WebhookSubmissionsOptions{}
	}

	params := url.Values{}
	page := opts.Page
	if page <= 0 {
		page = defaultSubmissionsPage
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultSubmissionsPageSize
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))
	setTime(params, "created_after", opts.CreatedAfter)
	setTime(params, "created_before", opts.CreatedBefore)
	if opts.IsSuccess != nil {
		params.Set("is_success", strconv.FormatBool(*opts.IsSuccess))
	}
	if opts.ResponseCode > 0 {
		params.Set("response_code", strconv.Itoa(opts.ResponseCode))
	}
	if opts.WebhookID != "" {
		id, err := parseWebhookID(opts.WebhookID)
		if err != nil {
			return nil, err
		}
		params.Set("webhook_id", id)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, submissionsEndpoint, params, nil)
	if err != nil {
		return nil, fmt.Errorf("listing webhook submissions: %w", err)
	}

	var list WebhookSubmissionList
	if err := parseResponse(resp, &list); err != nil {
		return nil, fmt.Errorf("parsing webhook submissions response: %w", err)
	}

	return &list, nil
}

// WebhookValidator validates incoming webhook requests.
type WebhookValidator struct {
	sharedSecret    string
	oldSharedSecret string // For zero-downtime key rotation
}

// NewWebhookValidator creates a new webhook validator. The shared secret is
// the API secret of the account the webhook belongs to.
func NewWebhookValidator(sharedSecret string) *WebhookValidator {
	return &WebhookValidator{
		sharedSecret: sharedSecret,
	}
}

// SetOldSecret sets the old shared secret for key rotation.
func (v *WebhookValidator) SetOldSecret(oldSecret string) {
	v.oldSharedSecret = oldSecret
}

// ValidateRequest validates an incoming webhook request. The body is
// restored so it can be read again.
func (v *WebhookValidator) ValidateRequest(r *http.Request) error {
	signature := r.Header.Get(SignatureHeader)
	if signature == "" {
		return fmt.Errorf("missing signature header")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("reading request body: %w", err)
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	return v.ValidatePayload(body, signature)
}

// ValidatePayload checks signature against body.
func (v *WebhookValidator) ValidatePayload(body []byte, signature string) error {
	if v.verifySignature(body, signature, v.sharedSecret) {
		return nil
	}

	if v.oldSharedSecret != "" && v.verifySignature(body, signature, v.oldSharedSecret) {
		return nil
	}

	return fmt.Errorf("invalid signature")
}

// verifySignature verifies the HMAC-SHA256 signature.
func (v *WebhookValidator) verifySignature(body []byte, signature, secret string) bool {
	return hmac.Equal([]byte(strings.ToLower(signature)), []byte(Sign(body, secret)))
}

// Sign returns the signature the provider would attach to body.
func Sign(body []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// ParseWebhookEvent parses a webhook delivery from the request body.
func ParseWebhookEvent(r *http.Request) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		return nil, fmt.Errorf("decoding webhook payload: %w", err)
	}
	return &event, nil
}

// IsPrintJobStatusChange checks if the event reports a print job status change.
func (e *WebhookEvent) IsPrintJobStatusChange() bool {
	return e.Topic == TopicPrintJobStatusChanged
}

// RawPrintJob decodes the event data as a raw print job.
func (e *WebhookEvent) RawPrintJob() (RawJob, error) {
	dec := json.NewDecoder(bytes.NewReader(e.Data))
	dec.UseNumber()

	var job RawJob
	if err := dec.Decode(&job); err != nil {
		return nil, fmt.Errorf("decoding webhook print job: %w", err)
	}
	return job, nil
}

// PrintJob decodes the event data as a simplified print job.
func (e *WebhookEvent) PrintJob() (*Job, error) {
	raw, err := e.RawPrintJob()
	if err != nil {
		return nil, err
	}

	job, err := ToSimplified(raw)
	if err != nil {
		return nil, fmt.Errorf("simplifying webhook print job: %w", err)
	}
	return job, nil
}
