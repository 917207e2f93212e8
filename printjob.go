package lulu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// PrintJobStatus is the status resource of a print job.
type PrintJobStatus struct {
	Name     Status         `json:"name"`
	Messages map[string]any `json:"messages,omitempty"`
	Changed  string         `json:"changed,omitempty"`
}

// ListPrintJobsOptions filters a print job listing. Zero values are not sent.
type ListPrintJobsOptions struct {
	Page             int
	PageSize         int
	CreatedAfter     time.Time
	CreatedBefore    time.Time
	ModifiedAfter    time.Time
	ModifiedBefore   time.Time
	ID               int64
	OrderID          string
	ExcludeLineItems bool
	Search           string
	// Ordering is a field name, prefixed with "-" for descending order.
	Ordering string
	Status   Status
}

func (o *ListPrintJobsOptions) values() url.Values {
	params := url.Values{}
	if o == nil {
		return params
	}
	if o.Page > 0 {
		params.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(o.PageSize))
	}
	setTime(params, "created_after", o.CreatedAfter)
	setTime(params, "created_before", o.CreatedBefore)
	setTime(params, "modified_after", o.ModifiedAfter)
	setTime(params, "modified_before", o.ModifiedBefore)
	if o.ID > 0 {
		params.Set("id", strconv.FormatInt(o.ID, 10))
	}
	if o.OrderID != "" {
		params.Set("order_id", o.OrderID)
	}
	if o.ExcludeLineItems {
		params.Set("exclude_line_items", "true")
	}
	if o.Search != "" {
		params.Set("search", o.Search)
	}
	if o.Ordering != "" {
		params.Set("ordering", o.Ordering)
	}
	if o.Status != "" {
		params.Set("status", string(o.Status))
	}
	return params
}

// StatisticsOptions filters print job statistics.
type StatisticsOptions struct {
	StartDate time.Time
	EndDate   time.Time
	// TimeStep is DAY, WEEK or MONTH.
	TimeStep string
}

func setTime(params url.Values, key string, t time.Time) {
	if !t.IsZero() {
		params.Set(key, t.UTC().Format(time.RFC3339))
	}
}

// ListRawPrintJobs retrieves a page of print jobs in the provider's format.
func (c *Client) ListRawPrintJobs(ctx context.Context, opts *ListPrintJobsOptions) (*RawJobList, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, printJobsEndpoint, opts.values(), nil)
	if err != nil {
		return nil, fmt.Errorf("listing print jobs: %w", err)
	}

	var list RawJobList
	if err := parseResponse(resp, &list); err != nil {
		return nil, fmt.Errorf("parsing print jobs response: %w", err)
	}

	return &list, nil
}

// ListPrintJobs retrieves a page of print jobs in simplified form.
func (c *Client) ListPrintJobs(ctx context.Context, opts *ListPrintJobsOptions) (*JobList, error) {
	raw, err := c.ListRawPrintJobs(ctx, opts)
	if err != nil {
		return nil, err
	}

	list, err := ToSimplifiedList(raw)
	if err != nil {
		return nil, fmt.Errorf("simplifying print jobs: %w", err)
	}

	return list, nil
}

// GetRawPrintJob retrieves a single print job in the provider's format.
func (c *Client) GetRawPrintJob(ctx context.Context, id int64) (RawJob, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf(printJobEndpoint, id), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting print job: %w", err)
	}

	var job RawJob
	if err := parseResponse(resp, &job); err != nil {
		return nil, fmt.Errorf("parsing print job response: %w", err)
	}

	return job, nil
}

// GetPrintJob retrieves a single print job in simplified form.
func (c *Client) GetPrintJob(ctx context.Context, id int64) (*Job, error) {
	raw, err := c.GetRawPrintJob(ctx, id)
	if err != nil {
		return nil, err
	}

	job, err := ToSimplified(raw)
	if err != nil {
		return nil, fmt.Errorf("simplifying print job %d: %w", id, err)
	}

	return job, nil
}

// CreateRawPrintJob submits a print job in the provider's format.
func (c *Client) CreateRawPrintJob(ctx context.Context, req *RawCreateRequest) (RawJob, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, printJobsEndpoint, nil, req)
	if err != nil {
		return nil, fmt.Errorf("creating print job: %w", err)
	}

	var job RawJob
	if err := parseResponse(resp, &job); err != nil {
		return nil, fmt.Errorf("parsing create print job response: %w", err)
	}

	return job, nil
}

// CreatePrintJob submits a print job described in simplified form and
// returns the created job. See FromCreateResponse for the fields that are
// null in the result.
func (c *Client) CreatePrintJob(ctx context.Context, in *CreateJobInput) (*Job, error) {
	req, err := ToRawCreateRequest(in)
	if err != nil {
		return nil, err
	}

	raw, err := c.CreateRawPrintJob(ctx, req)
	if err != nil {
		return nil, err
	}

	job, err := FromCreateResponse(raw, in)
	if err != nil {
		return nil, fmt.Errorf("simplifying created print job: %w", err)
	}

	c.logger.Info().Int64("job_id", job.ID).Int("line_items", len(job.LineItems)).Msg("print job created")

	return job, nil
}

// GetPrintJobStatistics retrieves aggregated print job statistics. The
// response is returned undecoded.
func (c *Client) GetPrintJobStatistics(ctx context.Context, opts *StatisticsOptions) (json.RawMessage, error) {
	params := url.Values{}
	if opts != nil {
		if !opts.StartDate.IsZero() {
			params.Set("start_date", opts.StartDate.Format(time.DateOnly))
		}
		if !opts.EndDate.IsZero() {
			params.Set("end_date", opts.EndDate.Format(time.DateOnly))
		}
		if opts.TimeStep != "" {
			params.Set("time_step", opts.TimeStep)
		}
	}

	resp, err := c.doRequest(ctx, http.MethodGet, statisticsEndpoint, params, nil)
	if err != nil {
		return nil, fmt.Errorf("getting print job statistics: %w", err)
	}

	var stats json.RawMessage
	if err := parseResponse(resp, &stats); err != nil {
		return nil, fmt.Errorf("parsing statistics response: %w", err)
	}

	return stats, nil
}

// GetPrintJobCosts retrieves the costs of a print job.
func (c *Client) GetPrintJobCosts(ctx context.Context, id int64) (*CostInformation, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf(printJobCostsEndpoint, id), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting print job costs: %w", err)
	}

	var raw map[string]any
	if err := parseResponse(resp, &raw); err != nil {
		return nil, fmt.Errorf("parsing costs response: %w", err)
	}

	var x extractor
	costs := simplifyCosts(&x, newNode("costs", raw), readShape)
	if x.err != nil {
		return nil, fmt.Errorf("simplifying costs of print job %d: %w", id, x.err)
	}

	return &costs, nil
}

// GetPrintJobStatus retrieves the status of a print job.
func (c *Client) GetPrintJobStatus(ctx context.Context, id int64) (*PrintJobStatus, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf(printJobStatusEndpoint, id), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting print job status: %w", err)
	}

	var status PrintJobStatus
	if err := parseResponse(resp, &status); err != nil {
		return nil, fmt.Errorf("parsing status response: %w", err)
	}

	return &status, nil
}

// CancelPrintJob cancels a print job that has not been sent to production yet.
func (c *Client) CancelPrintJob(ctx context.Context, id int64) (*PrintJobStatus, error) {
	body := map[string]any{"name": StatusCanceled}

	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf(printJobStatusEndpoint, id), nil, body)
	if err != nil {
		return nil, fmt.Errorf("cancelling print job: %w", err)
	}

	var status PrintJobStatus
	if err := parseResponse(resp, &status); err != nil {
		return nil, fmt.Errorf("parsing cancel response: %w", err)
	}

	return &status, nil
}
