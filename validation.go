package lulu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// File validation statuses.
const (
	ValidationValidating  = "VALIDATING"
	ValidationValidated   = "VALIDATED"
	ValidationNormalizing = "NORMALIZING"
	ValidationNormalized  = "NORMALIZED"
	ValidationFailed      = "ERROR"
)

// InteriorValidation is the result of validating an interior file.
type InteriorValidation struct {
	ID                 int64       `json:"id"`
	SourceURL          string      `json:"source_url"`
	PageCount          json.Number `json:"page_count"`
	Errors             []string    `json:"errors"`
	Status             string      `json:"status"`
	ValidPodPackageIDs []string    `json:"valid_pod_package_ids"`
}

// CoverValidation is the result of validating a cover file.
type CoverValidation struct {
	ID        int64    `json:"id"`
	SourceURL string   `json:"source_url"`
	Errors    []string `json:"errors"`
	Status    string   `json:"status"`
}

// Done reports whether validation has finished.
func (v *InteriorValidation) Done() bool {
	return v.Status == ValidationValidated || v.Status == ValidationFailed
}

// Done reports whether normalization has finished.
func (v *CoverValidation) Done() bool {
	return v.Status == ValidationNormalized || v.Status == ValidationFailed
}

// ValidateInterior submits an interior file for validation. podPackageID is
// optional; when set the provider also runs extended validation. Validation
// runs asynchronously; poll GetInteriorValidation with the returned ID.
func (c *Client) ValidateInterior(ctx context.Context, sourceURL, podPackageID string) (*InteriorValidation, error) {
	body := map[string]any{
		"source_url": sourceURL,
	}
	if podPackageID != "" {
		body["pod_package_id"] = podPackageID
	}

	resp, err := c.doRequest(ctx, http.MethodPost, validateInteriorPath, nil, body)
	if err != nil {
		return nil, fmt.Errorf("validating interior: %w", err)
	}

	var v InteriorValidation
	if err := parseResponse(resp, &v); err != nil {
		return nil, fmt.Errorf("parsing interior validation response: %w", err)
	}

	return &v, nil
}

// GetInteriorValidation retrieves the state of an interior validation.
func (c *Client) GetInteriorValidation(ctx context.Context, id int64) (*InteriorValidation, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("%s%d/", validateInteriorPath, id), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting interior validation: %w", err)
	}

	var v InteriorValidation
	if err := parseResponse(resp, &v); err != nil {
		return nil, fmt.Errorf("parsing interior validation response: %w", err)
	}

	return &v, nil
}

// ValidateCover submits a cover file for validation against the product and
// page count it will be printed with.
func (c *Client) ValidateCover(ctx context.Context, sourceURL, podPackageID string, interiorPageCount int) (*CoverValidation, error) {
	if podPackageID == "" {
		return nil, fmt.Errorf("pod package ID is required for cover validation")
	}
	if interiorPageCount <= 0 {
		return nil, fmt.Errorf("interior page count is required for cover validation")
	}

	body := map[string]any{
		"source_url":          sourceURL,
		"pod_package_id":      podPackageID,
		"interior_page_count": interiorPageCount,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, validateCoverPath, nil, body)
	if err != nil {
		return nil, fmt.Errorf("validating cover: %w", err)
	}

	var v CoverValidation
	if err := parseResponse(resp, &v); err != nil {
		return nil, fmt.Errorf("parsing cover validation response: %w", err)
	}

	return &v, nil
}

// GetCoverValidation retrieves the state of a cover validation.
func (c *Client) GetCoverValidation(ctx context.Context, id int64) (*CoverValidation, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("%s%d/", validateCoverPath, id), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting cover validation: %w", err)
	}

	var v CoverValidation
	if err := parseResponse(resp, &v); err != nil {
		return nil, fmt.Errorf("parsing cover validation response: %w", err)
	}

	return &v, nil
}
