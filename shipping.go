package lulu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultCurrency = "USD"

// CostLineItem describes a line item for cost and shipping estimates.
type CostLineItem struct {
	PageCount    int    `json:"page_count"`
	PodPackageID string `json:"pod_package_id"`
	Quantity     int    `json:"quantity"`
}

// CostCalculation is the estimated cost of a prospective print job. The
// nested breakdowns are kept as returned by the provider.
type CostCalculation struct {
	Currency            string          `json:"currency"`
	TotalCostExclTax    string          `json:"total_cost_excl_tax"`
	TotalCostInclTax    string          `json:"total_cost_incl_tax"`
	TotalDiscountAmount string          `json:"total_discount_amount"`
	TotalTax            string          `json:"total_tax"`
	ShippingCost        json.RawMessage `json:"shipping_cost"`
	FulfillmentCost     json.RawMessage `json:"fulfillment_cost"`
	LineItemCosts       json.RawMessage `json:"line_item_costs"`
}

// ShippingOption is one way of shipping a prospective print job.
type ShippingOption struct {
	ID              int64         `json:"id"`
	Level           ShippingLevel `json:"level"`
	Currency        string        `json:"currency"`
	CostExclTax     string        `json:"cost_excl_tax"`
	BusinessOnly    bool          `json:"business_only"`
	HomeOnly        bool          `json:"home_only"`
	PostboxOK       bool          `json:"postbox_ok"`
	Traceable       bool          `json:"traceable"`
	TransitTime     int           `json:"transit_time"`
	MinDeliveryDate string        `json:"min_delivery_date,omitempty"`
	MaxDeliveryDate string        `json:"max_delivery_date"`
	MinDispatchDate string        `json:"min_dispatch_date,omitempty"`
	MaxDispatchDate string        `json:"max_dispatch_date,omitempty"`
	TotalDaysMin    int           `json:"total_days_min,omitempty"`
	TotalDaysMax    int           `json:"total_days_max,omitempty"`
}

// CalculatePrintJobCost estimates the cost of printing and shipping the
// given line items.
func (c *Client) CalculatePrintJobCost(ctx context.Context, items []CostLineItem, address ShippingAddress, level ShippingLevel) (*CostCalculation, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one line item is required for cost calculation")
	}

	body := map[string]any{
		"line_items":       items,
		"shipping_address": address,
		"shipping_option":  level,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, costCalculationEndpoint, nil, body)
	if err != nil {
		return nil, fmt.Errorf("calculating print job cost: %w", err)
	}

	var calc CostCalculation
	if err := parseResponse(resp, &calc); err != nil {
		return nil, fmt.Errorf("parsing cost calculation response: %w", err)
	}

	return &calc, nil
}

// ShippingOptions lists the shipping options available for the given line
// items and address. currency defaults to USD.
func (c *Client) ShippingOptions(ctx context.Context, items []CostLineItem, address ShippingAddress, currency string) ([]ShippingOption, error) {
	if currency == "" {
		currency = defaultCurrency
	}

	body := map[string]any{
		"line_items":       items,
		"shipping_address": address,
		"currency":         currency,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, shippingOptionsEndpoint, nil, body)
	if err != nil {
		return nil, fmt.Errorf("retrieving shipping options: %w", err)
	}

	var options []ShippingOption
	if err := parseResponse(resp, &options); err != nil {
		return nil, fmt.Errorf("parsing shipping options response: %w", err)
	}

	return options, nil
}
