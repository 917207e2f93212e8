package lulu

import (
	"strconv"
)

// responseShape tells the translator which endpoint produced a raw job.
// The create endpoint answers with a narrower document than the read endpoints.
type responseShape int

const (
	readShape responseShape = iota
	createShape
)

// lineItemKeys are the accepted names of the line item list, in lookup order.
var lineItemKeys = []string{"line_items", "items"}

// ToSimplified converts a print job returned by the read endpoints into its
// simplified form. It fails with a *TranslationError if a required field is
// missing or has an incompatible type.
func ToSimplified(raw RawJob) (*Job, error) {
	return simplify(newNode("", raw))
}

// ToSimplifiedList converts every job of a raw page, keeping order and
// pagination fields.
func ToSimplifiedList(raw *RawJobList) (*JobList, error) {
	if raw == nil {
		return nil, &TranslationError{Path: "results", Err: ErrMissingField}
	}

	list := &JobList{
		Count:    raw.Count,
		Next:     raw.Next,
		Previous: raw.Previous,
		Results:  make([]Job, 0, len(raw.Results)),
	}

	for i, item := range raw.Results {
		job, err := simplify(newNode("results["+strconv.Itoa(i)+"]", item))
		if err != nil {
			return nil, err
		}
		list.Results = append(list.Results, *job)
	}

	return list, nil
}

func simplify(root node) (*Job, error) {
	var x extractor

	job := &Job{
		ID:         x.requiredInt(root, "id"),
		ExternalID: x.requiredStr(root, "external_id"),
	}

	for _, item := range x.objects(root, lineItemKeys...) {
		job.LineItems = append(job.LineItems, simplifyLineItem(&x, item, readShape))
	}
	if job.LineItems == nil {
		job.LineItems = []LineItem{}
	}

	job.ContactEmail = x.nonEmptyStr(root, "contact_email")
	job.ChildJobIDs = x.integers(root, "child_job_ids")
	job.ParentJobID = x.integer(root, "parent_job_id")
	job.DateCreated = x.str(root, "date_created")
	job.DateModified = x.str(root, "date_modified")
	job.OrderID = x.str(root, "order_id")
	job.ProductionDelay = x.integer(root, "production_delay")
	job.ProductionDueTime = x.str(root, "production_due_time")
	job.ShippingInformation = simplifyShipping(&x, root)
	job.CostInformation = simplifyCosts(&x, x.object(root, "costs"), readShape)

	if x.err != nil {
		return nil, x.err
	}
	return job, nil
}

func simplifyLineItem(x *extractor, item node, shape responseShape) LineItem {
	status := x.object(item, "status")
	messages := x.object(status, "messages")
	fileErrors := x.object(messages, "printable_normalization")
	printable := x.object(item, "printable_normalization")

	li := LineItem{
		ID:          x.requiredInt(item, "id"),
		PrintableID: x.requiredStr(item, "printable_id"),
		ExternalID:  x.requiredStr(item, "external_id"),
		Quantity:    x.requiredInt(item, "quantity"),
		Title:       x.requiredStr(item, "title"),
		Status:      Status(x.nonEmptyStr(status, "name")),
		StatusInfo: StatusInfo{
			Delay:          x.raw(messages, "delay"),
			Error:          x.raw(messages, "error"),
			Info:           x.raw(messages, "info"),
			CoverErrors:    x.raw(fileErrors, "cover"),
			InteriorErrors: x.raw(fileErrors, "interior"),
		},
		PrintInformation: PrintInformation{
			Cover:    simplifyPrintFile(x, x.object(printable, "cover"), shape),
			Interior: simplifyPrintFile(x, x.object(printable, "interior"), shape),
		},
	}

	switch shape {
	case createShape:
		li.TrackingURLs = x.strings(item, "tracking_urls")
		li.TrackingID = x.str(item, "tracking_id")
	default:
		li.TrackingURLs = x.strings(messages, "tracking_urls")
		li.TrackingID = x.str(messages, "tracking_id")
		li.CarrierName = x.str(messages, "carrier_name")
		li.StatusInfo.Timestamp = x.str(messages, "timestamp")

		reprint := x.object(item, "reprint_info", "reprint")
		li.ReprintInfo = ReprintInfo{
			Defect:         x.str(reprint, "defect"),
			Description:    x.str(reprint, "description"),
			CostCenter:     x.raw(reprint, "cost_center"),
			PrinterAtFault: x.raw(reprint, "printer_at_fault"),
		}
	}

	return li
}

func simplifyPrintFile(x *extractor, side node, shape responseShape) PrintFile {
	normalized := x.object(side, "normalized_file")

	f := PrintFile{
		JobID:        x.integer(side, "job_id"),
		Filename:     x.str(normalized, "filename"),
		SourceMD5Sum: x.str(side, "source_md5_sum"),
		SourceURL:    x.str(side, "source_url"),
	}

	if shape == createShape {
		f.FileID = x.integer(side, "file_id")
	} else {
		f.FileID = x.integer(normalized, "file_id")
	}

	return f
}

func simplifyShipping(x *extractor, root node) ShippingInformation {
	addr := x.object(root, "shipping_address")
	dates := x.object(root, "estimated_shipping_dates")

	countryCode := x.str(addr, "country_code")
	stateCode := x.str(addr, "state_code")

	var level *ShippingLevel
	if s := x.str(root, "shipping_level"); s != nil {
		level = Level(ShippingLevel(*s))
	}

	return ShippingInformation{
		City:             x.str(addr, "city"),
		CountryCode:      countryCode,
		Country:          clonePtr(countryCode),
		Level:            level,
		Email:            x.str(addr, "email"),
		IsBusiness:       x.boolean(addr, "is_business"),
		Name:             x.str(addr, "name"),
		Organization:     x.str(addr, "organization"),
		PhoneNumber:      x.str(addr, "phone_number"),
		Postcode:         x.str(addr, "postcode"),
		StateCode:        stateCode,
		State:            clonePtr(stateCode),
		Street1:          x.str(addr, "street1"),
		Street2:          x.str(addr, "street2"),
		Title:            x.str(addr, "title"),
		ArrivalMax:       x.str(dates, "arrival_max"),
		ArrivalMin:       x.str(dates, "arrival_min"),
		DispatchMax:      x.str(dates, "dispatch_max"),
		DispatchMin:      x.str(dates, "dispatch_min"),
		RecipientTaxID:   x.str(addr, "recipient_tax_id"),
		Warnings:         x.raw(addr, "warnings"),
		SuggestedAddress: x.raw(addr, "suggested_address"),
	}
}

func simplifyCosts(x *extractor, costs node, shape responseShape) CostInformation {
	ci := CostInformation{
		TotalCostExclTax:    x.str(costs, "total_cost_excl_tax"),
		TotalCostInclTax:    x.str(costs, "total_cost_incl_tax"),
		TotalDiscountAmount: x.str(costs, "total_discount_amount"),
		TotalTax:            x.str(costs, "total_tax"),
	}

	ci.ShippingCost = x.rawObject(costs, "shipping_cost")
	ci.LineItemCosts = x.rawArray(costs, "line_item_costs")

	if shape == createShape {
		// The create response carries neither a currency nor fulfillment detail.
		ci.FulfillmentCost = map[string]any{
			"tax_rate":            nil,
			"total_cost_excl_tax": nil,
			"total_cost_incl_tax": nil,
			"total_tax":           nil,
		}
		return ci
	}

	ci.Currency = x.str(costs, "currency")
	ci.FulfillmentCost = x.rawObject(costs, "fulfillment_cost")

	return ci
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
