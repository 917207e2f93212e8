package lulu

// RawJob is a print job exactly as the API returns it.
type RawJob map[string]any

// RawJobList is a page of raw print jobs.
type RawJobList struct {
	Count    int64    `json:"count"`
	Next     *string  `json:"next"`
	Previous *string  `json:"previous"`
	Results  []RawJob `json:"results"`
}

// Status is the processing state of a print job line item.
type Status string

// Print job statuses.
const (
	StatusCreated           Status = "CREATED"
	StatusAccepted          Status = "ACCEPTED"
	StatusRejected          Status = "REJECTED"
	StatusInProduction      Status = "IN_PRODUCTION"
	StatusError             Status = "ERROR"
	StatusShipped           Status = "SHIPPED"
	StatusUnpaid            Status = "UNPAID"
	StatusPaymentInProgress Status = "PAYMENT_IN_PROGRESS"
	StatusProductionReady   Status = "PRODUCTION_READY"
	StatusProductionDelayed Status = "PRODUCTION_DELAYED"
	StatusCanceled          Status = "CANCELED"
)

// ShippingLevel selects the carrier service for a print job.
type ShippingLevel string

// Shipping levels.
const (
	ShippingMail         ShippingLevel = "MAIL"
	ShippingPriorityMail ShippingLevel = "PRIORITY_MAIL"
	ShippingGroundHD     ShippingLevel = "GROUND_HD"
	ShippingGroundBus    ShippingLevel = "GROUND_BUS"
	ShippingGround       ShippingLevel = "GROUND"
	ShippingExpedited    ShippingLevel = "EXPEDITED"
	ShippingExpress      ShippingLevel = "EXPRESS"
)

// ShippingLevels lists every level the API accepts.
var ShippingLevels = []ShippingLevel{
	ShippingMail,
	ShippingPriorityMail,
	ShippingGroundHD,
	ShippingGroundBus,
	ShippingGround,
	ShippingExpedited,
	ShippingExpress,
}

// Job is the simplified form of a print job. Every field is always
// serialized; data the API did not provide is null.
type Job struct {
	ID                  int64               `json:"id"`
	ExternalID          *string             `json:"external_id"`
	LineItems           []LineItem          `json:"line_items"`
	ChildJobIDs         []int64             `json:"child_job_ids"`
	ParentJobID         *int64              `json:"parent_job_id"`
	DateCreated         *string             `json:"date_created"`
	DateModified        *string             `json:"date_modified"`
	ContactEmail        string              `json:"contact_email"`
	OrderID             *string             `json:"order_id"`
	ProductionDelay     *int64              `json:"production_delay"`
	ProductionDueTime   *string             `json:"production_due_time"`
	ShippingInformation ShippingInformation `json:"shipping_information"`
	CostInformation     CostInformation     `json:"cost_information"`
}

// LineItem is one printed title within a job.
type LineItem struct {
	ID               int64            `json:"id"`
	PrintableID      *string          `json:"printable_id"`
	ExternalID       *string          `json:"external_id"`
	Quantity         int64            `json:"quantity"`
	Title            *string          `json:"title"`
	Status           Status           `json:"status"`
	TrackingURLs     []string         `json:"tracking_urls"`
	TrackingID       *string          `json:"tracking_id"`
	CarrierName      *string          `json:"carrier_name"`
	StatusInfo       StatusInfo       `json:"status_info"`
	PrintInformation PrintInformation `json:"print_information"`
	ReprintInfo      ReprintInfo      `json:"reprint_info"`
}

// StatusInfo carries the detail messages attached to a line item status.
type StatusInfo struct {
	Delay          any     `json:"delay"`
	Error          any     `json:"error"`
	Info           any     `json:"info"`
	CoverErrors    any     `json:"cover_errors"`
	InteriorErrors any     `json:"interior_errors"`
	Timestamp      *string `json:"timestamp"`
}

// PrintInformation describes the cover and interior files of a line item.
type PrintInformation struct {
	Cover    PrintFile `json:"cover"`
	Interior PrintFile `json:"interior"`
}

// PrintFile is the normalization record of one source file.
type PrintFile struct {
	JobID        *int64  `json:"job_id"`
	FileID       *int64  `json:"file_id"`
	Filename     *string `json:"filename"`
	SourceMD5Sum *string `json:"source_md5_sum"`
	SourceURL    *string `json:"source_url"`
}

// ReprintInfo is set on line items that reprint a defective order.
type ReprintInfo struct {
	Defect         *string `json:"defect"`
	Description    *string `json:"description"`
	CostCenter     any     `json:"cost_center"`
	PrinterAtFault any     `json:"printer_at_fault"`
}

// ShippingInformation merges the shipping address, level and estimated
// dates. Country and State mirror CountryCode and StateCode.
type ShippingInformation struct {
	City             *string        `json:"city"`
	CountryCode      *string        `json:"country_code"`
	Country          *string        `json:"country"`
	Level            *ShippingLevel `json:"level"`
	Email            *string        `json:"email"`
	IsBusiness       *bool          `json:"is_business"`
	Name             *string        `json:"name"`
	Organization     *string        `json:"organization"`
	PhoneNumber      *string        `json:"phone_number"`
	Postcode         *string        `json:"postcode"`
	StateCode        *string        `json:"state_code"`
	State            *string        `json:"state"`
	Street1          *string        `json:"street1"`
	Street2          *string        `json:"street2"`
	Title            *string        `json:"title"`
	ArrivalMax       *string        `json:"arrival_max"`
	ArrivalMin       *string        `json:"arrival_min"`
	DispatchMax      *string        `json:"dispatch_max"`
	DispatchMin      *string        `json:"dispatch_min"`
	RecipientTaxID   *string        `json:"recipient_tax_id"`
	Warnings         any            `json:"warnings"`
	SuggestedAddress any            `json:"suggested_address"`
}

// CostInformation is the cost breakdown of a job. Amounts are decimal strings.
// ShippingCost, FulfillmentCost and LineItemCosts hold the provider's values
// as received.
type CostInformation struct {
	Currency            *string `json:"currency"`
	TotalCostExclTax    *string `json:"total_cost_excl_tax"`
	TotalCostInclTax    *string `json:"total_cost_incl_tax"`
	TotalDiscountAmount *string `json:"total_discount_amount"`
	TotalTax            *string `json:"total_tax"`
	ShippingCost        any     `json:"shipping_cost"`
	FulfillmentCost     any     `json:"fulfillment_cost"`
	LineItemCosts       any     `json:"line_item_costs"`
}

// JobList is a page of simplified print jobs.
type JobList struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Job   `json:"results"`
}

// String returns a pointer to s. It helps fill the optional fields of
// ShippingInformation.
func String(s string) *string {
	return &s
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Level returns a pointer to l.
func Level(l ShippingLevel) *ShippingLevel {
	return &l
}
