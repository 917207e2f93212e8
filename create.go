package lulu

import (
	"fmt"
)

// DefaultProductionDelay is the number of minutes a new job waits before it
// is sent to production and can no longer be canceled.
const DefaultProductionDelay = 60

// CreateJobInput is the simplified description of a job to create.
type CreateJobInput struct {
	LineItems           []CreateLineItem    `json:"line_items"`
	ShippingInformation ShippingInformation `json:"shipping_information"`
	// ContactEmail defaults to ShippingInformation.Email.
	ContactEmail    string `json:"contact_email,omitempty"`
	ExternalID      string `json:"external_id,omitempty"`
	ProductionDelay int    `json:"production_delay,omitempty"`
}

// CreateLineItem is one title to print. Cover and Interior are public URLs
// of the source files.
type CreateLineItem struct {
	Cover        string `json:"cover"`
	Interior     string `json:"interior"`
	PodPackageID string `json:"pod_package_id"`
	Quantity     int    `json:"quantity"`
	Title        string `json:"title"`
	ExternalID   string `json:"external_id,omitempty"`
}

// RawCreateRequest is the request body of the create print job endpoint.
type RawCreateRequest struct {
	LineItems       []RawCreateLineItem `json:"line_items"`
	ShippingAddress ShippingAddress     `json:"shipping_address"`
	ShippingLevel   ShippingLevel       `json:"shipping_level"`
	ContactEmail    string              `json:"contact_email"`
	ExternalID      string              `json:"external_id"`
	ProductionDelay int                 `json:"production_delay"`
}

// RawCreateLineItem is a line item in the provider's request format.
type RawCreateLineItem struct {
	ExternalID             string                 `json:"external_id,omitempty"`
	PrintableNormalization PrintableNormalization `json:"printable_normalization"`
	Quantity               int                    `json:"quantity"`
	Title                  string                 `json:"title"`
}

// PrintableNormalization points the provider at the files to print.
type PrintableNormalization struct {
	Cover        SourceFile `json:"cover"`
	Interior     SourceFile `json:"interior"`
	PodPackageID string     `json:"pod_package_id"`
}

// SourceFile is a file the provider downloads.
type SourceFile struct {
	SourceURL string `json:"source_url"`
}

// ShippingAddress is an address in the provider's request format.
type ShippingAddress struct {
	City           string `json:"city"`
	CountryCode    string `json:"country_code"`
	Email          string `json:"email,omitempty"`
	IsBusiness     *bool  `json:"is_business,omitempty"`
	Name           string `json:"name,omitempty"`
	Organization   string `json:"organization,omitempty"`
	PhoneNumber    string `json:"phone_number"`
	Postcode       string `json:"postcode"`
	StateCode      string `json:"state_code,omitempty"`
	Street1        string `json:"street1"`
	Street2        string `json:"street2,omitempty"`
	Title          string `json:"title,omitempty"`
	RecipientTaxID string `json:"recipient_tax_id,omitempty"`
}

// Address returns the shipping address in request format. Country and State
// are used when CountryCode and StateCode are unset.
func (s ShippingInformation) Address() ShippingAddress {
	return ShippingAddress{
		City:           deref(s.City),
		CountryCode:    firstSet(s.CountryCode, s.Country),
		Email:          deref(s.Email),
		IsBusiness:     s.IsBusiness,
		Name:           deref(s.Name),
		Organization:   deref(s.Organization),
		PhoneNumber:    deref(s.PhoneNumber),
		Postcode:       deref(s.Postcode),
		StateCode:      firstSet(s.StateCode, s.State),
		Street1:        deref(s.Street1),
		Street2:        deref(s.Street2),
		Title:          deref(s.Title),
		RecipientTaxID: deref(s.RecipientTaxID),
	}
}

// ToRawCreateRequest builds the create print job request body.
func ToRawCreateRequest(in *CreateJobInput) (*RawCreateRequest, error) {
	if in == nil {
		return nil, &TranslationError{Path: "line_items", Err: ErrMissingField}
	}
	if len(in.LineItems) == 0 {
		return nil, &TranslationError{Path: "line_items", Err: ErrMissingField, Detail: "at least one line item is required"}
	}

	req := &RawCreateRequest{
		LineItems:       make([]RawCreateLineItem, 0, len(in.LineItems)),
		ShippingAddress: in.ShippingInformation.Address(),
		ContactEmail:    in.ContactEmail,
		ExternalID:      in.ExternalID,
		ProductionDelay: in.ProductionDelay,
	}

	for i, item := range in.LineItems {
		if item.Cover == "" {
			return nil, &TranslationError{Path: fmt.Sprintf("line_items[%d].cover", i), Err: ErrMissingField}
		}
		if item.Interior == "" {
			return nil, &TranslationError{Path: fmt.Sprintf("line_items[%d].interior", i), Err: ErrMissingField}
		}

		req.LineItems = append(req.LineItems, RawCreateLineItem{
			ExternalID: item.ExternalID,
			PrintableNormalization: PrintableNormalization{
				Cover:        SourceFile{SourceURL: item.Cover},
				Interior:     SourceFile{SourceURL: item.Interior},
				PodPackageID: item.PodPackageID,
			},
			Quantity: item.Quantity,
			Title:    item.Title,
		})
	}

	if in.ShippingInformation.Level == nil {
		return nil, &TranslationError{Path: "shipping_information.level", Err: ErrMissingField}
	}
	req.ShippingLevel = *in.ShippingInformation.Level

	if req.ContactEmail == "" {
		req.ContactEmail = deref(in.ShippingInformation.Email)
	}
	if req.ContactEmail == "" {
		return nil, &TranslationError{Path: "shipping_information.email", Err: ErrMissingField, Detail: "needed as contact email"}
	}

	if req.ProductionDelay == 0 {
		req.ProductionDelay = DefaultProductionDelay
	}

	return req, nil
}

// FromCreateResponse builds a simplified job from the create endpoint's
// response. That response lacks status messages, carrier names, reprint
// data, creation dates, job relations, the cost currency and the fulfillment
// breakdown, so those fields are null; no follow-up request is made to fill
// them. Address validation warnings and suggestions from the response are
// copied onto a copy of in's shipping information.
func FromCreateResponse(raw RawJob, in *CreateJobInput) (*Job, error) {
	var x extractor
	root := newNode("", raw)

	job := &Job{
		ID:         x.requiredInt(root, "id"),
		ExternalID: x.requiredStr(root, "external_id"),
		LineItems:  []LineItem{},
	}

	for _, item := range x.objects(root, lineItemKeys...) {
		job.LineItems = append(job.LineItems, simplifyLineItem(&x, item, createShape))
	}

	job.ContactEmail = x.nonEmptyStr(root, "contact_email")
	job.OrderID = x.str(root, "order_id")
	job.ProductionDelay = x.integer(root, "production_delay")
	job.ProductionDueTime = x.str(root, "production_due_time")

	if in != nil {
		job.ShippingInformation = in.ShippingInformation.clone()
	}
	addr := x.object(root, "shipping_address")
	job.ShippingInformation.Warnings = x.raw(addr, "warnings")
	job.ShippingInformation.SuggestedAddress = x.raw(addr, "suggested_address")

	job.CostInformation = simplifyCosts(&x, x.object(root, "costs"), createShape)

	if x.err != nil {
		return nil, x.err
	}
	return job, nil
}

// clone returns a copy that shares no pointers with s.
func (s ShippingInformation) clone() ShippingInformation {
	return ShippingInformation{
		City:             clonePtr(s.City),
		CountryCode:      clonePtr(s.CountryCode),
		Country:          clonePtr(s.Country),
		Level:            clonePtr(s.Level),
		Email:            clonePtr(s.Email),
		IsBusiness:       clonePtr(s.IsBusiness),
		Name:             clonePtr(s.Name),
		Organization:     clonePtr(s.Organization),
		PhoneNumber:      clonePtr(s.PhoneNumber),
		Postcode:         clonePtr(s.Postcode),
		StateCode:        clonePtr(s.StateCode),
		State:            clonePtr(s.State),
		Street1:          clonePtr(s.Street1),
		Street2:          clonePtr(s.Street2),
		Title:            clonePtr(s.Title),
		ArrivalMax:       clonePtr(s.ArrivalMax),
		ArrivalMin:       clonePtr(s.ArrivalMin),
		DispatchMax:      clonePtr(s.DispatchMax),
		DispatchMin:      clonePtr(s.DispatchMin),
		RecipientTaxID:   clonePtr(s.RecipientTaxID),
		Warnings:         s.Warnings,
		SuggestedAddress: s.SuggestedAddress,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstSet(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}
