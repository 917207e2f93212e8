package lulu

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRaw(t *testing.T, s string) RawJob {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var raw RawJob
	require.NoError(t, dec.Decode(&raw))
	return raw
}

func ptr[T any](v T) *T {
	return &v
}

const fullRawJob = `{
	"id": 1,
	"external_id": "X",
	"contact_email": "a@b.com",
	"child_job_ids": [2, 3],
	"parent_job_id": null,
	"date_created": "2024-01-01T00:00:00Z",
	"date_modified": "2024-01-02T00:00:00Z",
	"order_id": "o1",
	"production_delay": 120,
	"production_due_time": "2024-01-01T02:00:00Z",
	"line_items": [{
		"id": 5,
		"printable_id": "u",
		"external_id": "li1",
		"quantity": 2,
		"title": "Book",
		"status": {
			"name": "SHIPPED",
			"messages": {
				"tracking_urls": ["https://track/1"],
				"tracking_id": "T1",
				"carrier_name": "UPS",
				"delay": "d",
				"error": "e",
				"info": "i",
				"timestamp": "2024-01-03T00:00:00Z",
				"printable_normalization": {"cover": ["cover too small"], "interior": {"code": "x"}}
			}
		},
		"printable_normalization": {
			"cover": {
				"job_id": 10,
				"source_md5_sum": "m1",
				"source_url": "http://c",
				"normalized_file": {"file_id": 11, "filename": "cover.pdf"}
			},
			"interior": {
				"job_id": 20,
				"source_md5_sum": "m2",
				"source_url": "http://i",
				"normalized_file": {"file_id": 21, "filename": "interior.pdf"}
			}
		},
		"reprint_info": {
			"defect": "PRINTING",
			"description": "smudged",
			"cost_center": "LULU",
			"printer_at_fault": "P1"
		}
	}],
	"shipping_address": {
		"city": "Durham",
		"country_code": "US",
		"email": "ship@b.com",
		"is_business": true,
		"name": "Ann",
		"organization": "Org",
		"phone_number": "123",
		"postcode": "27701",
		"state_code": "NC",
		"street1": "Main St 1",
		"street2": "Suite 2",
		"title": "MS",
		"recipient_tax_id": "TAX",
		"warnings": ["check street"],
		"suggested_address": {"city": "Durham City"}
	},
	"estimated_shipping_dates": {
		"arrival_max": "2024-01-10",
		"arrival_min": "2024-01-08",
		"dispatch_max": "2024-01-05",
		"dispatch_min": "2024-01-04"
	},
	"shipping_level": "GROUND",
	"costs": {
		"currency": "USD",
		"total_cost_excl_tax": "10.00",
		"total_cost_incl_tax": "11.00",
		"total_discount_amount": "0.00",
		"total_tax": "1.00",
		"shipping_cost": {"tax_rate": "0.1", "total_cost_excl_tax": "4.00", "total_cost_incl_tax": "4.40", "total_tax": "0.40"},
		"fulfillment_cost": {"tax_rate": "0.1", "total_cost_excl_tax": "0.00", "total_cost_incl_tax": "0.00", "total_tax": "0.00"},
		"line_item_costs": [{
			"cost_excl_discounts": "6.00",
			"discounts": [{"amount": "0.00", "description": "none"}],
			"quantity": 2,
			"tax_rate": "0.1",
			"total_cost_excl_discounts": "6.00",
			"total_cost_excl_tax": "6.00",
			"total_cost_incl_tax": "6.60",
			"total_tax": "0.60",
			"unit_tier_cost": "3.00"
		}]
	}
}`

// specExample is the smallest realistic job returned by the read endpoints.
const specExample = `{"id":1,"external_id":"X","contact_email":"a@b.com","line_items":[{"id":5,"printable_id":"u","external_id":"li1","quantity":2,"title":"Book","status":{"name":"CREATED","messages":{}},"printable_normalization":{"cover":{"source_url":"http://c"},"interior":{"source_url":"http://i"}}}],"shipping_address":{"city":"X","country_code":"US","phone_number":"123","postcode":"1","state_code":"CA","street1":"s","email":"e","is_business":false},"shipping_level":"MAIL","costs":{"currency":"USD","total_cost_excl_tax":"1","total_cost_incl_tax":"1","total_tax":"0","shipping_cost":{},"fulfillment_cost":{},"line_item_costs":[]}}`

func TestToSimplifiedFullRecord(t *testing.T) {
	want := &Job{
		ID:                1,
		ExternalID:        ptr("X"),
		ContactEmail:      "a@b.com",
		ChildJobIDs:       []int64{2, 3},
		DateCreated:       ptr("2024-01-01T00:00:00Z"),
		DateModified:      ptr("2024-01-02T00:00:00Z"),
		OrderID:           ptr("o1"),
		ProductionDelay:   ptr(int64(120)),
		ProductionDueTime: ptr("2024-01-01T02:00:00Z"),
		LineItems: []LineItem{{
			ID:           5,
			PrintableID:  ptr("u"),
			ExternalID:   ptr("li1"),
			Quantity:     2,
			Title:        ptr("Book"),
			Status:       StatusShipped,
			TrackingURLs: []string{"https://track/1"},
			TrackingID:   ptr("T1"),
			CarrierName:  ptr("UPS"),
			StatusInfo: StatusInfo{
				Delay:          "d",
				Error:          "e",
				Info:           "i",
				CoverErrors:    []any{"cover too small"},
				InteriorErrors: map[string]any{"code": "x"},
				Timestamp:      ptr("2024-01-03T00:00:00Z"),
			},
			PrintInformation: PrintInformation{
				Cover: PrintFile{
					JobID:        ptr(int64(10)),
					FileID:       ptr(int64(11)),
					Filename:     ptr("cover.pdf"),
					SourceMD5Sum: ptr("m1"),
					SourceURL:    ptr("http://c"),
				},
				Interior: PrintFile{
					JobID:        ptr(int64(20)),
					FileID:       ptr(int64(21)),
					Filename:     ptr("interior.pdf"),
					SourceMD5Sum: ptr("m2"),
					SourceURL:    ptr("http://i"),
				},
			},
			ReprintInfo: ReprintInfo{
				Defect:         ptr("PRINTING"),
				Description:    ptr("smudged"),
				CostCenter:     "LULU",
				PrinterAtFault: "P1",
			},
		}},
		ShippingInformation: ShippingInformation{
			City:             ptr("Durham"),
			CountryCode:      ptr("US"),
			Country:          ptr("US"),
			Level:            Level(ShippingGround),
			Email:            ptr("ship@b.com"),
			IsBusiness:       ptr(true),
			Name:             ptr("Ann"),
			Organization:     ptr("Org"),
			PhoneNumber:      ptr("123"),
			Postcode:         ptr("27701"),
			StateCode:        ptr("NC"),
			State:            ptr("NC"),
			Street1:          ptr("Main St 1"),
			Street2:          ptr("Suite 2"),
			Title:            ptr("MS"),
			ArrivalMax:       ptr("2024-01-10"),
			ArrivalMin:       ptr("2024-01-08"),
			DispatchMax:      ptr("2024-01-05"),
			DispatchMin:      ptr("2024-01-04"),
			RecipientTaxID:   ptr("TAX"),
			Warnings:         []any{"check street"},
			SuggestedAddress: map[string]any{"city": "Durham City"},
		},
		CostInformation: CostInformation{
			Currency:            ptr("USD"),
			TotalCostExclTax:    ptr("10.00"),
			TotalCostInclTax:    ptr("11.00"),
			TotalDiscountAmount: ptr("0.00"),
			TotalTax:            ptr("1.00"),
			ShippingCost: map[string]any{
				"tax_rate":            "0.1",
				"total_cost_excl_tax": "4.00",
				"total_cost_incl_tax": "4.40",
				"total_tax":           "0.40",
			},
			FulfillmentCost: map[string]any{
				"tax_rate":            "0.1",
				"total_cost_excl_tax": "0.00",
				"total_cost_incl_tax": "0.00",
				"total_tax":           "0.00",
			},
			LineItemCosts: []any{map[string]any{
				"cost_excl_discounts":       "6.00",
				"discounts":                 []any{map[string]any{"amount": "0.00", "description": "none"}},
				"quantity":                  json.Number("2"),
				"tax_rate":                  "0.1",
				"total_cost_excl_discounts": "6.00",
				"total_cost_excl_tax":       "6.00",
				"total_cost_incl_tax":       "6.60",
				"total_tax":                 "0.60",
				"unit_tier_cost":            "3.00",
			}},
		},
	}

	got, err := ToSimplified(decodeRaw(t, fullRawJob))
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToSimplified() mismatch (-want +got):\n%s", diff)
	}
}

func TestToSimplifiedExample(t *testing.T) {
	job, err := ToSimplified(decodeRaw(t, specExample))
	require.NoError(t, err)

	require.Len(t, job.LineItems, 1)
	item := job.LineItems[0]
	assert.Equal(t, StatusCreated, item.Status)
	assert.Nil(t, item.PrintInformation.Cover.FileID)
	assert.Nil(t, item.PrintInformation.Cover.Filename)
	assert.Equal(t, "http://c", *item.PrintInformation.Cover.SourceURL)
	assert.Nil(t, item.TrackingURLs)
	assert.Nil(t, item.CarrierName)
	assert.Nil(t, item.StatusInfo.CoverErrors)
	assert.Equal(t, ReprintInfo{}, item.ReprintInfo)

	require.NotNil(t, job.ShippingInformation.Country)
	assert.Equal(t, "US", *job.ShippingInformation.Country)
	assert.Equal(t, "CA", *job.ShippingInformation.State)
	assert.Equal(t, ShippingMail, *job.ShippingInformation.Level)
	assert.False(t, *job.ShippingInformation.IsBusiness)
	assert.Nil(t, job.ShippingInformation.ArrivalMax)

	assert.Equal(t, map[string]any{}, job.CostInformation.ShippingCost)
	assert.Equal(t, map[string]any{}, job.CostInformation.FulfillmentCost)
	assert.Equal(t, []any{}, job.CostInformation.LineItemCosts)
	assert.Nil(t, job.CostInformation.TotalDiscountAmount)
}

func TestToSimplifiedCostsPassThrough(t *testing.T) {
	const item = `{"id":5,"printable_id":"u","external_id":"li1","quantity":2,"title":"Book","status":{"name":"CREATED"}}`
	raw := decodeRaw(t, `{"id":1,"external_id":"X","contact_email":"a@b.com","line_items":[`+item+`],
		"costs":{"currency":"EUR","shipping_cost":{},
			"fulfillment_cost":{"total_cost_excl_tax":"2","fee_reason":"handling"},
			"line_item_costs":[{"quantity":1,"unit_tier_cost":"3","print_costs":"x"}]}}`)
	costs := raw["costs"].(map[string]any)

	job, err := ToSimplified(raw)
	require.NoError(t, err)

	assert.Equal(t, costs["shipping_cost"], job.CostInformation.ShippingCost)
	assert.Equal(t, costs["fulfillment_cost"], job.CostInformation.FulfillmentCost)
	assert.Equal(t, costs["line_item_costs"], job.CostInformation.LineItemCosts)

	data, err := json.Marshal(job.CostInformation)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"currency": "EUR",
		"total_cost_excl_tax": null,
		"total_cost_incl_tax": null,
		"total_discount_amount": null,
		"total_tax": null,
		"shipping_cost": {},
		"fulfillment_cost": {"total_cost_excl_tax": "2", "fee_reason": "handling"},
		"line_item_costs": [{"quantity": 1, "unit_tier_cost": "3", "print_costs": "x"}]
	}`, string(data))
}

func TestToSimplifiedRejectsOutOfRangeFloats(t *testing.T) {
	tests := []struct {
		name string
		id   float64
	}{
		{name: "above int64", id: 1e20},
		{name: "max int64 rounds up", id: 9223372036854775807},
		{name: "below int64", id: -1e20},
		{name: "infinite", id: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawJob{
				"id":            tt.id,
				"external_id":   "X",
				"contact_email": "a@b.com",
				"line_items":    []any{},
			}

			job, err := ToSimplified(raw)
			require.Error(t, err)
			assert.Nil(t, job)

			var terr *TranslationError
			require.True(t, errors.As(err, &terr))
			assert.Equal(t, "id", terr.Path)
			assert.ErrorIs(t, err, ErrWrongType)
		})
	}

	job, err := ToSimplified(RawJob{
		"id":            float64(-9223372036854775808),
		"external_id":   "X",
		"contact_email": "a@b.com",
		"line_items":    []any{},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), job.ID)
}

func TestToSimplifiedSerializesEveryKey(t *testing.T) {
	job, err := ToSimplified(decodeRaw(t, specExample))
	require.NoError(t, err)

	data, err := json.Marshal(job)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))

	for _, key := range []string{
		"id", "external_id", "line_items", "child_job_ids", "parent_job_id", "date_created",
		"date_modified", "contact_email", "order_id", "production_delay", "production_due_time",
		"shipping_information", "cost_information",
	} {
		assert.Contains(t, out, key)
	}
	assert.Nil(t, out["parent_job_id"])

	item := out["line_items"].([]any)[0].(map[string]any)
	for _, key := range []string{
		"id", "printable_id", "external_id", "quantity", "title", "status", "tracking_urls",
		"tracking_id", "carrier_name", "status_info", "print_information", "reprint_info",
	} {
		assert.Contains(t, item, key)
	}

	statusInfo := item["status_info"].(map[string]any)
	for _, key := range []string{"delay", "error", "info", "cover_errors", "interior_errors", "timestamp"} {
		assert.Contains(t, statusInfo, key)
	}

	cover := item["print_information"].(map[string]any)["cover"].(map[string]any)
	for _, key := range []string{"job_id", "file_id", "filename", "source_md5_sum", "source_url"} {
		assert.Contains(t, cover, key)
	}

	reprint := item["reprint_info"].(map[string]any)
	for _, key := range []string{"defect", "description", "cost_center", "printer_at_fault"} {
		assert.Contains(t, reprint, key)
	}

	shipping := out["shipping_information"].(map[string]any)
	for _, key := range []string{"country", "state", "level", "arrival_max", "arrival_min", "dispatch_max", "dispatch_min", "warnings", "suggested_address"} {
		assert.Contains(t, shipping, key)
	}
}

func TestToSimplifiedTolerance(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		check func(t *testing.T, job *Job)
	}{
		{
			name: "missing normalized file",
			raw: `{"id":1,"external_id":"X","contact_email":"a@b.com","line_items":[{"id":5,"printable_id":"u","external_id":"li1","quantity":2,"title":"Book",
				"status":{"name":"CREATED"},
				"printable_normalization":{"cover":{"job_id":3,"source_url":"http://c","source_md5_sum":"m"},"interior":{"job_id":4,"normalized_file":{"file_id":8,"filename":"i.pdf"}}}}]}`,
			check: func(t *testing.T, job *Job) {
				cover := job.LineItems[0].PrintInformation.Cover
				assert.Nil(t, cover.FileID)
				assert.Nil(t, cover.Filename)
				assert.Equal(t, int64(3), *cover.JobID)
				assert.Equal(t, "m", *cover.SourceMD5Sum)

				interior := job.LineItems[0].PrintInformation.Interior
				assert.Equal(t, int64(8), *interior.FileID)
				assert.Equal(t, "i.pdf", *interior.Filename)
				assert.Nil(t, interior.SourceURL)
			},
		},
		{
			name: "items alias",
			raw:  `{"id":1,"external_id":"X","contact_email":"a@b.com","items":[{"id":5,"printable_id":"u","external_id":"li1","quantity":2,"title":"Book","status":{"name":"ACCEPTED"}}]}`,
			check: func(t *testing.T, job *Job) {
				require.Len(t, job.LineItems, 1)
				assert.Equal(t, int64(5), job.LineItems[0].ID)
				assert.Equal(t, StatusAccepted, job.LineItems[0].Status)
			},
		},
		{
			name: "null line_items falls back to items",
			raw: `{"id":1,"external_id":"X","contact_email":"a@b.com","line_items":null,
				"items":[{"id":6,"printable_id":"u","external_id":"li2","quantity":1,"title":"Other","status":{"name":"CREATED"}}]}`,
			check: func(t *testing.T, job *Job) {
				require.Len(t, job.LineItems, 1)
				assert.Equal(t, int64(6), job.LineItems[0].ID)
			},
		},
		{
			name: "line_items preferred over items",
			raw: `{"id":1,"external_id":"X","contact_email":"a@b.com",
				"line_items":[{"id":5,"printable_id":"u","external_id":"li1","quantity":2,"title":"Book","status":{"name":"CREATED"}}],
				"items":[{"id":6,"printable_id":"u","external_id":"li2","quantity":1,"title":"Other","status":{"name":"CREATED"}}]}`,
			check: func(t *testing.T, job *Job) {
				require.Len(t, job.LineItems, 1)
				assert.Equal(t, int64(5), job.LineItems[0].ID)
			},
		},
		{
			name: "null optional objects",
			raw: `{"id":1,"external_id":null,"contact_email":"a@b.com","line_items":[{"id":5,"printable_id":null,"external_id":null,"quantity":2,"title":null,
				"status":{"name":"ERROR","messages":null},"printable_normalization":null,"reprint_info":null}],
				"shipping_address":null,"estimated_shipping_dates":null,"shipping_level":null,"costs":null}`,
			check: func(t *testing.T, job *Job) {
				assert.Nil(t, job.ExternalID)
				item := job.LineItems[0]
				assert.Equal(t, StatusError, item.Status)
				assert.Nil(t, item.PrintableID)
				assert.Nil(t, item.StatusInfo.Error)
				assert.Equal(t, PrintInformation{}, item.PrintInformation)
				assert.Equal(t, ShippingInformation{}, job.ShippingInformation)
				assert.Equal(t, CostInformation{}, job.CostInformation)
			},
		},
		{
			name: "single tracking url",
			raw: `{"id":1,"external_id":"X","contact_email":"a@b.com","line_items":[{"id":5,"printable_id":"u","external_id":"li1","quantity":2,"title":"Book",
				"status":{"name":"SHIPPED","messages":{"tracking_urls":"https://track/1","tracking_id":"T"}}}]}`,
			check: func(t *testing.T, job *Job) {
				assert.Equal(t, []string{"https://track/1"}, job.LineItems[0].TrackingURLs)
				assert.Equal(t, "T", *job.LineItems[0].TrackingID)
			},
		},
		{
			name: "reprint fallback",
			raw: `{"id":1,"external_id":"X","contact_email":"a@b.com","line_items":[{"id":5,"printable_id":"u","external_id":"li1","quantity":2,"title":"Book",
				"status":{"name":"CREATED"},"reprint":{"defect":"BINDING","printer_at_fault":null}}]}`,
			check: func(t *testing.T, job *Job) {
				reprint := job.LineItems[0].ReprintInfo
				assert.Equal(t, "BINDING", *reprint.Defect)
				assert.Nil(t, reprint.Description)
				assert.Nil(t, reprint.PrinterAtFault)
			},
		},
		{
			name: "empty line items",
			raw:  `{"id":1,"external_id":"X","contact_email":"a@b.com","line_items":[]}`,
			check: func(t *testing.T, job *Job) {
				assert.NotNil(t, job.LineItems)
				assert.Empty(t, job.LineItems)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := ToSimplified(decodeRaw(t, tt.raw))
			require.NoError(t, err)
			tt.check(t, job)
		})
	}
}

func TestToSimplifiedErrors(t *testing.T) {
	const item = `{"id":5,"printable_id":"u","external_id":"li1","quantity":2,"title":"Book","status":{"name":"CREATED"}}`

	tests := []struct {
		name     string
		raw      string
		wantPath string
		wantErr  error
	}{
		{
			name:     "missing contact email",
			raw:      `{"id":1,"external_id":"X","line_items":[` + item + `]}`,
			wantPath: "contact_email",
			wantErr:  ErrMissingField,
		},
		{
			name:     "null contact email",
			raw:      `{"id":1,"external_id":"X","contact_email":null,"line_items":[` + item + `]}`,
			wantPath: "contact_email",
			wantErr:  ErrMissingField,
		},
		{
			name:     "missing id",
			raw:      `{"external_id":"X","contact_email":"a@b.com","line_items":[` + item + `]}`,
			wantPath: "id",
			wantErr:  ErrMissingField,
		},
		{
			name:     "missing external id",
			raw:      `{"id":1,"contact_email":"a@b.com","line_items":[` + item + `]}`,
			wantPath: "external_id",
			wantErr:  ErrMissingField,
		},
		{
			name:     "missing line items",
			raw:      `{"id":1,"external_id":"X","contact_email":"a@b.com"}`,
			wantPath: "line_items",
			wantErr:  ErrMissingField,
		},
		{
			name:     "missing line item id",
			raw:      `{"id":1,"external_id":"X","contact_email":"a@b.com","line_items":[{"printable_id":"u","external_id":"li1","quantity":2,"title":"Book","status":{"name":"CREATED"}}]}`,
			wantPath: "line_items[0].id",
			wantErr:  ErrMissingField,
		},
		{
			name:     "missing status name",
			raw:      `{"id":1,"external_id":"X","contact_email":"a@b.com","line_items":[{"id":5,"printable_id":"u","external_id":"li1","quantity":2,"title":"Book","status":{}}]}`,
			wantPath: "line_items[0].status.name",
			wantErr:  ErrMissingField,
		},
		{
			name:     "missing status name in items alias",
			raw:      `{"id":1,"external_id":"X","contact_email":"a@b.com","items":[` + item + `,{"id":6,"printable_id":"u","external_id":"li2","quantity":1,"title":"B"}]}`,
			wantPath: "items[1].status.name",
			wantErr:  ErrMissingField,
		},
		{
			name:     "string id",
			raw:      `{"id":"1","external_id":"X","contact_email":"a@b.com","line_items":[` + item + `]}`,
			wantPath: "id",
			wantErr:  ErrWrongType,
		},
		{
			name:     "fractional quantity",
			raw:      `{"id":1,"external_id":"X","contact_email":"a@b.com","line_items":[{"id":5,"printable_id":"u","external_id":"li1","quantity":2.5,"title":"Book","status":{"name":"CREATED"}}]}`,
			wantPath: "line_items[0].quantity",
			wantErr:  ErrWrongType,
		},
		{
			name:     "status as string",
			raw:      `{"id":1,"external_id":"X","contact_email":"a@b.com","line_items":[{"id":5,"printable_id":"u","external_id":"li1","quantity":2,"title":"Book","status":"CREATED"}]}`,
			wantPath: "line_items[0].status",
			wantErr:  ErrWrongType,
		},
		{
			name:     "line items as object",
			raw:      `{"id":1,"external_id":"X","contact_email":"a@b.com","line_items":{"id":5}}`,
			wantPath: "line_items",
			wantErr:  ErrWrongType,
		},
		{
			name:     "shipping address as list",
			raw:      `{"id":1,"external_id":"X","contact_email":"a@b.com","line_items":[` + item + `],"shipping_address":[]}`,
			wantPath: "shipping_address",
			wantErr:  ErrWrongType,
		},
		{
			name:     "child job ids with string",
			raw:      `{"id":1,"external_id":"X","contact_email":"a@b.com","line_items":[` + item + `],"child_job_ids":[1,"2"]}`,
			wantPath: "child_job_ids[1]",
			wantErr:  ErrWrongType,
		},
		{
			name:     "shipping cost as string",
			raw:      `{"id":1,"external_id":"X","contact_email":"a@b.com","line_items":[` + item + `],"costs":{"shipping_cost":"4.00"}}`,
			wantPath: "costs.shipping_cost",
			wantErr:  ErrWrongType,
		},
		{
			name:     "line item costs as object",
			raw:      `{"id":1,"external_id":"X","contact_email":"a@b.com","line_items":[` + item + `],"costs":{"line_item_costs":{"quantity":1}}}`,
			wantPath: "costs.line_item_costs",
			wantErr:  ErrWrongType,
		},
		{
			name:     "null line items",
			raw:      `{"id":1,"external_id":"X","contact_email":"a@b.com","line_items":null}`,
			wantPath: "line_items",
			wantErr:  ErrMissingField,
		},
		{
			name:     "null line items and items",
			raw:      `{"id":1,"external_id":"X","contact_email":"a@b.com","line_items":null,"items":null}`,
			wantPath: "line_items",
			wantErr:  ErrMissingField,
		},
		{
			name:     "numeric contact email",
			raw:      `{"id":1,"external_id":"X","contact_email":7,"line_items":[` + item + `]}`,
			wantPath: "contact_email",
			wantErr:  ErrWrongType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := ToSimplified(decodeRaw(t, tt.raw))
			require.Error(t, err)
			assert.Nil(t, job)

			var terr *TranslationError
			require.True(t, errors.As(err, &terr))
			assert.Equal(t, tt.wantPath, terr.Path)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestToSimplifiedWithoutNumberDecoding(t *testing.T) {
	var raw RawJob
	require.NoError(t, json.Unmarshal([]byte(specExample), &raw))

	job, err := ToSimplified(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(1), job.ID)
	assert.Equal(t, int64(2), job.LineItems[0].Quantity)
}

func TestToSimplifiedList(t *testing.T) {
	t.Run("empty results", func(t *testing.T) {
		next := "https://api.lulu.com/print-jobs/?page=3"
		list, err := ToSimplifiedList(&RawJobList{Count: 40, Next: &next, Results: []RawJob{}})
		require.NoError(t, err)

		assert.Equal(t, int64(40), list.Count)
		assert.Equal(t, &next, list.Next)
		assert.Nil(t, list.Previous)
		assert.NotNil(t, list.Results)
		assert.Empty(t, list.Results)
	})

	t.Run("preserves order", func(t *testing.T) {
		first := decodeRaw(t, specExample)
		second := decodeRaw(t, fullRawJob)
		second["id"] = json.Number("2")

		list, err := ToSimplifiedList(&RawJobList{Count: 2, Results: []RawJob{second, first}})
		require.NoError(t, err)

		require.Len(t, list.Results, 2)
		assert.Equal(t, int64(2), list.Results[0].ID)
		assert.Equal(t, int64(1), list.Results[1].ID)
	})

	t.Run("fails on any invalid job", func(t *testing.T) {
		broken := decodeRaw(t, specExample)
		delete(broken, "contact_email")

		list, err := ToSimplifiedList(&RawJobList{Count: 2, Results: []RawJob{decodeRaw(t, specExample), broken}})
		require.Error(t, err)
		assert.Nil(t, list)

		var terr *TranslationError
		require.True(t, errors.As(err, &terr))
		assert.Equal(t, "results[1].contact_email", terr.Path)
	})

	t.Run("nil page", func(t *testing.T) {
		_, err := ToSimplifiedList(nil)
		assert.ErrorIs(t, err, ErrMissingField)
	})
}

func TestTranslationErrorMessage(t *testing.T) {
	err := &TranslationError{Path: "line_items[0].id", Err: ErrMissingField}
	assert.Equal(t, "translating print job: line_items[0].id: missing required field", err.Error())

	err = &TranslationError{Path: "id", Err: ErrWrongType, Detail: "want integer, got string"}
	assert.Equal(t, "translating print job: id: incompatible field type (want integer, got string)", err.Error())
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{value: nil, want: "null"},
		{value: "s", want: "string"},
		{value: json.Number("1"), want: "number"},
		{value: []any{}, want: "array"},
		{value: map[string]any{}, want: "object"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, typeName(tt.value))
		})
	}
}
