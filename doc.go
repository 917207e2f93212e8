// Package lulu provides a client for the Lulu Print API.
//
// The Lulu Print API prints and ships books on demand. A print job holds one
// or more line items, each pointing at a publicly reachable cover and interior
// PDF, plus a shipping address and shipping level.
//
// Basic usage:
//
//	client := lulu.New(clientKey, clientSecret, lulu.WithSandbox())
//
//	// List print jobs in simplified form
//	jobs, err := client.ListPrintJobs(ctx, &lulu.ListPrintJobsOptions{Status: lulu.StatusShipped})
//
//	// Create a print job
//	job, err := client.CreatePrintJob(ctx, &lulu.CreateJobInput{...})
//
// The package handles OAuth authentication automatically and provides methods for:
//   - Creating, listing, and canceling print jobs
//   - Validating interior and cover files
//   - Estimating costs and shipping options
//   - Managing webhooks and validating webhook deliveries
//
// # Raw and simplified print jobs
//
// The API returns print jobs as deeply nested documents (RawJob). Most read
// methods also have a simplified variant returning Job, which flattens status
// messages into StatusInfo, file records into PrintInformation, and merges the
// shipping address, level, and estimated dates into ShippingInformation. Every
// simplified field is present; data the API did not send is nil.
//
// Translation failures are reported as *TranslationError and API failures as
// *RemoteError:
//
//	var remote *lulu.RemoteError
//	if errors.As(err, &remote) && remote.StatusCode == http.StatusNotFound {
//		// ...
//	}
package lulu
