package lulu

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMissingField is wrapped by a TranslationError when a required field is absent.
	ErrMissingField = errors.New("missing required field")
	// ErrWrongType is wrapped by a TranslationError when a field has an incompatible type.
	ErrWrongType = errors.New("incompatible field type")
)

// TranslationError reports a structural problem found while reshaping a
// print job between the raw and the simplified schema.
type TranslationError struct {
	Path   string
	Err    error
	Detail string
}

func (e *TranslationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("translating print job: %s: %v (%s)", e.Path, e.Err, e.Detail)
	}
	return fmt.Sprintf("translating print job: %s: %v", e.Path, e.Err)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}

// RemoteError is returned when the API answers with a non-success status.
// Body holds the response exactly as received.
type RemoteError struct {
	StatusCode int
	Detail     string
	Body       []byte
}

func (e *RemoteError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, string(e.Body))
}

func newRemoteError(status int, body []byte) *RemoteError {
	e := &RemoteError{StatusCode: status, Body: body}

	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil {
		e.Detail = detail.Detail
	}

	return e
}
