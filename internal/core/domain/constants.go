package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrInvalidFormat      = errors.New("invalid image format")
	ErrNoAssetSelected    = errors.New("no image selected")
	ErrSelectionCancelled = errors.New("image selection cancelled")

	ErrPayloadTooLarge    = errors.New("payload too large")
	ErrBadRequest         = errors.New("bad request")
	ErrNetworkUnavailable = errors.New("network unavailable")
	ErrServerError        = errors.New("server error")
	ErrMalformedResponse  = errors.New("malformed response")
)

type ErrorCategory int

const (
	CategoryNetworkUnavailable ErrorCategory = iota + 1
	CategoryPayloadTooLarge
	CategoryBadRequest
	CategoryServerError
	CategoryMalformedResponse
)

var categorySentinels = map[ErrorCategory]error{
	CategoryNetworkUnavailable: ErrNetworkUnavailable,
	CategoryPayloadTooLarge:    ErrPayloadTooLarge,
	CategoryBadRequest:         ErrBadRequest,
	CategoryServerError:        ErrServerError,
	CategoryMalformedResponse:  ErrMalformedResponse,
}

func (c ErrorCategory) String() string {
	if err, ok := categorySentinels[c]; ok {
		return err.Error()
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// UploadError is the failure half of a submission outcome.
type UploadError struct {
	Category ErrorCategory
	Status   int
	Body     string
	Cause    error
}

func (e *UploadError) Error() string {
	switch {
	case e.Status != 0 && e.Body != "":
		return fmt.Sprintf("%s: status %d: %s", e.Category, e.Status, e.Body)
	case e.Status != 0:
		return fmt.Sprintf("%s: status %d", e.Category, e.Status)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Category, e.Cause)
	default:
		return e.Category.String()
	}
}

func (e *UploadError) Unwrap() error {
	return e.Cause
}

// Is matches the category sentinel, so errors.Is(err, ErrPayloadTooLarge) works.
func (e *UploadError) Is(target error) bool {
	return categorySentinels[e.Category] == target
}

// ClassifyStatus maps a non-2xx HTTP status to an upload error.
func ClassifyStatus(status int, body string) *UploadError {
	switch status {
	case http.StatusRequestEntityTooLarge:
		return &UploadError{Category: CategoryPayloadTooLarge, Status: status, Body: body}
	case http.StatusBadRequest:
		return &UploadError{Category: CategoryBadRequest, Status: status, Body: body}
	default:
		return &UploadError{Category: CategoryServerError, Status: status, Body: body}
	}
}
