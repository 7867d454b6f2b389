package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for local validation failures. These are detected
// before any network call is made.
var (
	ErrMissingParam      = errors.New("missing required parameter")
	ErrInvalidParam      = errors.New("invalid parameter value")
	ErrMalformedBody     = errors.New("request body is not valid JSON")
	ErrMissingCredential = errors.New("missing credential")
	ErrPollTimeout       = errors.New("polling timed out before a terminal status")
)

// Validation errors for client construction.
var (
	ErrBaseURLRequired    = errors.New("base URL is required")
	ErrHTTPClientRequired = errors.New("HTTP client is required")
)

// APIError represents a non-2xx response from the Pinterest API.
// Pinterest returns errors as {"code": <int>, "message": "..."}; the
// raw body is kept verbatim so users can correlate with the API docs.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
	Body       []byte
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (status %d, code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	if len(e.Body) > 0 {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, string(e.Body))
	}
	return fmt.Sprintf("API error (status %d)", e.StatusCode)
}

// ParseAPIError builds an APIError from a non-2xx response body.
func ParseAPIError(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode, Body: body}

	var detail struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &detail); err == nil {
		apiErr.Code = detail.Code
		apiErr.Message = detail.Message
	}

	return apiErr
}

// IsAPIError returns the APIError if err is or wraps one.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsMissingCredential returns true if the error is or wraps ErrMissingCredential.
func IsMissingCredential(err error) bool {
	return errors.Is(err, ErrMissingCredential)
}

// IsInputError returns true for local input validation failures
// (unresolved command, missing or invalid parameter, malformed body).
func IsInputError(err error) bool {
	var nf *NotFoundError
	return errors.Is(err, ErrMissingParam) ||
		errors.Is(err, ErrInvalidParam) ||
		errors.Is(err, ErrMalformedBody) ||
		errors.As(err, &nf)
}

// IsPollTimeout returns true if the error is or wraps ErrPollTimeout.
func IsPollTimeout(err error) bool {
	return errors.Is(err, ErrPollTimeout)
}
