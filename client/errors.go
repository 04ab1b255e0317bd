package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an API failure.
type ErrorKind int

const (
	KindTransport    ErrorKind = iota // no connection, timeout, garbled body
	KindValidation                    // 422 with field-level messages
	KindUnauthorized                  // 401
	KindForbidden                     // 403
	KindNotFound                      // 404
	KindServer                        // everything else >= 400
)

// APIError is the typed failure for every backend call.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	// Fields holds 422 field-level validation messages, keyed by field name.
	Fields map[string][]string
	Err    error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
	}
	return "api: " + e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindNotFound
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindUnauthorized
}

// IsValidation reports whether err carries 422 field-level messages.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindValidation
}

// errorFromResponse maps a non-2xx response to an *APIError. The backend's
// error body is {"message": "...", "errors": {"field": ["msg", ...]}}; both
// keys are optional.
func errorFromResponse(status int, raw []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Message: http.StatusText(status)}

	var body struct {
		Message string              `json:"message"`
		Error   string              `json:"error"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			apiErr.Message = body.Message
		} else if body.Error != "" {
			apiErr.Message = body.Error
		}
		apiErr.Fields = body.Errors
	}

	switch status {
	case http.StatusUnauthorized:
		apiErr.Kind = KindUnauthorized
	case http.StatusForbidden:
		apiErr.Kind = KindForbidden
	case http.StatusNotFound:
		apiErr.Kind = KindNotFound
	case http.StatusUnprocessableEntity:
		apiErr.Kind = KindValidation
	default:
		apiErr.Kind = KindServer
	}
	return apiErr
}
