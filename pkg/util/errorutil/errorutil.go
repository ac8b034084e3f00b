package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewValidationError reports schema failures. Details carries per-field
// messages keyed by field name.
func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewFileTooLarge rejects an oversized upload before it reaches blob storage.
func NewFileTooLarge(maxBytes int64) error {
	return NewDomainError("FILE_TOO_LARGE", fmt.Sprintf("file size should be less than %d bytes", maxBytes), http.StatusBadRequest, nil)
}

// NewUnsupportedFile rejects non-image uploads.
func NewUnsupportedFile(contentType string) error {
	return NewDomainError("UNSUPPORTED_FILE", fmt.Sprintf("unsupported file type %q, only images are accepted", contentType), http.StatusBadRequest, nil)
}

// NewUploadFailed marks a blob storage failure, kept distinct from validation
// failures so callers can tell which stage broke.
func NewUploadFailed(err error) error {
	return &DomainError{
		Code:       "UPLOAD_FAILED",
		Message:    "profile picture upload failed",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
