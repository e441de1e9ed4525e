package cmserror

import (
	"net/http"

	"github.com/mdouchement/novatech/internal/store"
	"github.com/pkg/errors"
)

// StatusInsufficientStorage is the HTTP status code used when the storage area is full.
const StatusInsufficientStorage = http.StatusInsufficientStorage

type (
	// An Error represents the error format rendered by the novatech server.
	Error struct {
		HTTPCode   int `json:"-"`
		FieldError err `json:"error"`
	}

	err struct {
		Tag     string `json:"tag,omitempty"`
		Message string `json:"message"`
	}
)

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	if cmserr, ok := errors.Cause(err).(*Error); ok && cmserr.HTTPCode != 0 {
		return cmserr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns a new Error with the given message.
func New(message string) *Error {
	return &Error{FieldError: err{Message: message}}
}

// NewWithTagCode returns a new Error with the given code, tag and message.
func NewWithTagCode(code int, tag, message string) *Error {
	return &Error{HTTPCode: code, FieldError: err{Tag: tag, Message: message}}
}

// FromStore converts a content store error into an Error.
// It returns nil when err is not a known store error.
func FromStore(err error) *Error {
	switch {
	case store.IsQuotaExceeded(err):
		return NewWithTagCode(StatusInsufficientStorage, "quota_exceeded", "Storage quota exceeded")
	case store.IsUnavailable(err):
		return NewWithTagCode(http.StatusServiceUnavailable, "storage_unavailable", "Storage unavailable")
	case store.IsImageRead(err):
		return NewWithTagCode(http.StatusBadRequest, "invalid_image", "Could not read image")
	case store.IsCorruptState(err):
		return NewWithTagCode(http.StatusInternalServerError, "corrupted_state", err.Error())
	}
	return nil
}

// Error implements error interface.
func (e *Error) Error() string {
	return e.FieldError.Message
}

// Tag returns the error tag.
func (e *Error) Tag() string {
	return e.FieldError.Tag
}
