package client

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/mdouchement/novatech/internal/store"
	"github.com/pkg/errors"
)

// An Error reprensents an HTTP error returned by novatech server.
type Error struct {
	StatusCode int
	Err        struct {
		Tag     string `json:"tag"`
		Message string `json:"message"`
	} `json:"error"`
}

// parseError decodes an API error.
// Storage errors are converted back to the store errors.
func parseError(r io.Reader, code int) error {
	switch code {
	case http.StatusInsufficientStorage:
		return errors.Wrap(store.ErrQuotaExceeded, "server")
	case http.StatusServiceUnavailable:
		return errors.Wrap(store.ErrUnavailable, "server")
	}

	apierr := Error{StatusCode: code}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&apierr); err != nil || apierr.Err.Message == "" {
		apierr.Err.Message = http.StatusText(code)
	}
	return &apierr
}

func (e *Error) Error() string {
	return e.Err.Message
}

// IsStatus returns true if err is an API error with the given status code.
func IsStatus(err error, code int) bool {
	apierr, ok := errors.Cause(err).(*Error)
	return ok && apierr.StatusCode == code
}
