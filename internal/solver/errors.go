package solver

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrBrokenPath       = errors.New("solution does not link start to end")
)

// APIError is a non-2xx answer from the solver.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Details != "" {
		return fmt.Sprintf("solver: %d: %s (%s)", e.Status, msg, e.Details)
	}
	return fmt.Sprintf("solver: %d: %s", e.Status, msg)
}

// IsClientError reports whether err is a 4xx answer, i.e. the request was
// refused rather than the solver failing.
func IsClientError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 400 && apiErr.Status < 500
	}
	return false
}
