package api

import (
	"errors"
	"fmt"
	"net/http"

	"studypilot/internal/common"
)

var (
	// ErrUnavailable marks transport-level failures: the request never
	// produced an HTTP response.
	ErrUnavailable = errors.New("server unavailable")
)

// Error is a backend-reported failure: a non-2xx status or a success=false
// envelope. Message is the backend's own error string and is shown to the
// user verbatim.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error (status %d)", e.StatusCode)
	}
	return e.Message
}

// Unwrap lets errors.Is(err, common.ErrorUnauthorized) match 401 responses.
func (e *Error) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return common.ErrorUnauthorized
	}
	return nil
}

// errorPayload covers both error-body shapes the backend produces:
// {success:false, error:"..."} and {success:false, message:"..."}.
type errorPayload struct {
	Success *bool  `json:"success,omitempty"`
	Err     string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func (p errorPayload) text() string {
	if p.Err != "" {
		return p.Err
	}
	return p.Message
}
