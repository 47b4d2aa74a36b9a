package notesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingRefreshToken is returned by Refresh when the store holds no
// refresh token. No network call is made in that case.
var ErrMissingRefreshToken = errors.New("notesdk: no refresh token stored")

// RefreshReason classifies why a refresh exchange failed.
type RefreshReason int

const (
	// RefreshRejected means the server was reached and explicitly declined
	// the refresh token (expired, revoked, or never valid).
	RefreshRejected RefreshReason = iota + 1

	// RefreshTransport means the server could not be reached or produced
	// an unusable response; the refresh token may still be good.
	RefreshTransport
)

func (r RefreshReason) String() string {
	switch r {
	case RefreshRejected:
		return "rejected"
	case RefreshTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// RefreshError reports a failed refresh exchange. The token store is never
// mutated on failure; whether to clear stale tokens is the caller's call.
type RefreshError struct {
	Reason RefreshReason
	Status int   // HTTP status, set when Reason is RefreshRejected
	Err    error // underlying cause, set when Reason is RefreshTransport
}

func (e *RefreshError) Error() string {
	switch e.Reason {
	case RefreshRejected:
		return fmt.Sprintf("notesdk: refresh rejected with status %d", e.Status)
	case RefreshTransport:
		return fmt.Sprintf("notesdk: refresh transport failure: %v", e.Err)
	default:
		return "notesdk: refresh failed"
	}
}

func (e *RefreshError) Unwrap() error { return e.Err }

// APIError is a non-success response from the backend, carrying whatever
// machine-readable detail the error body held.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("notesdk: api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("notesdk: api error %d", e.StatusCode)
}

// IsAuthFailure reports whether the server rejected the request for
// authorization reasons. Callers seeing this after a successful guard
// check should prompt for re-authentication: the token was invalidated
// server-side between check and request.
func (e *APIError) IsAuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// parseErrorResponse turns a non-success HTTP response into an *APIError.
// Unparseable bodies fall back to the bare status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		message := errResp.Message
		if message == "" {
			message = errResp.Detail
		}
		if errResp.Code != "" || message != "" {
			return &APIError{
				StatusCode: resp.StatusCode,
				Code:       errResp.Code,
				Message:    message,
			}
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}
}
