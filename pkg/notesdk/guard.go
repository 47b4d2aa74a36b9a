package notesdk

import (
	"context"
	"errors"
	"time"

	"github.com/jotpadhq/jotpad/pkg/jwtx"
	"github.com/jotpadhq/jotpad/pkg/tokenstore"
)

// SessionState is the outcome of one session-guard decision. StateUnknown
// is the only valid initial state; StateAuthorized and StateUnauthorized
// are terminal for that attempt.
type SessionState int

const (
	StateUnknown SessionState = iota
	StateChecking
	StateAuthorized
	StateUnauthorized
)

func (s SessionState) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateChecking:
		return "checking"
	case StateAuthorized:
		return "authorized"
	case StateUnauthorized:
		return "unauthorized"
	default:
		return "invalid"
	}
}

// Authorized reports whether the state allows entering a protected view.
func (s SessionState) Authorized() bool { return s == StateAuthorized }

// CheckAccess decides whether the caller may enter a protected view. It is
// an explicit, re-entrant function with no hidden lifecycle coupling, so
// any routing layer can call it on each navigation attempt.
//
// Per attempt: read the access token (absent resolves Unauthorized without
// touching the network); inspect its expiry locally; if expired, run at
// most one refresh exchange. Every failure along the way is absorbed into
// the Unauthorized outcome, and a failed refresh leaves the store exactly
// as it was.
//
// Concurrent calls are independent: there is no shared in-flight
// suppression, so simultaneous navigations may each trigger a refresh.
// That is accepted; the refresh endpoint tolerates duplicate valid
// refresh tokens within their validity window.
func (c *Client) CheckAccess(ctx context.Context) SessionState {
	access, err := c.Tokens.Get(ctx, tokenstore.Access)
	if err != nil {
		if !errors.Is(err, tokenstore.ErrNotFound) {
			c.logger(ctx).Warn("session check: token store read failed", "error", err)
		}
		return StateUnauthorized
	}

	if !jwtx.IsExpired(access, time.Now().Add(c.Leeway)) {
		return StateAuthorized
	}

	c.logger(ctx).Debug("session state", "state", StateChecking.String())

	if _, err := c.Refresh(ctx); err != nil {
		// Stale tokens stay in place; clearing is an explicit logout.
		c.logger(ctx).Info("session check: refresh failed", "error", err)
		return StateUnauthorized
	}

	return StateAuthorized
}
