package notesdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jotpadhq/jotpad/pkg/tokenstore"
)

// Refresh exchanges the stored refresh token for a new access token,
// writes it to the store and returns it.
//
// Failures never mutate the store. The error distinguishes three cases:
// ErrMissingRefreshToken (nothing to exchange, no network call made), a
// RefreshError with RefreshRejected (the server declined the token) and
// one with RefreshTransport (the server could not be reached or answered
// unusably). There are no retries here; if a caller wants backoff it owns
// that policy.
//
// Concurrent Refresh calls are allowed to race: each writes a validly
// issued token and last-writer-wins is benign.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	refresh, err := c.Tokens.Get(ctx, tokenstore.Refresh)
	if errors.Is(err, tokenstore.ErrNotFound) {
		return "", ErrMissingRefreshToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to read refresh token: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, refreshPath, refreshRequest{Refresh: refresh})
	if err != nil {
		return "", &RefreshError{Reason: RefreshTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger(ctx).Info("refresh rejected", "status", resp.StatusCode)
		return "", &RefreshError{Reason: RefreshRejected, Status: resp.StatusCode}
	}

	var out RefreshResponse
	if err := decodeBody(resp, &out); err != nil || out.Access == "" {
		if err == nil {
			err = errors.New("refresh response missing access token")
		}
		return "", &RefreshError{Reason: RefreshTransport, Err: err}
	}

	if err := c.Tokens.Set(ctx, tokenstore.Access, out.Access); err != nil {
		return "", fmt.Errorf("failed to store access token: %w", err)
	}

	c.logger(ctx).Debug("access token refreshed")
	return out.Access, nil
}
