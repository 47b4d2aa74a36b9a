package notesdk

import (
	"context"
	"net/http"

	"github.com/jotpadhq/jotpad/pkg/tokenstore"
)

// PasswordLogin exchanges credentials for a token pair and stores both.
// This is the only path besides Refresh that ever writes an access token:
// tokens are never fabricated client-side.
func (c *Client) PasswordLogin(ctx context.Context, username, password string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, tokenPath, loginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return err
	}

	var pair TokenPairResponse
	if err := decodeJSON(resp, &pair, http.StatusOK); err != nil {
		return err
	}

	if err := c.Tokens.Set(ctx, tokenstore.Access, pair.Access); err != nil {
		return err
	}
	if err := c.Tokens.Set(ctx, tokenstore.Refresh, pair.Refresh); err != nil {
		return err
	}

	c.logger(ctx).Info("login succeeded", "username", username)
	return nil
}

// Logout destroys the stored credential pair. This is the only place the
// store is ever cleared: a failed refresh leaves stale tokens in place
// until the caller decides to log out.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.Tokens.Clear(ctx); err != nil {
		return err
	}

	c.logger(ctx).Info("logged out")
	return nil
}
