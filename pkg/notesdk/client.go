package notesdk

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jotpadhq/jotpad/pkg/slogx"
	"github.com/jotpadhq/jotpad/pkg/tokenstore"
	"golang.org/x/time/rate"
)

// Client talks to a jotpad notes backend. The zero fields on a Client
// returned by New are ready to use; callers may swap HTTPClient, Logger,
// Limiter or Leeway before first use.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Tokens is the injected credential store. The client holds no token
	// state of its own.
	Tokens tokenstore.Store

	// Logger, when set, receives all client logging. When nil, a logger
	// carried by the request context (slogx.WithContext) is used, then
	// the process default.
	Logger *slog.Logger

	// Limiter, when set, throttles every outbound call. It exists to be
	// polite to shared backends; it never retries anything.
	Limiter *rate.Limiter

	// Leeway shifts the expiry check forward so a token about to lapse is
	// refreshed before, not after, the request that would have used it.
	// Zero means tokens are used until the instant they expire.
	Leeway time.Duration
}

// New creates a Client for the backend at baseURL using the given store.
func New(baseURL string, tokens tokenstore.Store) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Tokens: tokens,
	}
}

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// logger prefers the client's configured logger, then any logger carried
// by the context, then the process default.
func (c *Client) logger(ctx context.Context) *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slogx.FromContext(ctx)
}
