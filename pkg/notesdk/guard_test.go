package notesdk_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jotpadhq/jotpad/pkg/notesdk"
	"github.com/jotpadhq/jotpad/pkg/tokenstore"
	"github.com/stretchr/testify/require"
)

func TestCheckAccessAbsentToken(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(t)
	client, _ := newTestClient(t, backend)

	state := client.CheckAccess(ctx)

	require.Equal(t, notesdk.StateUnauthorized, state)
	require.False(t, state.Authorized())
	// An absent access token resolves locally, without a refresh attempt.
	require.EqualValues(t, 0, backend.refreshCalls.Load())
}

func TestCheckAccessValidToken(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(t)
	client, store := newTestClient(t, backend)

	require.NoError(t, store.Set(ctx, tokenstore.Access, mintToken(t, time.Now().Add(600*time.Second))))

	require.Equal(t, notesdk.StateAuthorized, client.CheckAccess(ctx))
	// Zero network calls for a locally-valid token.
	require.EqualValues(t, 0, backend.refreshCalls.Load())
}

func TestCheckAccessExpiredTokenRefreshes(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(t)
	backend.refreshAccess = "T2"
	client, store := newTestClient(t, backend)

	require.NoError(t, store.Set(ctx, tokenstore.Access, mintToken(t, time.Now().Add(-10*time.Second))))
	require.NoError(t, store.Set(ctx, tokenstore.Refresh, "good-refresh"))

	require.Equal(t, notesdk.StateAuthorized, client.CheckAccess(ctx))
	require.EqualValues(t, 1, backend.refreshCalls.Load())
	require.Equal(t, "good-refresh", backend.lastRefresh.Load())
	require.Equal(t, "T2", mustGet(t, store, tokenstore.Access))
}

func TestCheckAccessExpiredTokenNoRefreshToken(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(t)
	client, store := newTestClient(t, backend)

	expired := mintToken(t, time.Now().Add(-time.Minute))
	require.NoError(t, store.Set(ctx, tokenstore.Access, expired))

	require.Equal(t, notesdk.StateUnauthorized, client.CheckAccess(ctx))
	require.EqualValues(t, 0, backend.refreshCalls.Load())

	// The stale access token is left in place for the caller to clear.
	require.Equal(t, expired, mustGet(t, store, tokenstore.Access))
}

func TestCheckAccessRefreshRejected(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(t)
	backend.refreshStatus = http.StatusUnauthorized
	client, store := newTestClient(t, backend)

	expired := mintToken(t, time.Now().Add(-time.Minute))
	require.NoError(t, store.Set(ctx, tokenstore.Access, expired))
	require.NoError(t, store.Set(ctx, tokenstore.Refresh, "revoked"))

	require.Equal(t, notesdk.StateUnauthorized, client.CheckAccess(ctx))
	require.EqualValues(t, 1, backend.refreshCalls.Load())

	// Store untouched on failure.
	require.Equal(t, expired, mustGet(t, store, tokenstore.Access))
	require.Equal(t, "revoked", mustGet(t, store, tokenstore.Refresh))
}

func TestCheckAccessRefreshTransportFailure(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(t)
	client, store := newTestClient(t, backend)

	expired := mintToken(t, time.Now().Add(-time.Minute))
	require.NoError(t, store.Set(ctx, tokenstore.Access, expired))
	require.NoError(t, store.Set(ctx, tokenstore.Refresh, "unreachable"))

	// Kill the backend so the refresh call fails at the transport level.
	backend.server.Close()

	require.Equal(t, notesdk.StateUnauthorized, client.CheckAccess(ctx))
	require.Equal(t, expired, mustGet(t, store, tokenstore.Access))
	require.Equal(t, "unreachable", mustGet(t, store, tokenstore.Refresh))
}

func TestCheckAccessMalformedToken(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(t)
	backend.refreshAccess = "T2"
	client, store := newTestClient(t, backend)

	// Malformed is treated as expired, so a valid refresh still recovers.
	require.NoError(t, store.Set(ctx, tokenstore.Access, "not.a.jwt"))
	require.NoError(t, store.Set(ctx, tokenstore.Refresh, "good-refresh"))

	require.Equal(t, notesdk.StateAuthorized, client.CheckAccess(ctx))
	require.Equal(t, "T2", mustGet(t, store, tokenstore.Access))
}

func TestCheckAccessAfterLogout(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(t)
	client, store := newTestClient(t, backend)

	require.NoError(t, store.Set(ctx, tokenstore.Access, mintToken(t, time.Now().Add(time.Hour))))
	require.NoError(t, store.Set(ctx, tokenstore.Refresh, "good-refresh"))
	require.Equal(t, notesdk.StateAuthorized, client.CheckAccess(ctx))

	require.NoError(t, client.Logout(ctx))

	require.Equal(t, notesdk.StateUnauthorized, client.CheckAccess(ctx))
	require.EqualValues(t, 0, backend.refreshCalls.Load())
}

func TestCheckAccessIsReentrant(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(t)
	client, store := newTestClient(t, backend)

	require.NoError(t, store.Set(ctx, tokenstore.Access, mintToken(t, time.Now().Add(-10*time.Second))))
	require.NoError(t, store.Set(ctx, tokenstore.Refresh, "good-refresh"))

	// First call refreshes; the second finds the fresh token in the store.
	backend.refreshAccess = mintToken(t, time.Now().Add(time.Hour))
	require.Equal(t, notesdk.StateAuthorized, client.CheckAccess(ctx))
	require.Equal(t, notesdk.StateAuthorized, client.CheckAccess(ctx))
	require.EqualValues(t, 1, backend.refreshCalls.Load())
}

func TestCheckAccessLeeway(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend(t)
	backend.refreshAccess = "T2"
	client, store := newTestClient(t, backend)
	client.Leeway = 30 * time.Second

	// Valid for another 10s, but inside the 30s leeway window: the guard
	// refreshes proactively.
	require.NoError(t, store.Set(ctx, tokenstore.Access, mintToken(t, time.Now().Add(10*time.Second))))
	require.NoError(t, store.Set(ctx, tokenstore.Refresh, "good-refresh"))

	require.Equal(t, notesdk.StateAuthorized, client.CheckAccess(ctx))
	require.EqualValues(t, 1, backend.refreshCalls.Load())
	require.Equal(t, "T2", mustGet(t, store, tokenstore.Access))
}

func TestSessionStateString(t *testing.T) {
	require.Equal(t, "unknown", notesdk.StateUnknown.String())
	require.Equal(t, "checking", notesdk.StateChecking.String())
	require.Equal(t, "authorized", notesdk.StateAuthorized.String())
	require.Equal(t, "unauthorized", notesdk.StateUnauthorized.String())
	require.Equal(t, "invalid", notesdk.SessionState(99).String())
}
