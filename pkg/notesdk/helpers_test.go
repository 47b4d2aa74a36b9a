package notesdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jotpadhq/jotpad/pkg/notesdk"
	"github.com/jotpadhq/jotpad/pkg/tokenstore"
	"github.com/stretchr/testify/require"
)

// mintToken signs a minimal HS256 access token with the given expiry. The
// client never verifies signatures, so the signing key is irrelevant.
func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

// fakeBackend is a minimal stand-in for the notes backend: a refresh
// endpoint with a scriptable response and a request counter.
type fakeBackend struct {
	server *httptest.Server

	refreshCalls  atomic.Int64
	refreshStatus int    // status the refresh endpoint answers with
	refreshAccess string // access token returned on 200
	lastRefresh   atomic.Value
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	backend := &fakeBackend{
		refreshStatus: http.StatusOK,
		refreshAccess: "T2",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		backend.refreshCalls.Add(1)

		var body struct {
			Refresh string `json:"refresh"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		backend.lastRefresh.Store(body.Refresh)

		if backend.refreshStatus != http.StatusOK {
			w.WriteHeader(backend.refreshStatus)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "token is invalid or expired"})
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]string{"access": backend.refreshAccess})
	})

	backend.server = httptest.NewServer(mux)
	t.Cleanup(backend.server.Close)
	return backend
}

// newTestClient wires a client to the fake backend with a fresh in-memory
// store and no leeway, so expiry behavior is exactly the inspected claim.
func newTestClient(t *testing.T, backend *fakeBackend) (*notesdk.Client, *tokenstore.Memory) {
	t.Helper()

	store := tokenstore.NewMemory()
	client := notesdk.New(backend.server.URL, store)
	return client, store
}

func mustGet(t *testing.T, store tokenstore.Store, kind tokenstore.Kind) string {
	t.Helper()

	token, err := store.Get(context.Background(), kind)
	require.NoError(t, err)
	return token
}
