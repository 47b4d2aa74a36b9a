/*
Package notesdk is the client SDK for a jotpad notes backend. Its core is
the client-side session lifecycle: how the short-lived access token and
longer-lived refresh token are stored, inspected, proactively refreshed,
and used to gate access to protected operations.

# Wiring

A Client needs a base URL and an injected token store:

	store, _ := sqlite.NewStore("jotpad.db", nil)
	client := notesdk.New("https://api.example.com", store)

The store is the single owner of the credential pair. The client never
caches tokens in memory; every decision re-reads the store, so several
Clients (or processes) can safely share one database file.

# Session guard

CheckAccess is the decision point before entering a protected view:

	switch client.CheckAccess(ctx) {
	case notesdk.StateAuthorized:
		// proceed
	case notesdk.StateUnauthorized:
		// redirect to login
	}

Per attempt it runs at most one refresh call, and it absorbs every
failure (missing tokens, declined refresh, network errors) into the
binary Authorized/Unauthorized outcome. A failed refresh leaves the
store untouched; only Logout clears it.

# Request pipeline

The notes operations (ListNotes, CreateNote, ...) attach whatever access
token the store holds at request time, with no expiry pre-check. If the
server rejects the token anyway, the call returns an *APIError whose
IsAuthFailure reports true, and the caller is expected to prompt for
re-authentication.
*/
package notesdk
