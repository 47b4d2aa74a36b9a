package tokenstore

import (
	"context"
	"errors"
)

// Kind names one of the two credential slots a Store holds.
type Kind string

const (
	// Access is the short-lived credential that authorizes API calls.
	Access Kind = "access"

	// Refresh is the longer-lived credential used solely to obtain a
	// new access token.
	Refresh Kind = "refresh"
)

var ErrNotFound = errors.New("tokenstore: not found")

// Store is durable key/value storage for the credential pair. It is the
// single owner of the pair's durable representation: the session guard and
// the request pipeline re-read it on every decision rather than caching
// tokens themselves.
//
// Store is always passed in as a dependency, never reached through a
// package-level singleton, so tests can substitute the in-memory driver.
// Writes are full replacements of a single slot, so concurrent use needs
// no coordination beyond last-writer-wins.
type Store interface {
	// Get returns the token held in the given slot, or ErrNotFound when
	// the slot is empty.
	Get(ctx context.Context, kind Kind) (string, error)

	// Set replaces the token in the given slot.
	Set(ctx context.Context, kind Kind, token string) error

	// Clear removes both slots unconditionally. Clearing an already-empty
	// store is a no-op, not an error.
	Clear(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}
