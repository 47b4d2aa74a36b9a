// Package sqlite provides the durable tokenstore.Store driver backed by a
// local SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jotpadhq/jotpad/pkg/tokenstore"
	_ "modernc.org/sqlite"
)

// Sealer encrypts token values before they hit disk and decrypts them on
// the way back. A nil Sealer means tokens are stored in the clear.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(ciphertext []byte) ([]byte, error)
}

type Store struct {
	db     *sql.DB
	sealer Sealer
	dsn    string
}

// NewStore opens (creating if needed) the credential database at dsn.
// Callers must run ApplyMigrations before first use.
func NewStore(dsn string, sealer Sealer) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// A single writer is plenty for two rows; this also sidesteps
	// SQLITE_BUSY between concurrent session checks.
	db.SetMaxOpenConns(1)

	return &Store{
		db:     db,
		sealer: sealer,
		dsn:    dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database handle is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Get(ctx context.Context, kind tokenstore.Kind) (string, error) {
	var stored []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT token FROM credentials WHERE kind = ?`, string(kind),
	).Scan(&stored)
	if err != nil {
		return "", mapNotFound(err)
	}

	if s.sealer != nil {
		plain, err := s.sealer.Open(stored)
		if err != nil {
			return "", err
		}
		return string(plain), nil
	}

	return string(stored), nil
}

func (s *Store) Set(ctx context.Context, kind tokenstore.Kind, token string) error {
	value := []byte(token)
	if s.sealer != nil {
		sealed, err := s.sealer.Seal(value)
		if err != nil {
			return err
		}
		value = sealed
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO credentials (kind, token, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (kind) DO UPDATE SET
			token = excluded.token,
			updated_at = excluded.updated_at`,
		string(kind), value, time.Now().UTC(),
	)
	return err
}

func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials`)
	return err
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return tokenstore.ErrNotFound
	}
	return err
}
