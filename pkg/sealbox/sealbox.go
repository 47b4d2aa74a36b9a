// Package sealbox seals small secrets (stored tokens) with AES-256-GCM.
// The cipher key is derived from operator-supplied key material using
// argon2id, so a low-entropy passphrase file still yields a usable key.
package sealbox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/argon2"
)

var (
	ErrEmptyKey   = errors.New("sealbox: empty key material")
	ErrCiphertext = errors.New("sealbox: ciphertext too short")
)

// Derivation is deterministic: the same key material must produce the same
// cipher key across restarts, so the salt is a fixed domain-separation
// constant rather than a stored random value.
var derivationSalt = []byte("jotpad/sealbox/v1")

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	keySize      = 32
)

// Box seals and opens values with a single derived key.
type Box struct {
	aead cipher.AEAD
}

// New derives a key from the given material and returns a ready Box.
func New(keyMaterial []byte) (*Box, error) {
	if len(keyMaterial) == 0 {
		return nil, ErrEmptyKey
	}

	key := argon2.IDKey(keyMaterial, derivationSalt, argonTime, argonMemory, argonThreads, keySize)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("sealbox: init cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("sealbox: init gcm: %w", err)
	}

	return &Box{aead: aead}, nil
}

// FromFile reads key material from path and builds a Box from it.
func FromFile(path string) (*Box, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sealbox: read key file: %w", err)
	}
	return New(data)
}

// Seal encrypts plaintext. The random nonce is prefixed to the returned
// ciphertext so Open needs no extra state.
func (b *Box) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, b.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("sealbox: nonce: %w", err)
	}

	return b.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a value produced by Seal. It fails if the value was sealed
// with a different key or has been tampered with.
func (b *Box) Open(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < b.aead.NonceSize() {
		return nil, ErrCiphertext
	}

	nonce, sealed := ciphertext[:b.aead.NonceSize()], ciphertext[b.aead.NonceSize():]
	plain, err := b.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("sealbox: open: %w", err)
	}
	return plain, nil
}
