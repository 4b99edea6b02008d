// Package service provides authentication support services: password hashing
// and signed token encoding/verification.
package service

import (
	"time"

	"github.com/google/uuid"
)

// PasswordService handles password hashing and verification.
type PasswordService interface {
	// Hash derives a self-describing salted hash from a plain password.
	Hash(plainPassword string) (string, error)

	// Verify reports whether the plain password matches the stored hash.
	// Any internal error is treated as a mismatch.
	Verify(plainPassword, storedHash string) bool

	// NeedsRehash reports whether the stored hash uses a legacy scheme and
	// should be replaced with a current hash after a successful verification.
	NeedsRehash(storedHash string) bool
}

// TokenCodec issues and verifies stateless signed bearer tokens.
// Verification requires no server-side session state.
type TokenCodec interface {
	// Issue creates a signed token for the given subject.
	// Returns the encoded token and its expiration time.
	Issue(subject uuid.UUID) (token string, expiresAt time.Time, err error)

	// Verify checks the token signature and expiry and returns the subject.
	// Failures map to the domain token error taxonomy.
	Verify(token string) (uuid.UUID, error)
}
