package service

import (
	"strings"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/allisson/devsync/internal/errors"
)

// passwordService implements PasswordService using Argon2id for new hashes.
// It also verifies legacy bcrypt hashes carried over from the previous backend,
// so those accounts can log in and be transparently rehashed.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordService creates a PasswordService with the interactive Argon2id policy.
func NewPasswordService() (PasswordService, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &passwordService{hasher: hasher}, nil
}

// Hash derives an Argon2id hash from the plain password.
func (p *passwordService) Hash(plainPassword string) (string, error) {
	hash, err := p.hasher.Hash([]byte(plainPassword))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

// Verify reports whether the plain password matches the stored hash.
// Legacy bcrypt hashes are recognized by their prefix. Any error during
// verification counts as a mismatch.
func (p *passwordService) Verify(plainPassword, storedHash string) bool {
	if isBcryptHash(storedHash) {
		return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plainPassword)) == nil
	}

	ok, err := p.hasher.Verify([]byte(plainPassword), storedHash)
	if err != nil {
		return false
	}
	return ok
}

// NeedsRehash reports whether the stored hash uses the legacy bcrypt scheme.
func (p *passwordService) NeedsRehash(storedHash string) bool {
	return isBcryptHash(storedHash)
}

// isBcryptHash checks for the bcrypt modular crypt prefixes.
func isBcryptHash(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") ||
		strings.HasPrefix(hash, "$2b$") ||
		strings.HasPrefix(hash, "$2y$")
}
