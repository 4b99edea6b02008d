package domain

import (
	"github.com/allisson/devsync/internal/errors"
)

// Authentication errors.
var (
	// ErrUserNotFound indicates a user with the specified ID or identifier was not found.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrInvalidCredentials covers both unknown identifiers and password mismatches.
	// The two cases are merged so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrUserDisabled indicates the account exists but has been deactivated.
	ErrUserDisabled = errors.Wrap(errors.ErrUnauthorized, "account is disabled")

	// ErrUserLocked indicates the account is temporarily locked after too many
	// failed authentication attempts.
	ErrUserLocked = errors.Wrap(errors.ErrLocked, "account is locked")

	// ErrUsernameAlreadyExists indicates a signup with a username already in use.
	ErrUsernameAlreadyExists = errors.Wrap(errors.ErrConflict, "username already exists")

	// ErrEmailAlreadyExists indicates a signup with an email already in use.
	ErrEmailAlreadyExists = errors.Wrap(errors.ErrConflict, "email already exists")

	// ErrTokenMalformed indicates the token is not a structurally valid signed token.
	ErrTokenMalformed = errors.Wrap(errors.ErrUnauthorized, "token is malformed")

	// ErrTokenExpired indicates the token signature is valid but the token has expired.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token has expired")

	// ErrTokenSignatureInvalid indicates the token signature does not verify.
	ErrTokenSignatureInvalid = errors.Wrap(errors.ErrUnauthorized, "token signature is invalid")
)
