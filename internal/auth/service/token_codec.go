package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/allisson/devsync/internal/auth/domain"
	apperrors "github.com/allisson/devsync/internal/errors"
)

// jwtTokenCodec implements TokenCodec using HMAC-SHA256 signed JWTs.
// Tokens are self-contained: verification needs only the shared secret,
// no session store lookup.
type jwtTokenCodec struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewTokenCodec creates a TokenCodec that signs tokens with the given secret
// and lifetime. The now function supplies the current time and exists so tests
// can control the clock; pass time.Now in production.
func NewTokenCodec(secret string, lifetime time.Duration, now func() time.Time) (TokenCodec, error) {
	if secret == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token secret must not be empty")
	}
	if lifetime <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token lifetime must be positive")
	}
	if now == nil {
		now = time.Now
	}

	return &jwtTokenCodec{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      now,
	}, nil
}

// Issue creates a signed token carrying the subject and an absolute expiry.
func (c *jwtTokenCodec) Issue(subject uuid.UUID) (string, time.Time, error) {
	issuedAt := c.now()
	expiresAt := issuedAt.Add(c.lifetime)

	claims := jwt.RegisteredClaims{
		Subject:   subject.String(),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign token")
	}

	return signed, expiresAt, nil
}

// Verify checks the token signature and expiry against the codec clock and
// returns the subject. Tokens without a subject or expiry claim are rejected.
func (c *jwtTokenCodec) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, domain.ErrTokenSignatureInvalid
			}
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, mapTokenError(err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return uuid.Nil, domain.ErrTokenMalformed
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, domain.ErrTokenMalformed
	}

	return subject, nil
}

// mapTokenError translates jwt library errors into the domain token taxonomy.
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, domain.ErrTokenSignatureInvalid):
		return domain.ErrTokenSignatureInvalid
	default:
		return domain.ErrTokenMalformed
	}
}
