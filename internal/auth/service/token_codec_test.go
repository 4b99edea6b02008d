package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/devsync/internal/auth/domain"
	apperrors "github.com/allisson/devsync/internal/errors"
)

const testSecret = "test-secret-with-enough-entropy"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewTokenCodec(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		codec, err := NewTokenCodec(testSecret, time.Hour, nil)
		require.NoError(t, err)
		assert.NotNil(t, codec)
	})

	t.Run("Error_EmptySecret", func(t *testing.T) {
		_, err := NewTokenCodec("", time.Hour, nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_NonPositiveLifetime", func(t *testing.T) {
		_, err := NewTokenCodec(testSecret, 0, nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestTokenCodec_IssueAndVerify(t *testing.T) {
	issuedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	subject := uuid.Must(uuid.NewV7())

	codec, err := NewTokenCodec(testSecret, time.Hour, fixedClock(issuedAt))
	require.NoError(t, err)

	t.Run("Success_Roundtrip", func(t *testing.T) {
		token, expiresAt, err := codec.Issue(subject)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, issuedAt.Add(time.Hour), expiresAt)

		got, err := codec.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, subject, got)
	})

	t.Run("Error_ExpiredToken", func(t *testing.T) {
		token, _, err := codec.Issue(subject)
		require.NoError(t, err)

		lateCodec, err := NewTokenCodec(testSecret, time.Hour, fixedClock(issuedAt.Add(time.Hour+time.Second)))
		require.NoError(t, err)

		_, err = lateCodec.Verify(token)
		assert.ErrorIs(t, err, domain.ErrTokenExpired)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Success_JustBeforeExpiry", func(t *testing.T) {
		token, _, err := codec.Issue(subject)
		require.NoError(t, err)

		almostCodec, err := NewTokenCodec(testSecret, time.Hour, fixedClock(issuedAt.Add(time.Hour-time.Second)))
		require.NoError(t, err)

		got, err := almostCodec.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, subject, got)
	})

	t.Run("Error_TamperedSignature", func(t *testing.T) {
		token, _, err := codec.Issue(subject)
		require.NoError(t, err)

		// Flip the last character of the signature segment.
		last := token[len(token)-1]
		replacement := byte('A')
		if last == replacement {
			replacement = 'B'
		}
		tampered := token[:len(token)-1] + string(replacement)

		_, err = codec.Verify(tampered)
		assert.ErrorIs(t, err, domain.ErrTokenSignatureInvalid)
	})

	t.Run("Error_WrongSecret", func(t *testing.T) {
		token, _, err := codec.Issue(subject)
		require.NoError(t, err)

		otherCodec, err := NewTokenCodec("a-completely-different-secret", time.Hour, fixedClock(issuedAt))
		require.NoError(t, err)

		_, err = otherCodec.Verify(token)
		assert.ErrorIs(t, err, domain.ErrTokenSignatureInvalid)
	})

	t.Run("Error_MalformedToken", func(t *testing.T) {
		for _, input := range []string{"", "garbage", "a.b", "a.b.c.d"} {
			_, err := codec.Verify(input)
			assert.ErrorIs(t, err, apperrors.ErrUnauthorized, "input %q", input)
		}
	})

	t.Run("Error_UnsignedAlgorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   subject.String(),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = codec.Verify(token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Error_MissingExpiry", func(t *testing.T) {
		noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject: subject.String(),
		})
		token, err := noExpiry.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = codec.Verify(token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Error_MissingSubject", func(t *testing.T) {
		noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		})
		token, err := noSubject.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = codec.Verify(token)
		assert.ErrorIs(t, err, domain.ErrTokenMalformed)
	})

	t.Run("Error_SubjectNotUUID", func(t *testing.T) {
		badSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		})
		token, err := badSubject.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = codec.Verify(token)
		assert.ErrorIs(t, err, domain.ErrTokenMalformed)
	})

	t.Run("TokenHasThreeSegments", func(t *testing.T) {
		token, _, err := codec.Issue(subject)
		require.NoError(t, err)
		assert.Len(t, strings.Split(token, "."), 3)
	})
}
