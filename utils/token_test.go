package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingInviteTokenRoundTrip(t *testing.T) {
	token, err := GenerateBookingInviteToken(42, 7)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyInviteToken(token)
	require.NoError(t, err)
	assert.Equal(t, PurposeBookingInvite, claims.Purpose)
	assert.Equal(t, uint(42), claims.BookingID)
	assert.Equal(t, uint(7), claims.CustomerID)
	assert.Zero(t, claims.PostID)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestPreBookingInviteTokenRoundTrip(t *testing.T) {
	token, err := GeneratePreBookingInviteToken(13)
	require.NoError(t, err)

	claims, err := VerifyInviteToken(token)
	require.NoError(t, err)
	assert.Equal(t, PurposePreBookingInvite, claims.Purpose)
	assert.Equal(t, uint(13), claims.PostID)
	assert.Zero(t, claims.BookingID)

	require.NotNil(t, claims.ExpiresAt)
	expectedExpiry := time.Now().UTC().Add(PreBookingInviteTTL)
	assert.WithinDuration(t, expectedExpiry, claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyInviteToken_Expired(t *testing.T) {
	now := time.Now().UTC()
	claims := InviteClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
		Purpose:   PurposeBookingInvite,
		BookingID: 7,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
	require.NoError(t, err)

	_, err = VerifyInviteToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyInviteToken_WrongKey(t *testing.T) {
	now := time.Now().UTC()
	claims := InviteClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Purpose:   PurposeBookingInvite,
		BookingID: 7,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = VerifyInviteToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyInviteToken_Garbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := VerifyInviteToken(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", raw)
	}
}

func TestVerifyInviteToken_RejectsSessionToken(t *testing.T) {
	// a session token is well signed but carries no invite purpose
	token, err := GenerateSessionToken(5, "customer")
	require.NoError(t, err)

	_, err = VerifyInviteToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken(9, "admin")
	require.NoError(t, err)

	claims, err := VerifySessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestVerifySessionToken_Invalid(t *testing.T) {
	_, err := VerifySessionToken("bogus")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
