package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	PurposeBookingInvite    = "booking-invite"
	PurposePreBookingInvite = "pre-booking-invite"
)

// PreBookingInviteTTL is fixed: the share dialog promises the link works
// for 7 days.
const PreBookingInviteTTL = 7 * 24 * time.Hour

const SessionTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid_token")

// InviteClaims is the payload of both invite token variants. Booking
// invites carry bookingId+customerId; pre-booking invites carry postId.
type InviteClaims struct {
	jwt.RegisteredClaims
	Purpose    string `json:"purpose"`
	BookingID  uint   `json:"bookingId,omitempty"`
	CustomerID uint   `json:"customerId,omitempty"`
	PostID     uint   `json:"postId,omitempty"`
}

// SessionClaims is the payload of the login session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"userId"`
	Role   string `json:"role"`
}

func jwtSecret() []byte {
	return []byte(EnvOrDefault("JWT_SECRET", "default-secret"))
}

func bookingInviteTTL() time.Duration {
	hours, err := strconv.Atoi(EnvOrDefault("INVITE_TOKEN_TTL_HOURS", "720"))
	if err != nil || hours <= 0 {
		hours = 720
	}
	return time.Duration(hours) * time.Hour
}

// GenerateBookingInviteToken mints the token the customer shares with a
// guest. Note the stored copy on the booking record is what authorizes an
// accept; the signature alone is not enough once the token is rotated.
func GenerateBookingInviteToken(bookingID, customerID uint) (string, error) {
	now := time.Now().UTC()
	claims := InviteClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(bookingInviteTTL())),
		},
		Purpose:    PurposeBookingInvite,
		BookingID:  bookingID,
		CustomerID: customerID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

// GeneratePreBookingInviteToken mints a stateless listing-scoped invite.
// Nothing is persisted; any structurally valid, non-expired token of this
// purpose is accepted.
func GeneratePreBookingInviteToken(postID uint) (string, error) {
	now := time.Now().UTC()
	claims := InviteClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(PreBookingInviteTTL)),
		},
		Purpose: PurposePreBookingInvite,
		PostID:  postID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

// VerifyInviteToken checks signature and expiry and returns the decoded
// claims. It deliberately does not compare against any stored value.
func VerifyInviteToken(token string) (*InviteClaims, error) {
	var claims InviteClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return jwtSecret(), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != PurposeBookingInvite && claims.Purpose != PurposePreBookingInvite {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

func GenerateSessionToken(userID uint, role string) (string, error) {
	now := time.Now().UTC()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
		UserID: userID,
		Role:   role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

func VerifySessionToken(token string) (*SessionClaims, error) {
	var claims SessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return jwtSecret(), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
