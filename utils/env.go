package utils

import (
	"fmt"
	"os"
	"strings"
)

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// BuildInviteLink builds the frontend URL an invited guest opens to accept
// a booking invite.
func BuildInviteLink(frontendURL string, bookingID uint, token string) string {
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	frontendURL = strings.TrimRight(frontendURL, "/")
	return fmt.Sprintf("%s/guest/invite?bookingId=%d&token=%s", frontendURL, bookingID, token)
}
