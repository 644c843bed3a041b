package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type acceptPreBookingPayload struct {
	Token string `json:"token"`
}

// POST /api/pre-booking-invites/:postId/token
//
// Mints a listing-scoped invite for a booking that does not exist yet.
// Stateless: nothing is persisted, validity comes from signature + expiry.
func IssuePreBookingInvite(c *gin.Context) {
	raw := strings.TrimSpace(c.Param("postId"))
	postID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || postID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Post ID is required"})
		return
	}

	token, err := utils.GeneratePreBookingInviteToken(uint(postID))
	if err != nil {
		log.Printf("Error generating pre-booking invite token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// POST /api/pre-booking-invites/accept
//
// Verifies the token and hands the listing id back so the client can start
// the booking flow. No guest relationship is written; that happens when a
// real booking exists.
func AcceptPreBookingInvite(c *gin.Context) {
	var payload acceptPreBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil || strings.TrimSpace(payload.Token) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Token is required"})
		return
	}

	claims, err := utils.VerifyInviteToken(strings.TrimSpace(payload.Token))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired token"})
		return
	}
	if claims.Purpose != utils.PurposePreBookingInvite {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid token type"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Pre-booking invite accepted",
		"postId":  claims.PostID,
	})
}
