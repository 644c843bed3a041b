package controllers

import (
	"log"
	"net/http"

	"rental-backend/middleware"
	"rental-backend/services"

	"github.com/gin-gonic/gin"
)

// GET /api/check-subscription
//
// Paywall check for the subscriber-only surfaces. Failure is reported as
// unsubscribed rather than a hard error so the frontend can redirect.
func CheckSubscription(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"hasActiveSubscription": false})
		return
	}

	status, err := services.CheckSubscription(user.ID)
	if err != nil {
		log.Printf("Error checking subscription for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"hasActiveSubscription": false})
		return
	}

	c.JSON(http.StatusOK, status)
}
