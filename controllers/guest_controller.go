package controllers

import (
	"log"
	"net/http"

	"rental-backend/middleware"
	"rental-backend/services"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	GuestSvc *services.GuestService
}

func NewGuestController(svc *services.GuestService) *GuestController {
	return &GuestController{GuestSvc: svc}
}

// GET /api/guests
//
// Unique guests across every booking the caller owns or participates in.
func (ctrl *GuestController) GetGuests(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	guests, err := ctrl.GuestSvc.ListForUser(user.ID)
	if err != nil {
		log.Printf("Error fetching guests for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, guests)
}
