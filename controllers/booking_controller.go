package controllers

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"rental-backend/middleware"
	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

type createBookingPayload struct {
	ListingID uint   `json:"postId"`
	FromDate  string `json:"fromDate"`
	ToDate    string `json:"toDate"`
}

type inviteEmailPayload struct {
	Email string `json:"email"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// POST /api/bookings
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var payload createBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}
	if payload.ListingID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Post ID is required"})
		return
	}

	from, err := parseDate(payload.FromDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid fromDate"})
		return
	}
	to, err := parseDate(payload.ToDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid toDate"})
		return
	}

	booking, err := ctrl.BookingSvc.Create(user, services.CreateBookingInput{
		ListingID: payload.ListingID,
		FromDate:  from,
		ToDate:    to,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Listing not found"})
		case errors.Is(err, services.ErrInvalidDateRange):
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid date range"})
		default:
			log.Printf("Error creating booking: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

// GET /api/bookings
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	bookings, err := ctrl.BookingSvc.ListForUser(user.ID)
	if err != nil {
		log.Printf("Error listing bookings for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /api/bookings/:bookingId
func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	bookingID, ok := parseIDParam(c, "bookingId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Booking ID not provided"})
		return
	}

	booking, err := ctrl.BookingSvc.GetDetails(bookingID, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
			return
		}
		log.Printf("Error fetching booking %d: %v", bookingID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch booking"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

// POST /api/bookings/:bookingId/token
//
// Issues the booking's invite token, or returns the outstanding one.
func (ctrl *BookingController) IssueToken(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	bookingID, ok := parseIDParam(c, "bookingId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Booking ID not provided"})
		return
	}

	token, err := ctrl.BookingSvc.IssueInviteToken(bookingID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
		case errors.Is(err, services.ErrNotBookingOwner):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		default:
			log.Printf("Error generating token for booking %d: %v", bookingID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// POST /api/bookings/:bookingId/refresh-token
//
// Rotates the invite token. The old link stops matching the stored value,
// so it can no longer be accepted.
func (ctrl *BookingController) RefreshToken(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	bookingID, ok := parseIDParam(c, "bookingId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Booking ID not provided"})
		return
	}

	token, err := ctrl.BookingSvc.RefreshInviteToken(bookingID, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
			return
		}
		log.Printf("Error refreshing token for booking %d: %v", bookingID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// POST /api/bookings/:bookingId/accept-invite/:token
func (ctrl *BookingController) AcceptInvite(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	bookingID, ok := parseIDParam(c, "bookingId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Booking ID not provided"})
		return
	}

	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Token not provided"})
		return
	}

	alreadyMember, err := ctrl.BookingSvc.AcceptInvite(bookingID, token, user)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
			return
		}
		log.Printf("Error accepting invite for booking %d: %v", bookingID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to accept invite"})
		return
	}

	if alreadyMember {
		c.JSON(http.StatusOK, gin.H{"message": "User already in booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking updated"})
}

// GET /api/bookings/token/:token
//
// Verifies signature and expiry and returns the decoded payload so the
// frontend can fetch human-readable details. The stored token is not
// consulted here; authorization happens on accept.
func (ctrl *BookingController) DecodeToken(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Token not provided"})
		return
	}

	claims, err := utils.VerifyInviteToken(token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired token"})
		return
	}

	resp := gin.H{"purpose": claims.Purpose}
	if claims.BookingID != 0 {
		resp["bookingId"] = claims.BookingID
	}
	if claims.CustomerID != 0 {
		resp["customerId"] = claims.CustomerID
	}
	if claims.PostID != 0 {
		resp["postId"] = claims.PostID
	}
	if claims.ExpiresAt != nil {
		resp["exp"] = claims.ExpiresAt.Unix()
	}
	c.JSON(http.StatusOK, resp)
}

// DELETE /api/bookings/:bookingId/guests/:guestId
func (ctrl *BookingController) RemoveGuest(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	bookingID, ok := parseIDParam(c, "bookingId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Booking ID not provided"})
		return
	}
	guestID, ok := parseIDParam(c, "guestId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Guest ID not provided"})
		return
	}

	if err := ctrl.BookingSvc.RemoveGuest(bookingID, guestID, user.ID); err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
			return
		}
		log.Printf("Error removing guest %d from booking %d: %v", guestID, bookingID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to remove guest"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Guest removed from booking"})
}

var inviteEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// POST /api/bookings/:bookingId/invite-email
//
// Owner-only. Ensures the booking has a token and emails the invite link.
func (ctrl *BookingController) SendInviteEmail(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	bookingID, ok := parseIDParam(c, "bookingId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Booking ID not provided"})
		return
	}

	var payload inviteEmailPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}
	email := strings.TrimSpace(payload.Email)
	if email == "" || !inviteEmailRegex.MatchString(strings.ToLower(email)) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid email"})
		return
	}

	token, err := ctrl.BookingSvc.IssueInviteToken(bookingID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Booking not found"})
		case errors.Is(err, services.ErrNotBookingOwner):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		default:
			log.Printf("Error generating token for booking %d: %v", bookingID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		}
		return
	}

	booking, err := ctrl.BookingSvc.GetDetails(bookingID, user.ID)
	if err != nil {
		log.Printf("Error loading booking %d for invite email: %v", bookingID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send invite"})
		return
	}

	link := utils.BuildInviteLink(utils.EnvOrDefault("FRONTEND_URL", ""), booking.ID, token)
	formatDate := func(t *time.Time) string {
		if t == nil {
			return "N/A"
		}
		return t.Format("2006-01-02")
	}
	if err := utils.SendBookingInviteEmail(
		email,
		link,
		user.FullName,
		booking.Listing.Title,
		formatDate(booking.FromDate),
		formatDate(booking.ToDate),
	); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send invite email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invite sent"})
}
