package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rental-backend/controllers"
	"rental-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers onto the route tree.
func SetupRouter(
	bc *controllers.BookingController,
	gc *controllers.GuestController,
	lc *controllers.ListingController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())
	r.Static("/uploads", "./uploads")

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
			auth.GET("/me", middleware.RequireAuth(), controllers.Me)
			auth.POST("/logout", middleware.RequireAuth(), controllers.Logout)
		}

		// Marketing pages read these without a session
		listings := api.Group("/listings")
		{
			listings.GET("", lc.GetListings)
			listings.GET("/:slug", lc.GetListing)
			listings.POST("/:id/quote", lc.QuoteStay)
			listings.POST("", middleware.RequireAuth(), middleware.RequireAdmin(), lc.CreateListing)
		}

		bookings := api.Group("/bookings", middleware.RequireAuth())
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)

			// static segment must be registered alongside :bookingId
			bookings.GET("/token/:token", bc.DecodeToken)

			bookings.GET("/:bookingId", bc.GetBookingDetails)
			bookings.POST("/:bookingId/token", bc.IssueToken)
			bookings.POST("/:bookingId/refresh-token", bc.RefreshToken)
			bookings.POST("/:bookingId/accept-invite/:token", bc.AcceptInvite)
			bookings.DELETE("/:bookingId/guests/:guestId", bc.RemoveGuest)
			bookings.POST("/:bookingId/invite-email", bc.SendInviteEmail)
		}

		preBooking := api.Group("/pre-booking-invites", middleware.RequireAuth())
		{
			preBooking.POST("/:postId/token", controllers.IssuePreBookingInvite)
			preBooking.POST("/accept", controllers.AcceptPreBookingInvite)
		}

		guests := api.Group("/guests", middleware.RequireAuth())
		{
			guests.GET("", gc.GetGuests)
		}

		api.GET("/check-subscription", middleware.RequireAuth(), controllers.CheckSubscription)
	}

	return r
}
