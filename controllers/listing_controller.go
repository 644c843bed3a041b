package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"rental-backend/models"
	"rental-backend/services"

	"github.com/gin-gonic/gin"
)

type ListingController struct {
	ListingSvc *services.ListingService
}

func NewListingController(svc *services.ListingService) *ListingController {
	return &ListingController{ListingSvc: svc}
}

type createListingPayload struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	NightlyRate float64 `json:"nightlyRate"`
	MaxGuests   int     `json:"maxGuests"`
	Published   *bool   `json:"published"`
}

type quotePayload struct {
	Nights int `json:"nights"`
}

// GET /api/listings
func (ctrl *ListingController) GetListings(c *gin.Context) {
	listings, err := ctrl.ListingSvc.ListPublished()
	if err != nil {
		log.Printf("Error listing listings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, listings)
}

// GET /api/listings/:slug
func (ctrl *ListingController) GetListing(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "slug is required"})
		return
	}

	listing, err := ctrl.ListingSvc.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, services.ErrListingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Listing not found"})
			return
		}
		log.Printf("Error fetching listing %q: %v", slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, listing)
}

// POST /api/listings (admin only, enforced in routes)
func (ctrl *ListingController) CreateListing(c *gin.Context) {
	var payload createListingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}
	if strings.TrimSpace(payload.Title) == "" || payload.NightlyRate <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title and nightlyRate are required"})
		return
	}

	published := true
	if payload.Published != nil {
		published = *payload.Published
	}
	maxGuests := payload.MaxGuests
	if maxGuests <= 0 {
		maxGuests = 2
	}

	listing := models.Listing{
		Title:       strings.TrimSpace(payload.Title),
		Slug:        payload.Slug,
		Description: payload.Description,
		NightlyRate: payload.NightlyRate,
		MaxGuests:   maxGuests,
		Published:   published,
	}
	if err := ctrl.ListingSvc.Create(&listing); err != nil {
		log.Printf("Error creating listing: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create listing"})
		return
	}
	c.JSON(http.StatusOK, listing)
}

// POST /api/listings/:id/quote
//
// Prices a stay using the long-stay discount tiers.
func (ctrl *ListingController) QuoteStay(c *gin.Context) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid listing id"})
		return
	}

	var payload quotePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}

	listing, err := ctrl.ListingSvc.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrListingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Listing not found"})
			return
		}
		log.Printf("Error fetching listing %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	quote, err := services.QuoteStay(listing.NightlyRate, payload.Nights)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid stay length"})
		return
	}
	c.JSON(http.StatusOK, quote)
}
