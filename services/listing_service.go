package services

import (
	"errors"
	"fmt"
	"strings"

	"rental-backend/models"

	"gorm.io/gorm"
)

type ListingService struct {
	DB *gorm.DB
}

func NewListingService(db *gorm.DB) *ListingService {
	return &ListingService{DB: db}
}

// ListPublished returns listings visible on the marketing site.
func (s *ListingService) ListPublished() ([]models.Listing, error) {
	var listings []models.Listing
	err := s.DB.Where("published = ?", true).Order("id ASC").Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	return listings, nil
}

func (s *ListingService) GetBySlug(slug string) (models.Listing, error) {
	var listing models.Listing
	err := s.DB.Where("slug = ? AND published = ?", strings.TrimSpace(slug), true).First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Listing{}, ErrListingNotFound
		}
		return models.Listing{}, fmt.Errorf("failed to find listing: %w", err)
	}
	return listing, nil
}

func (s *ListingService) GetByID(id uint) (models.Listing, error) {
	var listing models.Listing
	err := s.DB.First(&listing, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Listing{}, ErrListingNotFound
		}
		return models.Listing{}, fmt.Errorf("failed to find listing: %w", err)
	}
	return listing, nil
}

func (s *ListingService) Create(listing *models.Listing) error {
	listing.Slug = strings.ToLower(strings.TrimSpace(listing.Slug))
	if listing.Slug == "" {
		listing.Slug = slugify(listing.Title)
	}
	return s.DB.Create(listing).Error
}

func slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
