package services

import (
	"fmt"

	"rental-backend/models"

	"gorm.io/gorm"
)

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

// ListForUser returns the distinct guests across every booking the user
// owns or participates in as a guest.
func (s *GuestService) ListForUser(userID uint) ([]models.User, error) {
	var guests []models.User
	err := s.DB.Model(&models.User{}).
		Distinct("users.*").
		Joins("JOIN booking_guests bg ON bg.user_id = users.id").
		Joins("JOIN bookings b ON b.id = bg.booking_id AND b.deleted_at IS NULL").
		Joins("LEFT JOIN booking_guests mine ON mine.booking_id = b.id AND mine.user_id = ?", userID).
		Where("b.customer_id = ? OR mine.user_id IS NOT NULL", userID).
		Find(&guests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	return guests, nil
}
