// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"rental-backend/models"
	"rental-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound  = errors.New("booking_not_found")
	ErrNotBookingOwner  = errors.New("not_booking_owner")
	ErrListingNotFound  = errors.New("listing_not_found")
	ErrInvalidDateRange = errors.New("invalid_date_range")
)

// BookingService wraps *gorm.DB with the booking and invite logic.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

type CreateBookingInput struct {
	ListingID uint
	FromDate  time.Time
	ToDate    time.Time
}

func newReferenceCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "BK-" + raw[:10]
}

// Create opens an unpaid booking owned by the customer. No invite token is
// minted here; the first token request does that.
func (s *BookingService) Create(customer *models.User, in CreateBookingInput) (models.Booking, error) {
	var listing models.Listing
	if err := s.DB.First(&listing, in.ListingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrListingNotFound
		}
		return models.Booking{}, fmt.Errorf("failed to find listing: %w", err)
	}

	if in.FromDate.IsZero() || in.ToDate.IsZero() || !in.ToDate.After(in.FromDate) {
		return models.Booking{}, ErrInvalidDateRange
	}
	nights := int(in.ToDate.Sub(in.FromDate).Hours() / 24)
	if nights < 1 {
		nights = 1
	}

	from := in.FromDate
	to := in.ToDate

	// retry on reference code collision
	var booking models.Booking
	var createErr error
	for attempt := 0; attempt < 5; attempt++ {
		booking = models.Booking{
			ReferenceCode: newReferenceCode(),
			CustomerID:    customer.ID,
			ListingID:     listing.ID,
			FromDate:      &from,
			ToDate:        &to,
			Nights:        nights,
			PaymentStatus: models.PaymentStatusUnpaid,
		}
		createErr = s.DB.Create(&booking).Error
		if createErr == nil {
			break
		}
		lc := strings.ToLower(createErr.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") || strings.Contains(lc, "constraint") {
			log.Printf("booking reference collision (attempt %d) - retrying", attempt+1)
			continue
		}
		return models.Booking{}, fmt.Errorf("failed to create booking: %w", createErr)
	}
	if createErr != nil {
		return models.Booking{}, fmt.Errorf("failed to create booking after retries: %w", createErr)
	}

	booking.Listing = listing
	return booking, nil
}

// IssueInviteToken returns the booking's outstanding invite token, minting
// and persisting one when none exists. Calling it twice without a refresh
// returns the identical token string.
func (s *BookingService) IssueInviteToken(bookingID, requesterID uint) (string, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrBookingNotFound
		}
		return "", fmt.Errorf("failed to find booking: %w", err)
	}

	if booking.CustomerID != requesterID {
		return "", ErrNotBookingOwner
	}

	if booking.Token != "" {
		return booking.Token, nil
	}

	token, err := utils.GenerateBookingInviteToken(booking.ID, booking.CustomerID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.DB.Model(&booking).Update("token", token).Error; err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

// RefreshInviteToken unconditionally mints a replacement token and
// overwrites the stored one. Acceptance checks stored-value equality, so
// this revokes the previous link even though its signature stays valid.
// The lookup is keyed on (id, customer) so a non-owner sees not-found.
func (s *BookingService) RefreshInviteToken(bookingID, requesterID uint) (string, error) {
	var booking models.Booking
	err := s.DB.Where("id = ? AND customer_id = ?", bookingID, requesterID).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrBookingNotFound
		}
		return "", fmt.Errorf("failed to find booking: %w", err)
	}

	token, err := utils.GenerateBookingInviteToken(booking.ID, booking.CustomerID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.DB.Model(&booking).Update("token", token).Error; err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

// AcceptInvite adds the user to the booking's guest list. The booking is
// looked up by the compound (id, stored token) key, which rejects tokens
// invalidated by a refresh. Accepting as the owner, or accepting twice, is
// an idempotent no-op; alreadyMember reports which case applied.
func (s *BookingService) AcceptInvite(bookingID uint, token string, user *models.User) (alreadyMember bool, err error) {
	var booking models.Booking
	err = s.DB.Where("id = ? AND token = ?", bookingID, token).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrBookingNotFound
		}
		return false, fmt.Errorf("failed to find booking: %w", err)
	}

	// the owner never joins their own guest list
	if booking.CustomerID == user.ID {
		return true, nil
	}

	var count int64
	if err := s.DB.Table("booking_guests").
		Where("booking_id = ? AND user_id = ?", booking.ID, user.ID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check guest membership: %w", err)
	}
	if count > 0 {
		return true, nil
	}

	if err := s.DB.Model(&booking).Association("Guests").Append(user); err != nil {
		// the join table's composite key turns a concurrent double accept
		// into a duplicate-key error, not a duplicate row
		lc := strings.ToLower(err.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") || strings.Contains(lc, "constraint") {
			return true, nil
		}
		return false, fmt.Errorf("failed to add guest: %w", err)
	}
	return false, nil
}

// RemoveGuest rewrites the guest set without the given guest. The compound
// filter (id, guest present, customer = requester) makes a non-owner or a
// non-member guest indistinguishable from a missing booking.
func (s *BookingService) RemoveGuest(bookingID, guestID, requesterID uint) error {
	var booking models.Booking
	err := s.DB.
		Joins("JOIN booking_guests bg ON bg.booking_id = bookings.id AND bg.user_id = ?", guestID).
		Where("bookings.id = ? AND bookings.customer_id = ?", bookingID, requesterID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to find booking: %w", err)
	}

	if err := s.DB.Model(&booking).Association("Guests").Delete(&models.User{ID: guestID}); err != nil {
		return fmt.Errorf("failed to remove guest: %w", err)
	}
	return nil
}

// ListForUser returns bookings the user owns or is a guest of, newest
// first.
func (s *BookingService) ListForUser(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.
		Preload("Listing").
		Preload("Guests").
		Joins("LEFT JOIN booking_guests bg ON bg.booking_id = bookings.id AND bg.user_id = ?", userID).
		Where("bookings.customer_id = ? OR bg.user_id IS NOT NULL", userID).
		Group("bookings.id").
		Order("bookings.id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// GetDetails loads a booking with its listing, customer and guests.
// Only the owner and current guests may read it.
func (s *BookingService) GetDetails(bookingID, userID uint) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.
		Preload("Listing").
		Preload("Customer").
		Preload("Guests").
		First(&booking, bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, fmt.Errorf("failed to find booking: %w", err)
	}

	if booking.CustomerID == userID {
		return booking, nil
	}
	for _, g := range booking.Guests {
		if g.ID == userID {
			return booking, nil
		}
	}
	return models.Booking{}, ErrBookingNotFound
}
