package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"rental-backend/config"
	"rental-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateModels(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		FullName: strings.Split(email, "@")[0],
		Email:    email,
		Password: "hashed",
		Role:     models.RoleCustomer,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestListing(t *testing.T, db *gorm.DB) *models.Listing {
	t.Helper()
	listing := &models.Listing{
		Title:       "Beach House",
		Slug:        fmt.Sprintf("beach-house-%s", strings.ToLower(strings.ReplaceAll(t.Name(), "/", "-"))),
		NightlyRate: 150,
		MaxGuests:   4,
		Published:   true,
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}

func createTestBooking(t *testing.T, svc *BookingService, owner *models.User, listingID uint) models.Booking {
	t.Helper()
	from := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 4)
	booking, err := svc.Create(owner, CreateBookingInput{
		ListingID: listingID,
		FromDate:  from,
		ToDate:    to,
	})
	require.NoError(t, err)
	return booking
}

func guestIDs(t *testing.T, db *gorm.DB, bookingID uint) []uint {
	t.Helper()
	var ids []uint
	require.NoError(t, db.Table("booking_guests").
		Where("booking_id = ?", bookingID).
		Order("user_id").
		Pluck("user_id", &ids).Error)
	return ids
}

func TestCreateBooking(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := createTestUser(t, db, "owner@example.com")
	listing := createTestListing(t, db)

	booking := createTestBooking(t, svc, owner, listing.ID)

	assert.True(t, strings.HasPrefix(booking.ReferenceCode, "BK-"))
	assert.Equal(t, owner.ID, booking.CustomerID)
	assert.Equal(t, listing.ID, booking.ListingID)
	assert.Equal(t, 4, booking.Nights)
	assert.Equal(t, models.PaymentStatusUnpaid, booking.PaymentStatus)
	assert.Empty(t, booking.Token)
}

func TestCreateBooking_MissingListing(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := createTestUser(t, db, "owner@example.com")

	_, err := svc.Create(owner, CreateBookingInput{
		ListingID: 999,
		FromDate:  time.Now(),
		ToDate:    time.Now().AddDate(0, 0, 2),
	})
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestCreateBooking_InvalidDateRange(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := createTestUser(t, db, "owner@example.com")
	listing := createTestListing(t, db)

	from := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(owner, CreateBookingInput{
		ListingID: listing.ID,
		FromDate:  from,
		ToDate:    from.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestIssueInviteToken_Idempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := createTestUser(t, db, "owner@example.com")
	listing := createTestListing(t, db)
	booking := createTestBooking(t, svc, owner, listing.ID)

	first, err := svc.IssueInviteToken(booking.ID, owner.ID)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := svc.IssueInviteToken(booking.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestIssueInviteToken_NotOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	listing := createTestListing(t, db)
	booking := createTestBooking(t, svc, owner, listing.ID)

	_, err := svc.IssueInviteToken(booking.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotBookingOwner)
}

func TestIssueInviteToken_MissingBooking(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := createTestUser(t, db, "owner@example.com")

	_, err := svc.IssueInviteToken(999, owner.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRefreshInviteToken_InvalidatesOldToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := createTestUser(t, db, "owner@example.com")
	guest := createTestUser(t, db, "guest@example.com")
	listing := createTestListing(t, db)
	booking := createTestBooking(t, svc, owner, listing.ID)

	oldToken, err := svc.IssueInviteToken(booking.ID, owner.ID)
	require.NoError(t, err)

	newToken, err := svc.RefreshInviteToken(booking.ID, owner.ID)
	require.NoError(t, err)
	assert.NotEqual(t, oldToken, newToken)

	// the pre-refresh token no longer matches the stored value
	_, err = svc.AcceptInvite(booking.ID, oldToken, guest)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.AcceptInvite(booking.ID, newToken, guest)
	require.NoError(t, err)
	assert.Equal(t, []uint{guest.ID}, guestIDs(t, db, booking.ID))
}

func TestRefreshInviteToken_NotOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	listing := createTestListing(t, db)
	booking := createTestBooking(t, svc, owner, listing.ID)

	_, err := svc.RefreshInviteToken(booking.ID, other.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestAcceptInvite_Idempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := createTestUser(t, db, "owner@example.com")
	guest := createTestUser(t, db, "guest@example.com")
	listing := createTestListing(t, db)
	booking := createTestBooking(t, svc, owner, listing.ID)

	token, err := svc.IssueInviteToken(booking.ID, owner.ID)
	require.NoError(t, err)

	already, err := svc.AcceptInvite(booking.ID, token, guest)
	require.NoError(t, err)
	assert.False(t, already)

	already, err = svc.AcceptInvite(booking.ID, token, guest)
	require.NoError(t, err)
	assert.True(t, already)

	assert.Equal(t, []uint{guest.ID}, guestIDs(t, db, booking.ID))
}

func TestAcceptInvite_OwnerNeverBecomesGuest(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := createTestUser(t, db, "owner@example.com")
	listing := createTestListing(t, db)
	booking := createTestBooking(t, svc, owner, listing.ID)

	token, err := svc.IssueInviteToken(booking.ID, owner.ID)
	require.NoError(t, err)

	already, err := svc.AcceptInvite(booking.ID, token, owner)
	require.NoError(t, err)
	assert.True(t, already)
	assert.Empty(t, guestIDs(t, db, booking.ID))
}

func TestAcceptInvite_WrongToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := createTestUser(t, db, "owner@example.com")
	guest := createTestUser(t, db, "guest@example.com")
	listing := createTestListing(t, db)
	booking := createTestBooking(t, svc, owner, listing.ID)

	_, err := svc.IssueInviteToken(booking.ID, owner.ID)
	require.NoError(t, err)

	_, err = svc.AcceptInvite(booking.ID, "bogus-token", guest)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Empty(t, guestIDs(t, db, booking.ID))
}

func TestRemoveGuest(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := createTestUser(t, db, "owner@example.com")
	guest := createTestUser(t, db, "guest@example.com")
	listing := createTestListing(t, db)
	booking := createTestBooking(t, svc, owner, listing.ID)

	token, err := svc.IssueInviteToken(booking.ID, owner.ID)
	require.NoError(t, err)
	_, err = svc.AcceptInvite(booking.ID, token, guest)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveGuest(booking.ID, guest.ID, owner.ID))
	assert.Empty(t, guestIDs(t, db, booking.ID))

	// removing again fails the compound filter
	err = svc.RemoveGuest(booking.ID, guest.ID, owner.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRemoveGuest_NotOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := createTestUser(t, db, "owner@example.com")
	guest := createTestUser(t, db, "guest@example.com")
	other := createTestUser(t, db, "other@example.com")
	listing := createTestListing(t, db)
	booking := createTestBooking(t, svc, owner, listing.ID)

	token, err := svc.IssueInviteToken(booking.ID, owner.ID)
	require.NoError(t, err)
	_, err = svc.AcceptInvite(booking.ID, token, guest)
	require.NoError(t, err)

	err = svc.RemoveGuest(booking.ID, guest.ID, other.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Equal(t, []uint{guest.ID}, guestIDs(t, db, booking.ID))
}

func TestListForUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := createTestUser(t, db, "owner@example.com")
	guest := createTestUser(t, db, "guest@example.com")
	stranger := createTestUser(t, db, "stranger@example.com")
	listing := createTestListing(t, db)
	booking := createTestBooking(t, svc, owner, listing.ID)

	token, err := svc.IssueInviteToken(booking.ID, owner.ID)
	require.NoError(t, err)
	_, err = svc.AcceptInvite(booking.ID, token, guest)
	require.NoError(t, err)

	ownerBookings, err := svc.ListForUser(owner.ID)
	require.NoError(t, err)
	require.Len(t, ownerBookings, 1)
	assert.Equal(t, booking.ID, ownerBookings[0].ID)

	guestBookings, err := svc.ListForUser(guest.ID)
	require.NoError(t, err)
	require.Len(t, guestBookings, 1)
	assert.Equal(t, booking.ID, guestBookings[0].ID)

	strangerBookings, err := svc.ListForUser(stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, strangerBookings)
}

func TestGetDetails_AccessControl(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	owner := createTestUser(t, db, "owner@example.com")
	guest := createTestUser(t, db, "guest@example.com")
	stranger := createTestUser(t, db, "stranger@example.com")
	listing := createTestListing(t, db)
	booking := createTestBooking(t, svc, owner, listing.ID)

	token, err := svc.IssueInviteToken(booking.ID, owner.ID)
	require.NoError(t, err)
	_, err = svc.AcceptInvite(booking.ID, token, guest)
	require.NoError(t, err)

	got, err := svc.GetDetails(booking.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, listing.Title, got.Listing.Title)

	_, err = svc.GetDetails(booking.ID, guest.ID)
	require.NoError(t, err)

	_, err = svc.GetDetails(booking.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
