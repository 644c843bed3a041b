package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestService_ListForUser(t *testing.T) {
	db := newTestDB(t)
	bookingSvc := NewBookingService(db)
	guestSvc := NewGuestService(db)

	owner := createTestUser(t, db, "owner@example.com")
	guestA := createTestUser(t, db, "guest-a@example.com")
	guestB := createTestUser(t, db, "guest-b@example.com")
	stranger := createTestUser(t, db, "stranger@example.com")
	listing := createTestListing(t, db)

	first := createTestBooking(t, bookingSvc, owner, listing.ID)
	second := createTestBooking(t, bookingSvc, owner, listing.ID)

	tokenFirst, err := bookingSvc.IssueInviteToken(first.ID, owner.ID)
	require.NoError(t, err)
	tokenSecond, err := bookingSvc.IssueInviteToken(second.ID, owner.ID)
	require.NoError(t, err)

	_, err = bookingSvc.AcceptInvite(first.ID, tokenFirst, guestA)
	require.NoError(t, err)
	_, err = bookingSvc.AcceptInvite(second.ID, tokenSecond, guestA)
	require.NoError(t, err)
	_, err = bookingSvc.AcceptInvite(second.ID, tokenSecond, guestB)
	require.NoError(t, err)

	// the owner sees each guest once, across both bookings
	guests, err := guestSvc.ListForUser(owner.ID)
	require.NoError(t, err)
	ids := make([]uint, 0, len(guests))
	for _, g := range guests {
		ids = append(ids, g.ID)
	}
	assert.ElementsMatch(t, []uint{guestA.ID, guestB.ID}, ids)

	// a guest sees co-guests of bookings they belong to
	guests, err = guestSvc.ListForUser(guestB.ID)
	require.NoError(t, err)
	ids = ids[:0]
	for _, g := range guests {
		ids = append(ids, g.ID)
	}
	assert.ElementsMatch(t, []uint{guestA.ID, guestB.ID}, ids)

	// a stranger sees nothing
	guests, err = guestSvc.ListForUser(stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, guests)
}
