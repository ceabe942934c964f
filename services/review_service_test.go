package services

import (
	"testing"

	"github.com/Vladyslav2123/triply-sub001/models"

	"github.com/stretchr/testify/assert"
)

func completedStay(id, guestID, listingID uint) models.Reservation {
	return models.Reservation{
		ID:                  id,
		GuestID:             guestID,
		ReservationableID:   listingID,
		ReservationableType: models.ReservationableListing,
		Status:              models.ReservationCompleted,
	}
}

func TestCanReview_Allow(t *testing.T) {
	guest := &models.User{ID: 7}
	reservations := []models.Reservation{completedStay(100, 7, 42)}

	decision := CanReview(guest, models.ReservationableListing, 42, 9, reservations, nil)

	assert.True(t, decision.Allowed)
	assert.Equal(t, uint(100), decision.ReservationID)
	assert.Empty(t, decision.Reason)
}

func TestCanReview_UnsupportedEntityType(t *testing.T) {
	guest := &models.User{ID: 7}
	decision := CanReview(guest, "profile", 42, 9, nil, nil)

	assert.False(t, decision.Allowed)
	assert.Equal(t, DenyUnsupportedEntity, decision.Reason)
}

func TestCanReview_NoReservation(t *testing.T) {
	guest := &models.User{ID: 7}
	decision := CanReview(guest, models.ReservationableListing, 42, 9, nil, nil)

	assert.False(t, decision.Allowed)
	assert.Equal(t, DenyNoEligibleStay, decision.Reason)
}

func TestCanReview_ReservationNotCompleted(t *testing.T) {
	guest := &models.User{ID: 7}
	res := completedStay(100, 7, 42)
	res.Status = models.ReservationPaid

	decision := CanReview(guest, models.ReservationableListing, 42, 9, []models.Reservation{res}, nil)

	assert.False(t, decision.Allowed)
	assert.Equal(t, DenyNoEligibleStay, decision.Reason)
}

func TestCanReview_WrongEntity(t *testing.T) {
	guest := &models.User{ID: 7}
	reservations := []models.Reservation{completedStay(100, 7, 999)}

	decision := CanReview(guest, models.ReservationableListing, 42, 9, reservations, nil)

	assert.False(t, decision.Allowed)
	assert.Equal(t, DenyNoEligibleStay, decision.Reason)
}

func TestCanReview_OwnerDenied(t *testing.T) {
	owner := &models.User{ID: 9}
	reservations := []models.Reservation{completedStay(100, 9, 42)}

	decision := CanReview(owner, models.ReservationableListing, 42, 9, reservations, nil)

	assert.False(t, decision.Allowed)
	assert.Equal(t, DenyOwnEntity, decision.Reason)
}

// Once a review exists for the (reservation, reviewer) pair, repeated
// checks keep denying with the same reason.
func TestCanReview_AlreadyReviewedIdempotent(t *testing.T) {
	guest := &models.User{ID: 7}
	reservations := []models.Reservation{completedStay(100, 7, 42)}
	reviews := []models.Review{{ReservationID: 100, ReviewerID: 7}}

	for i := 0; i < 3; i++ {
		decision := CanReview(guest, models.ReservationableListing, 42, 9, reservations, reviews)
		assert.False(t, decision.Allowed)
		assert.Equal(t, DenyNoEligibleStay, decision.Reason)
	}
}

func TestCanReview_SecondStayStillEligible(t *testing.T) {
	guest := &models.User{ID: 7}
	reservations := []models.Reservation{
		completedStay(100, 7, 42),
		completedStay(101, 7, 42),
	}
	reviews := []models.Review{{ReservationID: 100, ReviewerID: 7}}

	decision := CanReview(guest, models.ReservationableListing, 42, 9, reservations, reviews)

	assert.True(t, decision.Allowed)
	assert.Equal(t, uint(101), decision.ReservationID)
}

// Rule order: a missing completed stay wins over the owner rule.
func TestCanReview_RuleOrder(t *testing.T) {
	owner := &models.User{ID: 9}
	decision := CanReview(owner, models.ReservationableListing, 42, 9, nil, nil)

	assert.Equal(t, DenyNoEligibleStay, decision.Reason)
}

func TestReviewInput_SubRatingsOrder(t *testing.T) {
	in := ReviewInput{Cleanliness: 1, Accuracy: 2, Checkin: 3, Communication: 4, Location: 5, Value: 5}
	assert.Equal(t, [6]int{1, 2, 3, 4, 5, 5}, in.subRatings())
	assert.Equal(t, 3.3, ComputeOverallRating(in.subRatings()))
}
