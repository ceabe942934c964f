package services

import (
	"testing"
	"time"

	"github.com/Vladyslav2123/triply-sub001/models"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func stay(checkIn, checkOut, status string) models.Reservation {
	return models.Reservation{
		CheckIn:  day(checkIn),
		CheckOut: day(checkOut),
		Status:   status,
	}
}

func TestHasDateConflict_NoOverlap(t *testing.T) {
	existing := []models.Reservation{stay("2025-02-10", "2025-02-15", models.ReservationConfirmed)}
	assert.False(t, HasDateConflict(existing, day("2025-02-16"), day("2025-02-20")))
}

func TestHasDateConflict_ContainedOverlap(t *testing.T) {
	existing := []models.Reservation{stay("2025-02-10", "2025-02-15", models.ReservationConfirmed)}
	assert.True(t, HasDateConflict(existing, day("2025-02-12"), day("2025-02-14")))
}

func TestHasDateConflict_PartialOverlap(t *testing.T) {
	existing := []models.Reservation{stay("2025-02-10", "2025-02-15", models.ReservationPaid)}

	assert.True(t, HasDateConflict(existing, day("2025-02-14"), day("2025-02-18")))
	assert.True(t, HasDateConflict(existing, day("2025-02-05"), day("2025-02-10")))
}

func TestHasDateConflict_HostCancellationFreesDates(t *testing.T) {
	existing := []models.Reservation{stay("2025-02-10", "2025-02-15", models.ReservationCancelledByHost)}
	assert.False(t, HasDateConflict(existing, day("2025-02-12"), day("2025-02-14")))
}

// Only host cancellations free a date range; a guest cancellation
// keeps the dates blocked.
func TestHasDateConflict_GuestCancellationStillBlocks(t *testing.T) {
	existing := []models.Reservation{stay("2025-02-10", "2025-02-15", models.ReservationCancelledByGuest)}
	assert.True(t, HasDateConflict(existing, day("2025-02-12"), day("2025-02-14")))
}

func TestHasDateConflict_Empty(t *testing.T) {
	assert.False(t, HasDateConflict(nil, day("2025-02-12"), day("2025-02-14")))
}

func TestHasDateConflict_ShortCircuitsAcrossMany(t *testing.T) {
	existing := []models.Reservation{
		stay("2025-01-01", "2025-01-05", models.ReservationCompleted),
		stay("2025-02-10", "2025-02-15", models.ReservationConfirmed),
		stay("2025-03-01", "2025-03-05", models.ReservationPending),
	}
	assert.True(t, HasDateConflict(existing, day("2025-02-12"), day("2025-02-20")))
	assert.False(t, HasDateConflict(existing, day("2025-04-01"), day("2025-04-05")))
}
