package services

import (
	"time"

	"github.com/Vladyslav2123/triply-sub001/models"
)

// HasDateConflict reports whether the candidate [checkIn, checkOut)
// range collides with any existing reservation. Only reservations
// cancelled by the host free their dates; a guest cancellation keeps
// them blocked.
func HasDateConflict(reservations []models.Reservation, checkIn, checkOut time.Time) bool {
	for _, r := range reservations {
		if r.Status == models.ReservationCancelledByHost {
			continue
		}
		// Overlap unless the candidate ends before the existing stay
		// starts or begins after it ends.
		if checkOut.Before(r.CheckIn) || checkIn.After(r.CheckOut) {
			continue
		}
		return true
	}
	return false
}

// blockingStatuses lists reservation statuses that occupy dates, for
// the SQL side of the same check.
func blockingStatuses() []string {
	return []string{
		models.ReservationPending,
		models.ReservationConfirmed,
		models.ReservationPaid,
		models.ReservationCancelledByGuest,
		models.ReservationCompleted,
		models.ReservationNoShow,
		models.ReservationRefunded,
	}
}
