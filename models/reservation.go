package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservationable target kinds. The polymorphic target is resolved
// once at the data-access boundary; core logic only ever sees these
// two tags.
const (
	ReservationableListing    = "listing"
	ReservationableExperience = "experience"
)

// Reservation statuses.
const (
	ReservationPending          = "pending"
	ReservationConfirmed        = "confirmed"
	ReservationPaid             = "paid"
	ReservationCancelledByGuest = "cancelled_by_guest"
	ReservationCancelledByHost  = "cancelled_by_host"
	ReservationCompleted        = "completed"
	ReservationNoShow           = "no_show"
	ReservationRefunded         = "refunded"
)

// reservationTransitions enumerates valid status moves.
var reservationTransitions = map[string][]string{
	ReservationPending:   {ReservationConfirmed, ReservationCancelledByGuest, ReservationCancelledByHost},
	ReservationConfirmed: {ReservationPaid, ReservationCancelledByGuest, ReservationCancelledByHost},
	ReservationPaid:      {ReservationCompleted, ReservationNoShow, ReservationCancelledByGuest, ReservationCancelledByHost, ReservationRefunded},
	ReservationNoShow:    {ReservationRefunded},
}

// CanTransitionReservation reports whether a reservation status move is allowed.
func CanTransitionReservation(from, to string) bool {
	for _, next := range reservationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	GuestID uint `gorm:"index;column:guest_id" json:"guest_id"`
	Guest   User `gorm:"foreignKey:GuestID" json:"guest,omitempty"`

	ReservationableID   uint   `gorm:"index:idx_reservationable" json:"reservationable_id"`
	ReservationableType string `gorm:"size:32;index:idx_reservationable" json:"reservationable_type"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`

	CheckIn  time.Time `gorm:"column:check_in;index" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out;index" json:"check_out"`

	NumberOfGuests int `gorm:"column:number_of_guests;default:1" json:"number_of_guests"`

	// Total price in minor currency units.
	TotalPrice int64  `gorm:"column:total_price" json:"total_price"`
	Currency   string `gorm:"size:3;default:'USD'" json:"currency"`

	Status string `gorm:"size:32;index;default:'pending'" json:"status"`

	Review *Review `gorm:"foreignKey:ReservationID" json:"review,omitempty"`
}

// Nights returns the stay length in whole nights.
func (r *Reservation) Nights() int {
	n := int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// IsCompleted reports whether the stay finished normally, which is the
// precondition for reviewing.
func (r *Reservation) IsCompleted() bool {
	return r.Status == ReservationCompleted
}
