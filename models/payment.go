package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentSucceeded = "succeeded"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Payment records one charge (or refund) against a reservation. The
// idempotency key makes retried submissions collapse into one row.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReservationID uint        `gorm:"index" json:"reservation_id"`
	Reservation   Reservation `gorm:"foreignKey:ReservationID" json:"-"`

	PayerID uint `gorm:"index;column:payer_id" json:"payer_id"`

	// Amount in minor currency units.
	Amount   int64  `gorm:"column:amount" json:"amount"`
	Currency string `gorm:"size:3;default:'USD'" json:"currency"`

	Method string `gorm:"size:32" json:"method"`
	Status string `gorm:"size:32;index;default:'pending'" json:"status"`

	IdempotencyKey string `gorm:"size:64;uniqueIndex" json:"idempotency_key"`
}
