package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is one guest-to-host (or host-to-guest) message, optionally
// tied to a reservation.
type Message struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	SenderID    uint `gorm:"index;column:sender_id" json:"sender_id"`
	RecipientID uint `gorm:"index;column:recipient_id" json:"recipient_id"`

	Sender    User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`

	ReservationID *uint        `gorm:"index" json:"reservation_id,omitempty"`
	Reservation   *Reservation `gorm:"foreignKey:ReservationID" json:"-"`

	Body   string     `gorm:"type:text" json:"body"`
	ReadAt *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`
}
