package models

import (
	"time"

	"gorm.io/gorm"
)

type Experience struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	HostID uint `gorm:"index;column:host_id" json:"host_id"`
	Host   User `gorm:"foreignKey:HostID" json:"host,omitempty"`

	Title       string `gorm:"size:255" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:64;index" json:"category"`

	DurationMinutes int    `gorm:"column:duration_minutes" json:"duration_minutes"`
	StartTime       string `gorm:"size:8" json:"start_time"` // "HH:MM", local to the venue

	MinGroupSize int `gorm:"column:min_group_size;default:1" json:"min_group_size"`
	MaxGroupSize int `gorm:"column:max_group_size" json:"max_group_size"`

	// Per-person and whole-group rates, minor currency units.
	PricePerPerson    int64  `gorm:"column:price_per_person" json:"price_per_person"`
	PrivateGroupPrice int64  `gorm:"column:private_group_price" json:"private_group_price"`
	Currency          string `gorm:"size:3;default:'USD'" json:"currency"`

	CancellationPolicy string `gorm:"size:32;default:'flexible'" json:"cancellation_policy"`

	Location Location `gorm:"embedded;embeddedPrefix:loc_" json:"location"`

	Status string `gorm:"size:32;index;default:'draft'" json:"status"`

	Rating       float64 `gorm:"column:rating;default:0" json:"rating"`
	ReviewsCount int     `gorm:"column:reviews_count;default:0" json:"reviews_count"`
	ViewsCount   int64   `gorm:"column:views_count;default:0" json:"views_count"`

	Reservations []Reservation `gorm:"polymorphic:Reservationable" json:"-"`
}

func (e *Experience) IsPublished() bool {
	return e.Status == StatusPublished
}
