package models

import "time"

// ListingAvailability is a per-date override row for a listing:
// blocked dates and nightly price overrides. Unique per (listing, date).
type ListingAvailability struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ListingID uint    `gorm:"not null;index:idx_listing_date,unique" json:"listing_id"`
	Listing   Listing `gorm:"foreignKey:ListingID" json:"-"`

	Date        time.Time `gorm:"type:date;index:idx_listing_date,unique" json:"date"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`

	// Optional nightly price override, minor units. Nil means base price.
	PriceOverride *int64 `gorm:"column:price_override" json:"price_override,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExperienceAvailability is the per-datetime counterpart for
// experiences, with a remaining-capacity count.
type ExperienceAvailability struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ExperienceID uint       `gorm:"not null;index:idx_exp_date,unique" json:"experience_id"`
	Experience   Experience `gorm:"foreignKey:ExperienceID" json:"-"`

	Date        time.Time `gorm:"index:idx_exp_date,unique" json:"date"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`

	PriceOverride     *int64 `gorm:"column:price_override" json:"price_override,omitempty"`
	RemainingCapacity *int   `gorm:"column:remaining_capacity" json:"remaining_capacity,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
