package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is one guest's rating of one completed reservation. The
// uniqueIndex on (reservation_id, reviewer_id) makes at most one
// review per reservation and reviewer a database-level guarantee.
type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReservationID uint        `gorm:"index:idx_review_res_reviewer,unique" json:"reservation_id"`
	Reservation   Reservation `gorm:"foreignKey:ReservationID" json:"-"`

	ReviewerID uint `gorm:"index:idx_review_res_reviewer,unique;column:reviewer_id" json:"reviewer_id"`
	Reviewer   User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`

	ReviewableID   uint   `gorm:"index:idx_reviewable" json:"reviewable_id"`
	ReviewableType string `gorm:"size:32;index:idx_reviewable" json:"reviewable_type"`

	// Six sub-ratings, each 1..5.
	Cleanliness   int `gorm:"check:cleanliness >= 1 AND cleanliness <= 5" json:"cleanliness"`
	Accuracy      int `gorm:"check:accuracy >= 1 AND accuracy <= 5" json:"accuracy"`
	Checkin       int `gorm:"check:checkin >= 1 AND checkin <= 5" json:"checkin"`
	Communication int `gorm:"check:communication >= 1 AND communication <= 5" json:"communication"`
	Location      int `gorm:"check:location >= 1 AND location <= 5" json:"location"`
	Value         int `gorm:"check:value >= 1 AND value <= 5" json:"value"`

	// Rounded mean of the six sub-ratings, one decimal.
	OverallRating float64 `gorm:"column:overall_rating" json:"overall_rating"`

	Comment string `gorm:"type:text" json:"comment"`
}

// SubRatings returns the six sub-scores in canonical order.
func (r *Review) SubRatings() [6]int {
	return [6]int{r.Cleanliness, r.Accuracy, r.Checkin, r.Communication, r.Location, r.Value}
}
