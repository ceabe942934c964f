package models

import "time"

// Favoriteable target kinds.
const (
	FavoriteableListing    = "listing"
	FavoriteableExperience = "experience"
)

// Favorite marks a listing or experience as saved by a user. One row
// per (user, target).
type Favorite struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index:idx_fav_user_target,unique" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	FavoriteableID   uint   `gorm:"index:idx_fav_user_target,unique" json:"favoriteable_id"`
	FavoriteableType string `gorm:"size:32;index:idx_fav_user_target,unique" json:"favoriteable_type"`

	CreatedAt time.Time `json:"created_at"`
}
