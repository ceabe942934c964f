package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleGuest = "guest"
	RoleHost  = "host"
	RoleAdmin = "admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FullName string `gorm:"size:255" json:"full_name"`
	Email    string `gorm:"size:255;uniqueIndex" json:"email"`
	Password string `gorm:"size:255" json:"-"`
	Role     string `gorm:"size:32;default:'guest'" json:"role"`

	Phone    string `gorm:"size:64" json:"phone,omitempty"`
	PhotoURL string `gorm:"size:512" json:"photo_url,omitempty"`

	// Host profile fields, empty for plain guests.
	Bio        string `gorm:"type:text" json:"bio,omitempty"`
	IsVerified bool   `gorm:"default:false" json:"is_verified"`
	Licenses   string `gorm:"type:text" json:"licenses,omitempty"`
}

func (u *User) IsHost() bool {
	return u.Role == RoleHost || u.Role == RoleAdmin
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
