package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Publication statuses shared by Listing and Experience.
const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusRejected  = "rejected"
	StatusSuspended = "suspended"
	StatusArchived  = "archived"
)

// statusTransitions enumerates the allowed publication moves.
// rejected and archived are terminal.
var statusTransitions = map[string][]string{
	StatusDraft:     {StatusPending},
	StatusPending:   {StatusPublished, StatusRejected},
	StatusPublished: {StatusSuspended, StatusArchived},
	StatusSuspended: {StatusPublished, StatusArchived},
}

// CanTransitionStatus reports whether a publication status move is allowed.
func CanTransitionStatus(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AmenityTag is one free-form amenity grouped under a category
// ("essentials", "kitchen", "outdoor", ...). Stored as a JSON column,
// matched as a flat tag regardless of category.
type AmenityTag struct {
	Category string `json:"category"`
	Tag      string `json:"tag"`
}

// AccessibilityFeatures is the fixed accessibility flag set. Unknown
// keys are rejected at the request boundary, never carried as maps.
type AccessibilityFeatures struct {
	StepFreeEntrance   bool `gorm:"default:false" json:"step_free_entrance"`
	WideDoorways       bool `gorm:"default:false" json:"wide_doorways"`
	AccessibleBathroom bool `gorm:"default:false" json:"accessible_bathroom"`
	AccessibleParking  bool `gorm:"default:false" json:"accessible_parking"`
	ElevatorAccess     bool `gorm:"default:false" json:"elevator_access"`
	CeilingHoist       bool `gorm:"default:false" json:"ceiling_hoist"`
}

// GuestSafety is the fixed guest-safety flag set.
type GuestSafety struct {
	SmokeDetector     bool `gorm:"default:false" json:"smoke_detector"`
	CarbonMonoxideDet bool `gorm:"default:false" json:"carbon_monoxide_detector"`
	FireExtinguisher  bool `gorm:"default:false" json:"fire_extinguisher"`
	FirstAidKit       bool `gorm:"default:false" json:"first_aid_kit"`
	SecurityCamera    bool `gorm:"default:false" json:"security_camera"`
	PoolFence         bool `gorm:"default:false" json:"pool_fence"`
}

// Location is the listing address plus coordinates, embedded with a
// loc_ column prefix.
type Location struct {
	Country    string  `gorm:"size:128" json:"country"`
	City       string  `gorm:"size:128" json:"city"`
	Street     string  `gorm:"size:255" json:"street"`
	State      string  `gorm:"size:128" json:"state,omitempty"`
	PostalCode string  `gorm:"size:32" json:"postal_code,omitempty"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

type Listing struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	HostID uint `gorm:"index;column:host_id" json:"host_id"`
	Host   User `gorm:"foreignKey:HostID" json:"host,omitempty"`

	Title       string `gorm:"size:255" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// Price per night in minor currency units.
	PricePerNight   int64  `gorm:"column:price_per_night" json:"price_per_night"`
	Currency        string `gorm:"size:3;default:'USD'" json:"currency"`
	WeeklyDiscount  int    `gorm:"column:weekly_discount" json:"weekly_discount"`
	MonthlyDiscount int    `gorm:"column:monthly_discount" json:"monthly_discount"`

	Type    string `gorm:"size:64;index" json:"type"`
	Subtype string `gorm:"size:64" json:"subtype"`

	NumberOfGuests int     `gorm:"column:number_of_guests;default:1" json:"number_of_guests"`
	Bedrooms       int     `json:"bedrooms"`
	Beds           int     `json:"beds"`
	Bathrooms      int     `json:"bathrooms"`
	Floors         int     `json:"floors"`
	YearBuilt      int     `gorm:"column:year_built" json:"year_built"`
	PropertySize   float64 `gorm:"column:property_size" json:"property_size"`

	InstantBook bool `gorm:"default:false" json:"instant_book"`
	PetsAllowed bool `gorm:"default:false" json:"pets_allowed"`

	MinStayNights int `gorm:"column:min_stay_nights;default:1" json:"min_stay_nights"`
	MaxStayNights int `gorm:"column:max_stay_nights" json:"max_stay_nights"`

	Amenities  datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`
	HouseRules datatypes.JSON `gorm:"column:house_rules" json:"house_rules,omitempty"`

	Accessibility AccessibilityFeatures `gorm:"embedded;embeddedPrefix:access_" json:"accessibility"`
	Safety        GuestSafety           `gorm:"embedded;embeddedPrefix:safety_" json:"guest_safety"`
	Location      Location              `gorm:"embedded;embeddedPrefix:loc_" json:"location"`

	Status string `gorm:"size:32;index;default:'draft'" json:"status"`

	// Cached aggregates, written only by the rating service.
	Rating       float64 `gorm:"column:rating;default:0" json:"rating"`
	ReviewsCount int     `gorm:"column:reviews_count;default:0" json:"reviews_count"`
	ViewsCount   int64   `gorm:"column:views_count;default:0" json:"views_count"`

	Reservations []Reservation `gorm:"polymorphic:Reservationable" json:"-"`
}

func (l *Listing) IsPublished() bool {
	return l.Status == StatusPublished
}

// AmenityTags decodes the amenities JSON column. A malformed or empty
// column decodes to nil.
func (l *Listing) AmenityTags() []AmenityTag {
	if len(l.Amenities) == 0 {
		return nil
	}
	var tags []AmenityTag
	if err := json.Unmarshal(l.Amenities, &tags); err != nil {
		return nil
	}
	return tags
}

// HasAmenity reports whether the listing carries the given flat tag,
// ignoring its category grouping.
func (l *Listing) HasAmenity(tag string) bool {
	for _, t := range l.AmenityTags() {
		if t.Tag == tag {
			return true
		}
	}
	return false
}

// ListingSubtypes is the enumerated subtype catalog per listing type.
// Subtype values are validated against it at the request boundary.
var ListingSubtypes = map[string][]string{
	"apartment": {"entire", "private_room", "shared_room", "loft", "studio"},
	"house":     {"entire", "cottage", "villa", "cabin", "bungalow", "townhouse"},
	"hotel":     {"boutique", "aparthotel", "hostel"},
	"unique":    {"treehouse", "boat", "camper", "yurt", "dome", "tiny_home"},
}

// ValidSubtype reports whether subtype belongs to the catalog of typ.
// An empty subtype is always acceptable.
func ValidSubtype(typ, subtype string) bool {
	if subtype == "" {
		return true
	}
	for _, s := range ListingSubtypes[typ] {
		if s == subtype {
			return true
		}
	}
	return false
}
