package services

import (
	"strings"
	"time"

	"github.com/Vladyslav2123/triply-sub001/models"
	"github.com/Vladyslav2123/triply-sub001/utils"

	"gorm.io/gorm"
)

// LocationFilter narrows by address sub-fields (case-insensitive
// substring per present field, ANDed together) or by a geo radius
// around a point. When Lat/Lng/RadiusKm are all set the geo form wins.
type LocationFilter struct {
	Country    string `form:"country" json:"country,omitempty"`
	City       string `form:"city" json:"city,omitempty"`
	Street     string `form:"street" json:"street,omitempty"`
	State      string `form:"state" json:"state,omitempty"`
	PostalCode string `form:"postal_code" json:"postal_code,omitempty"`

	Lat      *float64 `form:"lat" json:"lat,omitempty"`
	Lng      *float64 `form:"lng" json:"lng,omitempty"`
	RadiusKm *float64 `form:"radius_km" json:"radius_km,omitempty"`
}

func (lf *LocationFilter) geo() bool {
	return lf.Lat != nil && lf.Lng != nil && lf.RadiusKm != nil
}

// ListingFilter is the conjunctive filter set for listing
// queries. Absent (nil/zero) fields impose no constraint. Values are
// validated at the request boundary; the engine assumes well-formed
// input.
type ListingFilter struct {
	Search string `json:"search,omitempty"`

	PriceMin *int64 `json:"price_min,omitempty"`
	PriceMax *int64 `json:"price_max,omitempty"`

	Type    string `json:"type,omitempty"`
	Subtype string `json:"subtype,omitempty"`

	MinRating *float64 `json:"min_rating,omitempty"`

	Location *LocationFilter `json:"location,omitempty"`

	CheckIn  *time.Time `json:"check_in,omitempty"`
	CheckOut *time.Time `json:"check_out,omitempty"`

	Guests *int `json:"guests,omitempty"`

	Amenities []string `json:"amenities,omitempty"`

	Accessibility *models.AccessibilityFeatures `json:"accessibility,omitempty"`
	Safety        *models.GuestSafety           `json:"guest_safety,omitempty"`

	PropertySizeMin *float64 `json:"property_size_min,omitempty"`
	PropertySizeMax *float64 `json:"property_size_max,omitempty"`
	YearBuiltMin    *int     `json:"year_built_min,omitempty"`
	YearBuiltMax    *int     `json:"year_built_max,omitempty"`
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Matches evaluates the filter against one listing in memory.
// reservations are the listing's reservations, used only when
// CheckIn/CheckOut are present.
func (f *ListingFilter) Matches(listing *models.Listing, reservations []models.Reservation) bool {
	if f.Search != "" &&
		!containsFold(listing.Title, f.Search) &&
		!containsFold(listing.Description, f.Search) {
		return false
	}

	if f.PriceMin != nil && listing.PricePerNight < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && listing.PricePerNight > *f.PriceMax {
		return false
	}

	if f.Type != "" {
		if listing.Type != f.Type {
			return false
		}
		if f.Subtype != "" && listing.Subtype != f.Subtype {
			return false
		}
	}

	if f.MinRating != nil && listing.Rating < *f.MinRating {
		return false
	}

	if f.Location != nil && !f.matchLocation(listing) {
		return false
	}

	if f.CheckIn != nil && f.CheckOut != nil &&
		HasDateConflict(reservations, *f.CheckIn, *f.CheckOut) {
		return false
	}

	if f.Guests != nil && listing.NumberOfGuests < *f.Guests {
		return false
	}

	for _, tag := range f.Amenities {
		if !listing.HasAmenity(tag) {
			return false
		}
	}

	if f.Accessibility != nil && !matchAccessibility(listing.Accessibility, *f.Accessibility) {
		return false
	}
	if f.Safety != nil && !matchSafety(listing.Safety, *f.Safety) {
		return false
	}

	if f.PropertySizeMin != nil && listing.PropertySize < *f.PropertySizeMin {
		return false
	}
	if f.PropertySizeMax != nil && listing.PropertySize > *f.PropertySizeMax {
		return false
	}
	if f.YearBuiltMin != nil && listing.YearBuilt < *f.YearBuiltMin {
		return false
	}
	if f.YearBuiltMax != nil && listing.YearBuilt > *f.YearBuiltMax {
		return false
	}

	return true
}

func (f *ListingFilter) matchLocation(listing *models.Listing) bool {
	lf := f.Location
	if lf.geo() {
		dist := utils.HaversineKm(*lf.Lat, *lf.Lng, listing.Location.Latitude, listing.Location.Longitude)
		return dist <= *lf.RadiusKm
	}

	if lf.Country != "" && !containsFold(listing.Location.Country, lf.Country) {
		return false
	}
	if lf.City != "" && !containsFold(listing.Location.City, lf.City) {
		return false
	}
	if lf.Street != "" && !containsFold(listing.Location.Street, lf.Street) {
		return false
	}
	if lf.State != "" && !containsFold(listing.Location.State, lf.State) {
		return false
	}
	if lf.PostalCode != "" && !containsFold(listing.Location.PostalCode, lf.PostalCode) {
		return false
	}
	return true
}

// Flags set true in the filter require the listing flag to be true;
// false flags impose no constraint.
func matchAccessibility(have, want models.AccessibilityFeatures) bool {
	if want.StepFreeEntrance && !have.StepFreeEntrance {
		return false
	}
	if want.WideDoorways && !have.WideDoorways {
		return false
	}
	if want.AccessibleBathroom && !have.AccessibleBathroom {
		return false
	}
	if want.AccessibleParking && !have.AccessibleParking {
		return false
	}
	if want.ElevatorAccess && !have.ElevatorAccess {
		return false
	}
	if want.CeilingHoist && !have.CeilingHoist {
		return false
	}
	return true
}

func matchSafety(have, want models.GuestSafety) bool {
	if want.SmokeDetector && !have.SmokeDetector {
		return false
	}
	if want.CarbonMonoxideDet && !have.CarbonMonoxideDet {
		return false
	}
	if want.FireExtinguisher && !have.FireExtinguisher {
		return false
	}
	if want.FirstAidKit && !have.FirstAidKit {
		return false
	}
	if want.SecurityCamera && !have.SecurityCamera {
		return false
	}
	if want.PoolFence && !have.PoolFence {
		return false
	}
	return true
}

// Apply composes the same predicates as Matches onto a gorm listing
// query, for the datastore path.
func (f *ListingFilter) Apply(db *gorm.DB) *gorm.DB {
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	if f.PriceMin != nil {
		db = db.Where("price_per_night >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		db = db.Where("price_per_night <= ?", *f.PriceMax)
	}

	if f.Type != "" {
		db = db.Where("type = ?", f.Type)
		if f.Subtype != "" {
			db = db.Where("subtype = ?", f.Subtype)
		}
	}

	if f.MinRating != nil {
		// Filters on the cached column; the live join exists only as a
		// consistency check in tests.
		db = db.Where("rating >= ?", *f.MinRating)
	}

	if f.Location != nil {
		db = f.applyLocation(db)
	}

	if f.CheckIn != nil && f.CheckOut != nil {
		db = db.Where(`NOT EXISTS (
			SELECT 1 FROM reservations r
			WHERE r.reservationable_type = ?
			  AND r.reservationable_id = listings.id
			  AND r.deleted_at IS NULL
			  AND r.status <> ?
			  AND NOT (r.check_out < ? OR r.check_in > ?)
		)`, models.ReservationableListing, models.ReservationCancelledByHost, *f.CheckIn, *f.CheckOut)
	}

	if f.Guests != nil {
		db = db.Where("number_of_guests >= ?", *f.Guests)
	}

	for _, tag := range f.Amenities {
		db = db.Where("JSON_SEARCH(amenities, 'one', ?, NULL, '$[*].tag') IS NOT NULL", tag)
	}

	if f.Accessibility != nil {
		db = applyFlag(db, "access_step_free_entrance", f.Accessibility.StepFreeEntrance)
		db = applyFlag(db, "access_wide_doorways", f.Accessibility.WideDoorways)
		db = applyFlag(db, "access_accessible_bathroom", f.Accessibility.AccessibleBathroom)
		db = applyFlag(db, "access_accessible_parking", f.Accessibility.AccessibleParking)
		db = applyFlag(db, "access_elevator_access", f.Accessibility.ElevatorAccess)
		db = applyFlag(db, "access_ceiling_hoist", f.Accessibility.CeilingHoist)
	}
	if f.Safety != nil {
		db = applyFlag(db, "safety_smoke_detector", f.Safety.SmokeDetector)
		db = applyFlag(db, "safety_carbon_monoxide_det", f.Safety.CarbonMonoxideDet)
		db = applyFlag(db, "safety_fire_extinguisher", f.Safety.FireExtinguisher)
		db = applyFlag(db, "safety_first_aid_kit", f.Safety.FirstAidKit)
		db = applyFlag(db, "safety_security_camera", f.Safety.SecurityCamera)
		db = applyFlag(db, "safety_pool_fence", f.Safety.PoolFence)
	}

	if f.PropertySizeMin != nil {
		db = db.Where("property_size >= ?", *f.PropertySizeMin)
	}
	if f.PropertySizeMax != nil {
		db = db.Where("property_size <= ?", *f.PropertySizeMax)
	}
	if f.YearBuiltMin != nil {
		db = db.Where("year_built >= ?", *f.YearBuiltMin)
	}
	if f.YearBuiltMax != nil {
		db = db.Where("year_built <= ?", *f.YearBuiltMax)
	}

	return db
}

func applyFlag(db *gorm.DB, column string, required bool) *gorm.DB {
	if !required {
		return db
	}
	return db.Where(column+" = ?", true)
}

func (f *ListingFilter) applyLocation(db *gorm.DB) *gorm.DB {
	lf := f.Location
	if lf.geo() {
		// Spherical distance, same formula as utils.HaversineKm.
		return db.Where(`(6371 * ACOS(
			COS(RADIANS(?)) * COS(RADIANS(loc_latitude)) *
			COS(RADIANS(loc_longitude) - RADIANS(?)) +
			SIN(RADIANS(?)) * SIN(RADIANS(loc_latitude))
		)) <= ?`, *lf.Lat, *lf.Lng, *lf.Lat, *lf.RadiusKm)
	}

	if lf.Country != "" {
		db = db.Where("LOWER(loc_country) LIKE ?", "%"+strings.ToLower(lf.Country)+"%")
	}
	if lf.City != "" {
		db = db.Where("LOWER(loc_city) LIKE ?", "%"+strings.ToLower(lf.City)+"%")
	}
	if lf.Street != "" {
		db = db.Where("LOWER(loc_street) LIKE ?", "%"+strings.ToLower(lf.Street)+"%")
	}
	if lf.State != "" {
		db = db.Where("LOWER(loc_state) LIKE ?", "%"+strings.ToLower(lf.State)+"%")
	}
	if lf.PostalCode != "" {
		db = db.Where("LOWER(loc_postal_code) LIKE ?", "%"+strings.ToLower(lf.PostalCode)+"%")
	}
	return db
}
