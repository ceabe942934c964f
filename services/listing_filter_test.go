package services

import (
	"testing"
	"time"

	"github.com/Vladyslav2123/triply-sub001/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func ptrInt64(v int64) *int64     { return &v }
func ptrInt(v int) *int           { return &v }
func ptrFloat(v float64) *float64 { return &v }
func ptrTime(v time.Time) *time.Time {
	return &v
}

func sampleListing() *models.Listing {
	return &models.Listing{
		ID:             1,
		Title:          "Sunny loft near the river",
		Description:    "Bright top-floor apartment with a balcony.",
		PricePerNight:  12000,
		Type:           "apartment",
		Subtype:        "loft",
		NumberOfGuests: 4,
		YearBuilt:      1998,
		PropertySize:   85,
		Rating:         4.5,
		Amenities:      datatypes.JSON(`[{"category":"essentials","tag":"wifi"},{"category":"kitchen","tag":"dishwasher"}]`),
		Accessibility:  models.AccessibilityFeatures{StepFreeEntrance: true, ElevatorAccess: true},
		Safety:         models.GuestSafety{SmokeDetector: true, FireExtinguisher: true},
		Location: models.Location{
			Country:   "Portugal",
			City:      "Lisbon",
			Street:    "Rua Augusta 12",
			Latitude:  38.7104,
			Longitude: -9.1379,
		},
	}
}

func TestFilter_EmptyMatchesEverything(t *testing.T) {
	f := &ListingFilter{}
	assert.True(t, f.Matches(sampleListing(), nil))
}

func TestFilter_PriceBounds(t *testing.T) {
	listing := sampleListing()

	f := &ListingFilter{PriceMin: ptrInt64(10000), PriceMax: ptrInt64(20000)}
	assert.True(t, f.Matches(listing, nil))

	listing.PricePerNight = 5000
	assert.False(t, f.Matches(listing, nil))

	listing.PricePerNight = 15000
	assert.True(t, f.Matches(listing, nil))

	listing.PricePerNight = 20001
	assert.False(t, f.Matches(listing, nil))

	// Bounds are inclusive on both ends.
	listing.PricePerNight = 10000
	assert.True(t, f.Matches(listing, nil))
	listing.PricePerNight = 20000
	assert.True(t, f.Matches(listing, nil))
}

func TestFilter_SearchMatchesTitleOrDescription(t *testing.T) {
	listing := sampleListing()

	assert.True(t, (&ListingFilter{Search: "LOFT"}).Matches(listing, nil))
	assert.True(t, (&ListingFilter{Search: "balcony"}).Matches(listing, nil))
	assert.False(t, (&ListingFilter{Search: "castle"}).Matches(listing, nil))
}

func TestFilter_TypeAndSubtype(t *testing.T) {
	listing := sampleListing()

	assert.True(t, (&ListingFilter{Type: "apartment"}).Matches(listing, nil))
	assert.True(t, (&ListingFilter{Type: "apartment", Subtype: "loft"}).Matches(listing, nil))
	assert.False(t, (&ListingFilter{Type: "apartment", Subtype: "studio"}).Matches(listing, nil))
	assert.False(t, (&ListingFilter{Type: "house"}).Matches(listing, nil))

	// Subtype without type imposes no constraint.
	assert.True(t, (&ListingFilter{Subtype: "studio"}).Matches(listing, nil))
}

func TestFilter_MinRatingUsesCachedColumn(t *testing.T) {
	listing := sampleListing()

	assert.True(t, (&ListingFilter{MinRating: ptrFloat(4.5)}).Matches(listing, nil))
	assert.False(t, (&ListingFilter{MinRating: ptrFloat(4.6)}).Matches(listing, nil))
}

func TestFilter_AmenitiesAllRequired(t *testing.T) {
	listing := sampleListing()

	assert.True(t, (&ListingFilter{Amenities: []string{"wifi"}}).Matches(listing, nil))
	assert.True(t, (&ListingFilter{Amenities: []string{"wifi", "dishwasher"}}).Matches(listing, nil))
	assert.False(t, (&ListingFilter{Amenities: []string{"wifi", "pool"}}).Matches(listing, nil))
}

func TestFilter_AccessibilityTrueFlagsOnly(t *testing.T) {
	listing := sampleListing()

	f := &ListingFilter{Accessibility: &models.AccessibilityFeatures{StepFreeEntrance: true}}
	assert.True(t, f.Matches(listing, nil))

	f = &ListingFilter{Accessibility: &models.AccessibilityFeatures{CeilingHoist: true}}
	assert.False(t, f.Matches(listing, nil))

	// A false flag in the filter does not require the listing flag to
	// be false.
	f = &ListingFilter{Accessibility: &models.AccessibilityFeatures{}}
	assert.True(t, f.Matches(listing, nil))
}

func TestFilter_SafetyFlags(t *testing.T) {
	listing := sampleListing()

	f := &ListingFilter{Safety: &models.GuestSafety{SmokeDetector: true, FireExtinguisher: true}}
	assert.True(t, f.Matches(listing, nil))

	f = &ListingFilter{Safety: &models.GuestSafety{PoolFence: true}}
	assert.False(t, f.Matches(listing, nil))
}

func TestFilter_LocationSubstrings(t *testing.T) {
	listing := sampleListing()

	f := &ListingFilter{Location: &LocationFilter{City: "lisbon"}}
	assert.True(t, f.Matches(listing, nil))

	f = &ListingFilter{Location: &LocationFilter{City: "Lisbon", Country: "Spain"}}
	assert.False(t, f.Matches(listing, nil))

	f = &ListingFilter{Location: &LocationFilter{Street: "augusta"}}
	assert.True(t, f.Matches(listing, nil))
}

func TestFilter_GeoRadius(t *testing.T) {
	listing := sampleListing()

	// Porto is roughly 270 km from Lisbon.
	porto := &LocationFilter{Lat: ptrFloat(41.1579), Lng: ptrFloat(-8.6291), RadiusKm: ptrFloat(300)}
	assert.True(t, (&ListingFilter{Location: porto}).Matches(listing, nil))

	porto.RadiusKm = ptrFloat(100)
	assert.False(t, (&ListingFilter{Location: porto}).Matches(listing, nil))
}

func TestFilter_DateExclusion(t *testing.T) {
	listing := sampleListing()
	reservations := []models.Reservation{{
		CheckIn:  day("2025-02-10"),
		CheckOut: day("2025-02-15"),
		Status:   models.ReservationPaid,
	}}

	f := &ListingFilter{CheckIn: ptrTime(day("2025-02-12")), CheckOut: ptrTime(day("2025-02-14"))}
	assert.False(t, f.Matches(listing, reservations))

	f = &ListingFilter{CheckIn: ptrTime(day("2025-02-16")), CheckOut: ptrTime(day("2025-02-20"))}
	assert.True(t, f.Matches(listing, reservations))
}

func TestFilter_GuestsCapacity(t *testing.T) {
	listing := sampleListing()

	assert.True(t, (&ListingFilter{Guests: ptrInt(4)}).Matches(listing, nil))
	assert.False(t, (&ListingFilter{Guests: ptrInt(5)}).Matches(listing, nil))
}

func TestFilter_PropertyBounds(t *testing.T) {
	listing := sampleListing()

	f := &ListingFilter{PropertySizeMin: ptrFloat(50), PropertySizeMax: ptrFloat(100)}
	assert.True(t, f.Matches(listing, nil))

	f = &ListingFilter{YearBuiltMin: ptrInt(2000)}
	assert.False(t, f.Matches(listing, nil))

	f = &ListingFilter{YearBuiltMin: ptrInt(1990), YearBuiltMax: ptrInt(2000)}
	assert.True(t, f.Matches(listing, nil))
}

// All present predicates must hold together; one failing clause rejects
// the listing regardless of the rest.
func TestFilter_Conjunction(t *testing.T) {
	listing := sampleListing()

	f := &ListingFilter{
		Search:    "loft",
		PriceMin:  ptrInt64(10000),
		Type:      "apartment",
		MinRating: ptrFloat(4.0),
		Amenities: []string{"wifi"},
		Guests:    ptrInt(2),
	}
	assert.True(t, f.Matches(listing, nil))

	f.Amenities = append(f.Amenities, "hot_tub")
	assert.False(t, f.Matches(listing, nil))
}

func TestFilter_MalformedAmenitiesColumn(t *testing.T) {
	listing := sampleListing()
	listing.Amenities = datatypes.JSON(`not json`)

	assert.Nil(t, listing.AmenityTags())
	assert.False(t, (&ListingFilter{Amenities: []string{"wifi"}}).Matches(listing, nil))
}
