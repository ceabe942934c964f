package services

import (
	"testing"

	"github.com/Vladyslav2123/triply-sub001/models"

	"github.com/stretchr/testify/assert"
)

func quotableListing() *models.Listing {
	return &models.Listing{
		ID:            1,
		PricePerNight: 10000,
		Currency:      "USD",
		MinStayNights: 1,
	}
}

func override(date string, available bool, price *int64) models.ListingAvailability {
	return models.ListingAvailability{
		ListingID:     1,
		Date:          day(date),
		IsAvailable:   available,
		PriceOverride: price,
	}
}

func TestQuoteListingStay_BasePrice(t *testing.T) {
	q, err := QuoteListingStay(quotableListing(), nil, day("2025-03-01"), day("2025-03-04"))

	assert.NoError(t, err)
	assert.Equal(t, 3, q.Nights)
	assert.Equal(t, int64(30000), q.Subtotal)
	assert.Equal(t, 0, q.DiscountPercent)
	assert.Equal(t, int64(30000), q.Total)
	assert.Equal(t, "USD", q.Currency)
}

func TestQuoteListingStay_InvalidRange(t *testing.T) {
	_, err := QuoteListingStay(quotableListing(), nil, day("2025-03-04"), day("2025-03-04"))
	assert.EqualError(t, err, "invalid_date_range")

	_, err = QuoteListingStay(quotableListing(), nil, day("2025-03-04"), day("2025-03-01"))
	assert.EqualError(t, err, "invalid_date_range")
}

func TestQuoteListingStay_StayBounds(t *testing.T) {
	listing := quotableListing()
	listing.MinStayNights = 3
	listing.MaxStayNights = 10

	_, err := QuoteListingStay(listing, nil, day("2025-03-01"), day("2025-03-03"))
	assert.EqualError(t, err, "below_min_stay")

	_, err = QuoteListingStay(listing, nil, day("2025-03-01"), day("2025-03-15"))
	assert.EqualError(t, err, "above_max_stay")

	_, err = QuoteListingStay(listing, nil, day("2025-03-01"), day("2025-03-04"))
	assert.NoError(t, err)
}

func TestQuoteListingStay_PriceOverrides(t *testing.T) {
	weekend := int64(15000)
	overrides := []models.ListingAvailability{
		override("2025-03-02", true, &weekend),
	}

	q, err := QuoteListingStay(quotableListing(), overrides, day("2025-03-01"), day("2025-03-04"))

	assert.NoError(t, err)
	assert.Equal(t, int64(10000+15000+10000), q.Subtotal)
}

func TestQuoteListingStay_BlockedDate(t *testing.T) {
	overrides := []models.ListingAvailability{
		override("2025-03-02", false, nil),
	}

	_, err := QuoteListingStay(quotableListing(), overrides, day("2025-03-01"), day("2025-03-04"))
	assert.EqualError(t, err, "dates_unavailable")
}

// A blocked date outside the stay window does not affect the quote.
func TestQuoteListingStay_BlockedDateOutsideWindow(t *testing.T) {
	overrides := []models.ListingAvailability{
		override("2025-03-10", false, nil),
	}

	_, err := QuoteListingStay(quotableListing(), overrides, day("2025-03-01"), day("2025-03-04"))
	assert.NoError(t, err)
}

func TestQuoteListingStay_WeeklyDiscount(t *testing.T) {
	listing := quotableListing()
	listing.WeeklyDiscount = 10

	q, err := QuoteListingStay(listing, nil, day("2025-03-01"), day("2025-03-08"))

	assert.NoError(t, err)
	assert.Equal(t, 7, q.Nights)
	assert.Equal(t, int64(70000), q.Subtotal)
	assert.Equal(t, 10, q.DiscountPercent)
	assert.Equal(t, int64(63000), q.Total)
}

func TestQuoteListingStay_MonthlyBeatsWeekly(t *testing.T) {
	listing := quotableListing()
	listing.WeeklyDiscount = 10
	listing.MonthlyDiscount = 25

	q, err := QuoteListingStay(listing, nil, day("2025-03-01"), day("2025-03-29"))

	assert.NoError(t, err)
	assert.Equal(t, 28, q.Nights)
	assert.Equal(t, 25, q.DiscountPercent)
	assert.Equal(t, int64(280000*75/100), q.Total)
}

func TestQuoteListingStay_ShortStayNoDiscount(t *testing.T) {
	listing := quotableListing()
	listing.WeeklyDiscount = 10

	q, err := QuoteListingStay(listing, nil, day("2025-03-01"), day("2025-03-05"))

	assert.NoError(t, err)
	assert.Equal(t, 0, q.DiscountPercent)
	assert.Equal(t, q.Subtotal, q.Total)
}

func TestReservationNights(t *testing.T) {
	r := models.Reservation{CheckIn: day("2025-03-01"), CheckOut: day("2025-03-05")}
	assert.Equal(t, 4, r.Nights())

	r = models.Reservation{CheckIn: day("2025-03-05"), CheckOut: day("2025-03-01")}
	assert.Equal(t, 0, r.Nights())
}

func TestCanTransitionReservation(t *testing.T) {
	assert.True(t, models.CanTransitionReservation(models.ReservationPending, models.ReservationConfirmed))
	assert.True(t, models.CanTransitionReservation(models.ReservationConfirmed, models.ReservationPaid))
	assert.True(t, models.CanTransitionReservation(models.ReservationPaid, models.ReservationCompleted))
	assert.True(t, models.CanTransitionReservation(models.ReservationPaid, models.ReservationCancelledByGuest))
	assert.True(t, models.CanTransitionReservation(models.ReservationNoShow, models.ReservationRefunded))

	assert.False(t, models.CanTransitionReservation(models.ReservationCompleted, models.ReservationPending))
	assert.False(t, models.CanTransitionReservation(models.ReservationPending, models.ReservationCompleted))
	assert.False(t, models.CanTransitionReservation(models.ReservationCancelledByGuest, models.ReservationPaid))
}
