package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err  string
		want int
	}{
		{"listing_not_found", http.StatusNotFound},
		{"review_not_found", http.StatusNotFound},
		{"not_listing_owner", http.StatusForbidden},
		{"admin_required", http.StatusForbidden},
		{"cannot_book_own_listing", http.StatusForbidden},
		{"invalid_subtype", http.StatusBadRequest},
		{"below_min_stay", http.StatusBadRequest},
		{"above_max_stay", http.StatusBadRequest},
		{"too_many_guests", http.StatusBadRequest},
		{"unsupported_entity_type", http.StatusBadRequest},
		{"dates_conflict", http.StatusConflict},
		{"dates_unavailable", http.StatusConflict},
		{"review_already_exists", http.StatusConflict},
		{"email_taken", http.StatusConflict},
		{"slot_full", http.StatusConflict},
		{"something broke", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusForError(errors.New(tc.err)), tc.err)
	}
}

// Eligibility denials carry the reason after the sentinel and still map
// to 422, not 403.
func TestStatusForError_NotEligible(t *testing.T) {
	err := fmt.Errorf("not_eligible: %s", "no eligible completed reservation")
	assert.Equal(t, http.StatusUnprocessableEntity, statusForError(err))
}

func TestParseDate(t *testing.T) {
	d, ok := parseDate("2025-03-01")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), d)

	d, ok = parseDate(" 2025-03-01 ")
	assert.True(t, ok)
	assert.Equal(t, 2025, d.Year())

	_, ok = parseDate("2025-03-01T15:04:05Z")
	assert.True(t, ok)

	_, ok = parseDate("03/01/2025")
	assert.False(t, ok)

	_, ok = parseDate("")
	assert.False(t, ok)
}
