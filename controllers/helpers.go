package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// parseUintParam reads a numeric path param; 0 means invalid.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

// parseDate accepts "2006-01-02" or RFC3339.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// statusForError maps service sentinel errors onto HTTP statuses. The
// sentinels are lowercase snake strings per the service layer's
// convention.
func statusForError(err error) int {
	msg := err.Error()
	switch {
	case strings.HasSuffix(msg, "_not_found"):
		return http.StatusNotFound
	case strings.HasPrefix(msg, "not_eligible"):
		return http.StatusUnprocessableEntity
	case strings.HasPrefix(msg, "not_") || strings.HasSuffix(msg, "_required") ||
		strings.HasPrefix(msg, "cannot_"):
		return http.StatusForbidden
	case strings.HasPrefix(msg, "invalid_") || strings.HasPrefix(msg, "below_") ||
		strings.HasPrefix(msg, "above_") || msg == "too_many_guests" ||
		msg == "unsupported_entity_type":
		return http.StatusBadRequest
	case msg == "dates_conflict" || msg == "dates_unavailable" ||
		msg == "slot_full" || msg == "slot_unavailable" ||
		msg == "review_already_exists" || msg == "email_taken":
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
