package controllers

import (
	"net/http"
	"time"

	"github.com/Vladyslav2123/triply-sub001/middleware"
	"github.com/Vladyslav2123/triply-sub001/services"
	"github.com/Vladyslav2123/triply-sub001/utils"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	AvailabilitySvc *services.AvailabilityService
}

func NewAvailabilityController(svc *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{AvailabilitySvc: svc}
}

type upsertDatesPayload struct {
	Dates []services.DateOverride `json:"dates" binding:"required,dive"`
}

func dateRangeQuery(c *gin.Context) (time.Time, time.Time, bool) {
	from, ok1 := parseDate(c.DefaultQuery("from", time.Now().UTC().Format("2006-01-02")))
	to, ok2 := parseDate(c.DefaultQuery("to", time.Now().UTC().AddDate(0, 3, 0).Format("2006-01-02")))
	if !ok1 || !ok2 || !to.After(from) {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// ListListingDates (GET /api/listings/:id/availability)
func (ac *AvailabilityController) ListListingDates(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid listing id")
		return
	}
	from, to, ok := dateRangeQuery(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid from/to range")
		return
	}

	rows, err := ac.AvailabilitySvc.ListListingDates(id, from, to)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}

// UpsertListingDates (PUT /api/listings/:id/availability)
func (ac *AvailabilityController) UpsertListingDates(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid listing id")
		return
	}
	var payload upsertDatesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := ac.AvailabilitySvc.UpsertListingDates(id, middleware.CurrentUser(c), payload.Dates); err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"updated": len(payload.Dates)})
}

// ListExperienceDates (GET /api/experiences/:id/availability)
func (ac *AvailabilityController) ListExperienceDates(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid experience id")
		return
	}
	from, to, ok := dateRangeQuery(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid from/to range")
		return
	}

	rows, err := ac.AvailabilitySvc.ListExperienceDates(id, from, to)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}

// UpsertExperienceDates (PUT /api/experiences/:id/availability)
func (ac *AvailabilityController) UpsertExperienceDates(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid experience id")
		return
	}
	var payload upsertDatesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := ac.AvailabilitySvc.UpsertExperienceDates(id, middleware.CurrentUser(c), payload.Dates); err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"updated": len(payload.Dates)})
}
