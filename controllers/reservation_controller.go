package controllers

import (
	"net/http"

	"github.com/Vladyslav2123/triply-sub001/middleware"
	"github.com/Vladyslav2123/triply-sub001/services"
	"github.com/Vladyslav2123/triply-sub001/utils"

	"github.com/gin-gonic/gin"
)

type CreateReservationPayload struct {
	ListingID    uint   `json:"listing_id"`
	ExperienceID uint   `json:"experience_id"`
	CheckIn      string `json:"check_in" binding:"required"`
	CheckOut     string `json:"check_out"`
	Guests       int    `json:"guests"`
	PrivateGroup bool   `json:"private_group"`
}

type ReservationController struct {
	ReservationSvc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{ReservationSvc: svc}
}

// Create (POST /api/reservations) books a listing stay or an
// experience slot depending on which id the payload carries.
func (rc *ReservationController) Create(c *gin.Context) {
	var payload CreateReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if (payload.ListingID == 0) == (payload.ExperienceID == 0) {
		utils.JSONError(c, http.StatusBadRequest, "exactly one of listing_id or experience_id is required")
		return
	}

	guest := middleware.CurrentUser(c)

	if payload.ListingID != 0 {
		checkIn, ok1 := parseDate(payload.CheckIn)
		checkOut, ok2 := parseDate(payload.CheckOut)
		if !ok1 || !ok2 || !checkOut.After(checkIn) {
			utils.JSONError(c, http.StatusBadRequest, "invalid check_in/check_out")
			return
		}
		reservation, err := rc.ReservationSvc.CreateListingReservation(guest, payload.ListingID, checkIn, checkOut, payload.Guests)
		if err != nil {
			utils.JSONError(c, statusForError(err), err.Error())
			return
		}
		utils.JSONSuccess(c, http.StatusCreated, reservation)
		return
	}

	date, ok := parseDate(payload.CheckIn)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid date")
		return
	}
	reservation, err := rc.ReservationSvc.CreateExperienceReservation(guest, payload.ExperienceID, date, payload.Guests, payload.PrivateGroup)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

// ListMine (GET /api/reservations)
func (rc *ReservationController) ListMine(c *gin.Context) {
	reservations, err := rc.ReservationSvc.ListForGuest(middleware.CurrentUser(c).ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservations)
}

// GetByID (GET /api/reservations/:id)
func (rc *ReservationController) GetByID(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid reservation id")
		return
	}
	reservation, err := rc.ReservationSvc.GetByID(id, middleware.CurrentUser(c))
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// UpdateStatus (POST /api/reservations/:id/status)
func (rc *ReservationController) UpdateStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid reservation id")
		return
	}
	var payload statusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	reservation, err := rc.ReservationSvc.UpdateStatus(id, middleware.CurrentUser(c), payload.Status)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// ListForListing (GET /api/listings/:id/reservations) for the host.
func (rc *ReservationController) ListForListing(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid listing id")
		return
	}
	reservations, err := rc.ReservationSvc.ListForListing(id, middleware.CurrentUser(c))
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservations)
}
