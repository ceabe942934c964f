package controllers

import (
	"net/http"

	"github.com/Vladyslav2123/triply-sub001/middleware"
	"github.com/Vladyslav2123/triply-sub001/services"
	"github.com/Vladyslav2123/triply-sub001/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

type chargePayload struct {
	ReservationID  uint   `json:"reservation_id" binding:"required"`
	Method         string `json:"method" binding:"required"`
	IdempotencyKey string `json:"idempotency_key"`
}

// Charge (POST /api/payments)
func (pc *PaymentController) Charge(c *gin.Context) {
	var payload chargePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	payment, err := pc.PaymentSvc.Charge(middleware.CurrentUser(c), payload.ReservationID, payload.Method, payload.IdempotencyKey)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}

// Refund (POST /api/payments/:id/refund)
func (pc *PaymentController) Refund(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid payment id")
		return
	}

	payment, err := pc.PaymentSvc.Refund(middleware.CurrentUser(c), id)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}

// ListForReservation (GET /api/reservations/:id/payments)
func (pc *PaymentController) ListForReservation(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid reservation id")
		return
	}

	payments, err := pc.PaymentSvc.ListForReservation(id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payments)
}
