package controllers

import (
	"net/http"
	"strings"

	"github.com/Vladyslav2123/triply-sub001/middleware"
	"github.com/Vladyslav2123/triply-sub001/services"
	"github.com/Vladyslav2123/triply-sub001/utils"

	"github.com/gin-gonic/gin"
)

type MessageController struct {
	MessageSvc *services.MessageService
}

func NewMessageController(svc *services.MessageService) *MessageController {
	return &MessageController{MessageSvc: svc}
}

type sendMessagePayload struct {
	RecipientID   uint   `json:"recipient_id" binding:"required"`
	Body          string `json:"body" binding:"required"`
	ReservationID *uint  `json:"reservation_id,omitempty"`
}

// Send (POST /api/messages)
func (mc *MessageController) Send(c *gin.Context) {
	var payload sendMessagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if strings.TrimSpace(payload.Body) == "" {
		utils.JSONError(c, http.StatusBadRequest, "message body required")
		return
	}

	message, err := mc.MessageSvc.Send(middleware.CurrentUser(c), payload.RecipientID, payload.Body, payload.ReservationID)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, message)
}

// Inbox (GET /api/messages)
func (mc *MessageController) Inbox(c *gin.Context) {
	messages, err := mc.MessageSvc.Inbox(middleware.CurrentUser(c).ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, messages)
}

// Conversation (GET /api/messages/:userId) also marks the thread read.
func (mc *MessageController) Conversation(c *gin.Context) {
	otherID, ok := parseUintParam(c, "userId")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	me := middleware.CurrentUser(c)

	messages, err := mc.MessageSvc.Conversation(me.ID, otherID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}
	_ = mc.MessageSvc.MarkRead(me.ID, otherID)

	utils.JSONSuccess(c, http.StatusOK, messages)
}
