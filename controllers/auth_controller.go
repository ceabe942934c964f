package controllers

import (
	"net/http"
	"strings"

	"github.com/Vladyslav2123/triply-sub001/middleware"
	"github.com/Vladyslav2123/triply-sub001/services"
	"github.com/Vladyslav2123/triply-sub001/utils"

	"github.com/gin-gonic/gin"
)

type RegisterPayload struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

type LoginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	AuthSvc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{AuthSvc: svc}
}

// Register (POST /api/auth/register)
func (ac *AuthController) Register(c *gin.Context) {
	var payload RegisterPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := ac.AuthSvc.Register(
		strings.TrimSpace(payload.FullName),
		strings.ToLower(strings.TrimSpace(payload.Email)),
		payload.Password,
		payload.Role,
	)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, user)
}

// Login (POST /api/auth/login)
func (ac *AuthController) Login(c *gin.Context) {
	var payload LoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	token, user, err := ac.AuthSvc.Login(strings.ToLower(strings.TrimSpace(payload.Email)), payload.Password)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"token": token, "user": user})
}

// Me (GET /api/auth/me)
func (ac *AuthController) Me(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, middleware.CurrentUser(c))
}
