package controllers

import (
	"net/http"

	"github.com/Vladyslav2123/triply-sub001/middleware"
	"github.com/Vladyslav2123/triply-sub001/models"
	"github.com/Vladyslav2123/triply-sub001/services"
	"github.com/Vladyslav2123/triply-sub001/utils"

	"github.com/gin-gonic/gin"
)

type FavoriteController struct {
	FavoriteSvc *services.FavoriteService
}

func NewFavoriteController(svc *services.FavoriteService) *FavoriteController {
	return &FavoriteController{FavoriteSvc: svc}
}

type togglePayload struct {
	EntityType string `json:"entity_type" binding:"required"`
	EntityID   uint   `json:"entity_id" binding:"required"`
}

// Toggle (POST /api/favorites)
func (fc *FavoriteController) Toggle(c *gin.Context) {
	var payload togglePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	favorited, err := fc.FavoriteSvc.Toggle(middleware.CurrentUser(c), payload.EntityType, payload.EntityID)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"favorited": favorited})
}

// List (GET /api/favorites)
func (fc *FavoriteController) List(c *gin.Context) {
	userID := middleware.CurrentUser(c).ID

	listings, err := fc.FavoriteSvc.ListListings(userID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}
	experiences, err := fc.FavoriteSvc.ListExperiences(userID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if listings == nil {
		listings = []models.Listing{}
	}
	if experiences == nil {
		experiences = []models.Experience{}
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"listings": listings, "experiences": experiences})
}
