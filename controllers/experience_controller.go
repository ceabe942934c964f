package controllers

import (
	"net/http"
	"strconv"

	"github.com/Vladyslav2123/triply-sub001/middleware"
	"github.com/Vladyslav2123/triply-sub001/models"
	"github.com/Vladyslav2123/triply-sub001/services"
	"github.com/Vladyslav2123/triply-sub001/utils"

	"github.com/gin-gonic/gin"
)

type ExperienceController struct {
	ExperienceSvc *services.ExperienceService
}

func NewExperienceController(svc *services.ExperienceService) *ExperienceController {
	return &ExperienceController{ExperienceSvc: svc}
}

// Search (GET /api/experiences)
func (ec *ExperienceController) Search(c *gin.Context) {
	filter := services.ExperienceFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		City:     c.Query("city"),
		Country:  c.Query("country"),
	}

	var err error
	if filter.PriceMin, err = queryInt64(c, "price_min"); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if filter.PriceMax, err = queryInt64(c, "price_max"); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if filter.MinRating, err = queryFloat(c, "min_rating"); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if filter.GroupSize, err = queryInt(c, "group_size"); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	page := services.PageParams{}
	if v, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		page.Page = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("per_page", "0")); err == nil {
		page.PerPage = v
	}

	result, err := ec.ExperienceSvc.Search(filter, c.Query("sort"), page)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

// GetByID (GET /api/experiences/:id)
func (ec *ExperienceController) GetByID(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid experience id")
		return
	}
	experience, err := ec.ExperienceSvc.GetByID(id, middleware.CurrentUser(c))
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	_ = ec.ExperienceSvc.IncrementViews(id)
	utils.JSONSuccess(c, http.StatusOK, experience)
}

// Create (POST /api/experiences)
func (ec *ExperienceController) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !user.IsHost() {
		utils.JSONError(c, http.StatusForbidden, "host account required")
		return
	}

	var experience models.Experience
	if err := c.ShouldBindJSON(&experience); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	experience.ID = 0
	experience.HostID = user.ID
	experience.Rating = 0
	experience.ReviewsCount = 0
	experience.ViewsCount = 0

	if err := ec.ExperienceSvc.Create(&experience); err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, experience)
}

// Update (PATCH /api/experiences/:id)
func (ec *ExperienceController) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid experience id")
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	experience, err := ec.ExperienceSvc.Update(id, middleware.CurrentUser(c), updates)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, experience)
}

// Delete (DELETE /api/experiences/:id)
func (ec *ExperienceController) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid experience id")
		return
	}
	if err := ec.ExperienceSvc.Delete(id, middleware.CurrentUser(c)); err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

// TransitionStatus (POST /api/experiences/:id/status)
func (ec *ExperienceController) TransitionStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid experience id")
		return
	}
	var payload statusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	experience, err := ec.ExperienceSvc.TransitionStatus(id, middleware.CurrentUser(c), payload.Status)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, experience)
}
