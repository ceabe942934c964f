package controllers

import (
	"net/http"

	"github.com/Vladyslav2123/triply-sub001/middleware"
	"github.com/Vladyslav2123/triply-sub001/services"
	"github.com/Vladyslav2123/triply-sub001/utils"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	ReviewSvc *services.ReviewService
	RatingSvc *services.RatingService
	CacheSvc  *services.CacheService
}

func NewReviewController(reviewSvc *services.ReviewService, ratingSvc *services.RatingService, cacheSvc *services.CacheService) *ReviewController {
	return &ReviewController{ReviewSvc: reviewSvc, RatingSvc: ratingSvc, CacheSvc: cacheSvc}
}

// ListForEntity (GET /api/{listings,experiences}/:id/reviews)
func (rc *ReviewController) ListForEntity(entityType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUintParam(c, "id")
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "invalid entity id")
			return
		}

		reviews, err := rc.ReviewSvc.ListForEntity(entityType, id)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Database error")
			return
		}
		utils.JSONSuccess(c, http.StatusOK, reviews)
	}
}

// Eligibility (GET /api/{listings,experiences}/:id/reviews/eligibility)
//
// A deny is a normal 200 response carrying the decision, not an error.
func (rc *ReviewController) Eligibility(entityType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUintParam(c, "id")
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "invalid entity id")
			return
		}

		decision, err := rc.ReviewSvc.CheckEligibility(middleware.CurrentUser(c), entityType, id)
		if err != nil {
			utils.JSONError(c, statusForError(err), err.Error())
			return
		}
		utils.JSONSuccess(c, http.StatusOK, decision)
	}
}

// Create (POST /api/{listings,experiences}/:id/reviews)
func (rc *ReviewController) Create(entityType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUintParam(c, "id")
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "invalid entity id")
			return
		}

		var input services.ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
			return
		}

		review, stale, err := rc.ReviewSvc.Create(middleware.CurrentUser(c), entityType, id, input)
		if err != nil {
			utils.JSONError(c, statusForError(err), err.Error())
			return
		}
		rc.CacheSvc.Invalidate(c.Request.Context(), stale)

		utils.JSONSuccess(c, http.StatusCreated, review)
	}
}

// RecomputeRating (POST /api/{listings,experiences}/:id/rating/recompute)
//
// Admin-only reconciliation of the cached aggregate, for when a manual
// data fix bypassed the review write path.
func (rc *ReviewController) RecomputeRating(entityType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := middleware.CurrentUser(c); user == nil || !user.IsAdmin() {
			utils.JSONError(c, http.StatusForbidden, "admin_required")
			return
		}
		id, ok := parseUintParam(c, "id")
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "invalid entity id")
			return
		}

		agg, err := rc.RatingSvc.RefreshEntityRating(entityType, id)
		if err != nil {
			utils.JSONError(c, statusForError(err), err.Error())
			return
		}
		rc.CacheSvc.Invalidate(c.Request.Context(), &services.StaleEntity{EntityType: entityType, EntityID: id})

		utils.JSONSuccess(c, http.StatusOK, agg)
	}
}

// Update (PUT /api/reviews/:id)
func (rc *ReviewController) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid review id")
		return
	}

	var input services.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	review, stale, err := rc.ReviewSvc.Update(middleware.CurrentUser(c), id, input)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	rc.CacheSvc.Invalidate(c.Request.Context(), stale)

	utils.JSONSuccess(c, http.StatusOK, review)
}

// Delete (DELETE /api/reviews/:id)
func (rc *ReviewController) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid review id")
		return
	}

	stale, err := rc.ReviewSvc.Delete(middleware.CurrentUser(c), id)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	rc.CacheSvc.Invalidate(c.Request.Context(), stale)

	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
