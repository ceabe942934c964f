package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Vladyslav2123/triply-sub001/middleware"
	"github.com/Vladyslav2123/triply-sub001/models"
	"github.com/Vladyslav2123/triply-sub001/services"
	"github.com/Vladyslav2123/triply-sub001/utils"

	"github.com/gin-gonic/gin"
)

type ListingController struct {
	ListingSvc *services.ListingService
	CacheSvc   *services.CacheService
}

func NewListingController(svc *services.ListingService, cacheSvc *services.CacheService) *ListingController {
	return &ListingController{ListingSvc: svc, CacheSvc: cacheSvc}
}

const listingCacheTTL = 5 * time.Minute

// Search (GET /api/listings)
//
// All filter fields arrive as query params and are validated here;
// the filter engine itself assumes well-formed input.
func (lc *ListingController) Search(c *gin.Context) {
	filter, err := buildListingFilter(c)
	if err != nil {
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

	opts := services.SearchOptions{
		WithLiveAvg: c.Query("with_avg") == "true",
	}
	if viewer := middleware.CurrentUser(c); viewer != nil && viewer.IsAdmin() {
		opts.IncludeUnpublished = c.Query("include_unpublished") == "true"
	}

	result, err := lc.ListingSvc.Search(*filter, c.Query("sort"), page, opts)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Database error")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

// GetByID (GET /api/listings/:id)
//
// Anonymous reads are served from the cached read-model when present;
// review writes invalidate it via StaleEntity events.
func (lc *ListingController) GetByID(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid listing id")
		return
	}

	viewer := middleware.CurrentUser(c)
	cacheEntry := services.StaleEntity{EntityType: models.ReservationableListing, EntityID: id}

	if viewer == nil {
		if cached, err := lc.CacheSvc.GetJSON(c.Request.Context(), cacheEntry); err == nil && cached != "" {
			_ = lc.ListingSvc.IncrementViews(id)
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	listing, err := lc.ListingSvc.GetByID(id, viewer)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}

	// Popularity counter feeds the popularity sort; best-effort.
	_ = lc.ListingSvc.IncrementViews(id)

	if viewer == nil && listing.IsPublished() {
		if payload, err := json.Marshal(gin.H{"success": true, "data": listing}); err == nil {
			_ = lc.CacheSvc.SetJSON(c.Request.Context(), cacheEntry, string(payload), listingCacheTTL)
		}
	}

	utils.JSONSuccess(c, http.StatusOK, listing)
}

// Create (POST /api/listings)
func (lc *ListingController) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !user.IsHost() {
		utils.JSONError(c, http.StatusForbidden, "host account required")
		return
	}

	var listing models.Listing
	if err := c.ShouldBindJSON(&listing); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	listing.ID = 0
	listing.HostID = user.ID
	listing.Rating = 0
	listing.ReviewsCount = 0
	listing.ViewsCount = 0

	if err := lc.ListingSvc.Create(&listing); err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, listing)
}

// Update (PATCH /api/listings/:id)
func (lc *ListingController) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid listing id")
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	listing, err := lc.ListingSvc.Update(id, middleware.CurrentUser(c), updates)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, listing)
}

// Delete (DELETE /api/listings/:id)
func (lc *ListingController) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid listing id")
		return
	}
	if err := lc.ListingSvc.Delete(id, middleware.CurrentUser(c)); err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

type statusPayload struct {
	Status string `json:"status" binding:"required"`
}

// TransitionStatus (POST /api/listings/:id/status)
func (lc *ListingController) TransitionStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid listing id")
		return
	}
	var payload statusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	listing, err := lc.ListingSvc.TransitionStatus(id, middleware.CurrentUser(c), payload.Status)
	if err != nil {
		utils.JSONError(c, statusForError(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, listing)
}

// ---------------------------------------------------------------
// Filter parsing
// ---------------------------------------------------------------

func buildListingFilter(c *gin.Context) (*services.ListingFilter, error) {
	f := &services.ListingFilter{
		Search:  strings.TrimSpace(c.Query("search")),
		Type:    c.Query("type"),
		Subtype: c.Query("subtype"),
	}

	if f.Type != "" && !models.ValidSubtype(f.Type, f.Subtype) {
		return nil, fmt.Errorf("unknown subtype %q for type %q", f.Subtype, f.Type)
	}

	var err error
	if f.PriceMin, err = queryInt64(c, "price_min"); err != nil {
		return nil, err
	}
	if f.PriceMax, err = queryInt64(c, "price_max"); err != nil {
		return nil, err
	}
	if f.MinRating, err = queryFloat(c, "min_rating"); err != nil {
		return nil, err
	}
	if f.Guests, err = queryInt(c, "guests"); err != nil {
		return nil, err
	}
	if f.PropertySizeMin, err = queryFloat(c, "property_size_min"); err != nil {
		return nil, err
	}
	if f.PropertySizeMax, err = queryFloat(c, "property_size_max"); err != nil {
		return nil, err
	}
	if f.YearBuiltMin, err = queryInt(c, "year_built_min"); err != nil {
		return nil, err
	}
	if f.YearBuiltMax, err = queryInt(c, "year_built_max"); err != nil {
		return nil, err
	}

	if raw := c.Query("amenities"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				f.Amenities = append(f.Amenities, tag)
			}
		}
	}

	if raw := c.Query("accessibility"); raw != "" {
		af, err := parseAccessibility(raw)
		if err != nil {
			return nil, err
		}
		f.Accessibility = af
	}
	if raw := c.Query("guest_safety"); raw != "" {
		gs, err := parseGuestSafety(raw)
		if err != nil {
			return nil, err
		}
		f.Safety = gs
	}

	loc := services.LocationFilter{
		Country:    c.Query("country"),
		City:       c.Query("city"),
		Street:     c.Query("street"),
		State:      c.Query("state"),
		PostalCode: c.Query("postal_code"),
	}
	if loc.Lat, err = queryFloat(c, "lat"); err != nil {
		return nil, err
	}
	if loc.Lng, err = queryFloat(c, "lng"); err != nil {
		return nil, err
	}
	if loc.RadiusKm, err = queryFloat(c, "radius_km"); err != nil {
		return nil, err
	}
	if (loc.Lat != nil) != (loc.Lng != nil) || (loc.RadiusKm != nil && loc.Lat == nil) {
		return nil, fmt.Errorf("geo filter requires lat, lng and radius_km together")
	}
	if loc != (services.LocationFilter{}) {
		f.Location = &loc
	}

	ciRaw, coRaw := c.Query("check_in"), c.Query("check_out")
	if (ciRaw == "") != (coRaw == "") {
		return nil, fmt.Errorf("check_in and check_out must be given together")
	}
	if ciRaw != "" {
		ci, ok1 := parseDate(ciRaw)
		co, ok2 := parseDate(coRaw)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("invalid check_in/check_out date")
		}
		if !co.After(ci) {
			return nil, fmt.Errorf("check_out must be after check_in")
		}
		f.CheckIn = &ci
		f.CheckOut = &co
	}

	return f, nil
}

// parseAccessibility maps a comma-separated feature list onto the
// fixed flag set, rejecting unknown names.
func parseAccessibility(raw string) (*models.AccessibilityFeatures, error) {
	var af models.AccessibilityFeatures
	for _, name := range strings.Split(raw, ",") {
		switch strings.TrimSpace(name) {
		case "step_free_entrance":
			af.StepFreeEntrance = true
		case "wide_doorways":
			af.WideDoorways = true
		case "accessible_bathroom":
			af.AccessibleBathroom = true
		case "accessible_parking":
			af.AccessibleParking = true
		case "elevator_access":
			af.ElevatorAccess = true
		case "ceiling_hoist":
			af.CeilingHoist = true
		case "":
		default:
			return nil, fmt.Errorf("unknown accessibility feature %q", strings.TrimSpace(name))
		}
	}
	return &af, nil
}

func parseGuestSafety(raw string) (*models.GuestSafety, error) {
	var gs models.GuestSafety
	for _, name := range strings.Split(raw, ",") {
		switch strings.TrimSpace(name) {
		case "smoke_detector":
			gs.SmokeDetector = true
		case "carbon_monoxide_detector":
			gs.CarbonMonoxideDet = true
		case "fire_extinguisher":
			gs.FireExtinguisher = true
		case "first_aid_kit":
			gs.FirstAidKit = true
		case "security_camera":
			gs.SecurityCamera = true
		case "pool_fence":
			gs.PoolFence = true
		case "":
		default:
			return nil, fmt.Errorf("unknown guest safety feature %q", strings.TrimSpace(name))
		}
	}
	return &gs, nil
}

func queryInt64(c *gin.Context, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &v, nil
}

func queryInt(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &v, nil
}

func queryFloat(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &v, nil
}
