package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Vladyslav2123/triply-sub001/models"

	"gorm.io/gorm"
)

// Enumerated sort keys for listing queries. Anything else falls back
// to SortCreatedAtDesc.
const (
	SortPriceAsc         = "price_asc"
	SortPriceDesc        = "price_desc"
	SortRatingAsc        = "rating_asc"
	SortRatingDesc       = "rating_desc"
	SortCreatedAtAsc     = "created_at_asc"
	SortCreatedAtDesc    = "created_at_desc"
	SortTitleAsc         = "title_asc"
	SortTitleDesc        = "title_desc"
	SortReviewsCountAsc  = "reviews_count_asc"
	SortReviewsCountDesc = "reviews_count_desc"
	SortPopularity       = "popularity"
)

var sortClauses = map[string]string{
	SortPriceAsc:         "price_per_night ASC",
	SortPriceDesc:        "price_per_night DESC",
	SortRatingAsc:        "rating ASC",
	SortRatingDesc:       "rating DESC",
	SortCreatedAtAsc:     "created_at ASC",
	SortCreatedAtDesc:    "created_at DESC",
	SortTitleAsc:         "title ASC",
	SortTitleDesc:        "title DESC",
	SortReviewsCountAsc:  "reviews_count ASC",
	SortReviewsCountDesc: "reviews_count DESC",
	SortPopularity:       "views_count DESC",
}

// OrderClause maps a sort key to its SQL order expression.
func OrderClause(sortKey string) string {
	if clause, ok := sortClauses[sortKey]; ok {
		return clause
	}
	return sortClauses[SortCreatedAtDesc]
}

// ListingSummary is one search result: the listing plus an optional
// live-computed average, kept distinct from the cached rating column.
type ListingSummary struct {
	models.Listing
	AvgRating *float64 `json:"avg_rating,omitempty"`
}

// SearchOptions tweak visibility and annotation of a search.
type SearchOptions struct {
	// IncludeUnpublished shows drafts etc.; only for owner/admin scopes.
	IncludeUnpublished bool
	// WithLiveAvg annotates each item with the live-joined average.
	WithLiveAvg bool
}

// ListingService composes filter, date-conflict exclusion, rating
// threshold, sort, and pagination into listing queries, and owns
// listing CRUD.
type ListingService struct {
	DB *gorm.DB
}

func NewListingService(db *gorm.DB) *ListingService {
	return &ListingService{DB: db}
}

// Search runs the composed listing query: filter scopes, then sort,
// then pagination. minRating filters on the cached rating column.
func (s *ListingService) Search(filter ListingFilter, sortKey string, page PageParams, opts SearchOptions) (Page[ListingSummary], error) {
	page = page.Normalize()

	q := s.DB.Model(&models.Listing{})
	if !opts.IncludeUnpublished {
		q = q.Where("status = ?", models.StatusPublished)
	}
	q = filter.Apply(q)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page[ListingSummary]{}, fmt.Errorf("failed to count listings: %w", err)
	}

	var listings []models.Listing
	if err := q.
		Order(OrderClause(sortKey)).
		Offset(page.offset()).
		Limit(page.PerPage).
		Find(&listings).Error; err != nil {
		return Page[ListingSummary]{}, fmt.Errorf("failed to query listings: %w", err)
	}

	items := make([]ListingSummary, 0, len(listings))
	for _, l := range listings {
		items = append(items, ListingSummary{Listing: l})
	}

	if opts.WithLiveAvg && len(items) > 0 {
		if err := s.annotateLiveAvg(items); err != nil {
			return Page[ListingSummary]{}, err
		}
	}

	return NewPage(items, total, page), nil
}

type avgRow struct {
	ReviewableID uint
	Avg          float64
}

func (s *ListingService) annotateLiveAvg(items []ListingSummary) error {
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	var rows []avgRow
	if err := s.DB.Model(&models.Review{}).
		Select("reviewable_id, AVG(overall_rating) AS avg").
		Where("reviewable_type = ? AND reviewable_id IN ?", models.ReservationableListing, ids).
		Group("reviewable_id").
		Scan(&rows).Error; err != nil {
		return fmt.Errorf("failed to compute live averages: %w", err)
	}

	byID := make(map[uint]float64, len(rows))
	for _, r := range rows {
		byID[r.ReviewableID] = RoundHalfUp1(r.Avg)
	}
	for i := range items {
		if avg, ok := byID[items[i].ID]; ok {
			a := avg
			items[i].AvgRating = &a
		}
	}
	return nil
}

// SortListings orders listings in memory by the same enumerated sort
// keys the SQL path uses. The sort is stable.
func SortListings(listings []models.Listing, sortKey string) {
	less := lessFunc(sortKey)
	sort.SliceStable(listings, func(i, j int) bool {
		return less(&listings[i], &listings[j])
	})
}

func lessFunc(sortKey string) func(a, b *models.Listing) bool {
	switch sortKey {
	case SortPriceAsc:
		return func(a, b *models.Listing) bool { return a.PricePerNight < b.PricePerNight }
	case SortPriceDesc:
		return func(a, b *models.Listing) bool { return a.PricePerNight > b.PricePerNight }
	case SortRatingAsc:
		return func(a, b *models.Listing) bool { return a.Rating < b.Rating }
	case SortRatingDesc:
		return func(a, b *models.Listing) bool { return a.Rating > b.Rating }
	case SortCreatedAtAsc:
		return func(a, b *models.Listing) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortTitleAsc:
		return func(a, b *models.Listing) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case SortTitleDesc:
		return func(a, b *models.Listing) bool { return strings.ToLower(a.Title) > strings.ToLower(b.Title) }
	case SortReviewsCountAsc:
		return func(a, b *models.Listing) bool { return a.ReviewsCount < b.ReviewsCount }
	case SortReviewsCountDesc:
		return func(a, b *models.Listing) bool { return a.ReviewsCount > b.ReviewsCount }
	case SortPopularity:
		return func(a, b *models.Listing) bool { return a.ViewsCount > b.ViewsCount }
	default:
		return func(a, b *models.Listing) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
}

// PaginateListings slices an in-memory result set the same way the SQL
// path does.
func PaginateListings(listings []models.Listing, page PageParams) Page[models.Listing] {
	page = page.Normalize()
	total := int64(len(listings))

	start := page.offset()
	if start > len(listings) {
		start = len(listings)
	}
	end := start + page.PerPage
	if end > len(listings) {
		end = len(listings)
	}

	items := make([]models.Listing, end-start)
	copy(items, listings[start:end])
	return NewPage(items, total, page)
}

// ---------------------------------------------------------------
// CRUD
// ---------------------------------------------------------------

func (s *ListingService) Create(listing *models.Listing) error {
	if !models.ValidSubtype(listing.Type, listing.Subtype) {
		return errors.New("invalid_subtype")
	}
	listing.Status = models.StatusDraft
	if err := s.DB.Create(listing).Error; err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// GetByID loads one listing. Unpublished listings are visible only to
// their host or an admin.
func (s *ListingService) GetByID(id uint, viewer *models.User) (*models.Listing, error) {
	var listing models.Listing
	if err := s.DB.Preload("Host").First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("listing_not_found")
		}
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}
	if !listing.IsPublished() {
		if viewer == nil || (viewer.ID != listing.HostID && !viewer.IsAdmin()) {
			return nil, errors.New("listing_not_found")
		}
	}
	return &listing, nil
}

func (s *ListingService) Update(id uint, actor *models.User, updates map[string]interface{}) (*models.Listing, error) {
	var listing models.Listing
	if err := s.DB.First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("listing_not_found")
		}
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}
	if listing.HostID != actor.ID && !actor.IsAdmin() {
		return nil, errors.New("not_listing_owner")
	}

	// Protected fields never come from the payload.
	delete(updates, "id")
	delete(updates, "host_id")
	delete(updates, "status")
	delete(updates, "rating")
	delete(updates, "reviews_count")
	delete(updates, "views_count")
	delete(updates, "created_at")

	if err := s.DB.Model(&listing).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	return &listing, nil
}

func (s *ListingService) Delete(id uint, actor *models.User) error {
	var listing models.Listing
	if err := s.DB.First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("listing_not_found")
		}
		return fmt.Errorf("failed to load listing: %w", err)
	}
	if listing.HostID != actor.ID && !actor.IsAdmin() {
		return errors.New("not_listing_owner")
	}
	if err := s.DB.Delete(&listing).Error; err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	return nil
}

// TransitionStatus moves a listing through the publication state
// machine. Approve/reject/suspend require admin; submit and archive
// belong to the host.
func (s *ListingService) TransitionStatus(id uint, actor *models.User, target string) (*models.Listing, error) {
	var listing models.Listing
	if err := s.DB.First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("listing_not_found")
		}
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}

	switch target {
	case models.StatusPending, models.StatusArchived:
		if listing.HostID != actor.ID && !actor.IsAdmin() {
			return nil, errors.New("not_listing_owner")
		}
	case models.StatusPublished, models.StatusRejected, models.StatusSuspended:
		if !actor.IsAdmin() {
			return nil, errors.New("admin_required")
		}
	default:
		return nil, errors.New("invalid_status")
	}

	if !models.CanTransitionStatus(listing.Status, target) {
		return nil, fmt.Errorf("invalid_transition: %s -> %s", listing.Status, target)
	}

	if err := s.DB.Model(&listing).Update("status", target).Error; err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	listing.Status = target
	return &listing, nil
}

// IncrementViews bumps the popularity counter.
func (s *ListingService) IncrementViews(id uint) error {
	return s.DB.Model(&models.Listing{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}
