package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Vladyslav2123/triply-sub001/models"

	"gorm.io/gorm"
)

// ExperienceFilter narrows experience searches. Same conjunctive
// semantics as ListingFilter, over the smaller experience attribute
// set.
type ExperienceFilter struct {
	Search    string   `json:"search,omitempty"`
	Category  string   `json:"category,omitempty"`
	PriceMin  *int64   `json:"price_min,omitempty"`
	PriceMax  *int64   `json:"price_max,omitempty"`
	MinRating *float64 `json:"min_rating,omitempty"`
	GroupSize *int     `json:"group_size,omitempty"`
	City      string   `json:"city,omitempty"`
	Country   string   `json:"country,omitempty"`
}

func (f *ExperienceFilter) apply(db *gorm.DB) *gorm.DB {
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if f.PriceMin != nil {
		db = db.Where("price_per_person >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		db = db.Where("price_per_person <= ?", *f.PriceMax)
	}
	if f.MinRating != nil {
		db = db.Where("rating >= ?", *f.MinRating)
	}
	if f.GroupSize != nil {
		db = db.Where("max_group_size = 0 OR max_group_size >= ?", *f.GroupSize)
	}
	if f.City != "" {
		db = db.Where("LOWER(loc_city) LIKE ?", "%"+strings.ToLower(f.City)+"%")
	}
	if f.Country != "" {
		db = db.Where("LOWER(loc_country) LIKE ?", "%"+strings.ToLower(f.Country)+"%")
	}
	return db
}

type ExperienceService struct {
	DB *gorm.DB
}

func NewExperienceService(db *gorm.DB) *ExperienceService {
	return &ExperienceService{DB: db}
}

func (s *ExperienceService) Search(filter ExperienceFilter, sortKey string, page PageParams) (Page[models.Experience], error) {
	page = page.Normalize()

	q := s.DB.Model(&models.Experience{}).
		Where("status = ?", models.StatusPublished)
	q = filter.apply(q)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Page[models.Experience]{}, fmt.Errorf("failed to count experiences: %w", err)
	}

	var experiences []models.Experience
	if err := q.
		Order(experienceOrderClause(sortKey)).
		Offset(page.offset()).
		Limit(page.PerPage).
		Find(&experiences).Error; err != nil {
		return Page[models.Experience]{}, fmt.Errorf("failed to query experiences: %w", err)
	}

	return NewPage(experiences, total, page), nil
}

func experienceOrderClause(sortKey string) string {
	switch sortKey {
	case SortPriceAsc:
		return "price_per_person ASC"
	case SortPriceDesc:
		return "price_per_person DESC"
	case SortRatingAsc:
		return "rating ASC"
	case SortRatingDesc:
		return "rating DESC"
	case SortReviewsCountAsc:
		return "reviews_count ASC"
	case SortReviewsCountDesc:
		return "reviews_count DESC"
	case SortTitleAsc:
		return "title ASC"
	case SortTitleDesc:
		return "title DESC"
	case SortCreatedAtAsc:
		return "created_at ASC"
	case SortPopularity:
		return "views_count DESC"
	default:
		return "created_at DESC"
	}
}

func (s *ExperienceService) Create(experience *models.Experience) error {
	experience.Status = models.StatusDraft
	if err := s.DB.Create(experience).Error; err != nil {
		return fmt.Errorf("failed to create experience: %w", err)
	}
	return nil
}

func (s *ExperienceService) GetByID(id uint, viewer *models.User) (*models.Experience, error) {
	var experience models.Experience
	if err := s.DB.Preload("Host").First(&experience, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("experience_not_found")
		}
		return nil, fmt.Errorf("failed to load experience: %w", err)
	}
	if !experience.IsPublished() {
		if viewer == nil || (viewer.ID != experience.HostID && !viewer.IsAdmin()) {
			return nil, errors.New("experience_not_found")
		}
	}
	return &experience, nil
}

func (s *ExperienceService) Update(id uint, actor *models.User, updates map[string]interface{}) (*models.Experience, error) {
	var experience models.Experience
	if err := s.DB.First(&experience, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("experience_not_found")
		}
		return nil, fmt.Errorf("failed to load experience: %w", err)
	}
	if experience.HostID != actor.ID && !actor.IsAdmin() {
		return nil, errors.New("not_experience_owner")
	}

	delete(updates, "id")
	delete(updates, "host_id")
	delete(updates, "status")
	delete(updates, "rating")
	delete(updates, "reviews_count")
	delete(updates, "views_count")
	delete(updates, "created_at")

	if err := s.DB.Model(&experience).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update experience: %w", err)
	}
	return &experience, nil
}

func (s *ExperienceService) Delete(id uint, actor *models.User) error {
	var experience models.Experience
	if err := s.DB.First(&experience, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("experience_not_found")
		}
		return fmt.Errorf("failed to load experience: %w", err)
	}
	if experience.HostID != actor.ID && !actor.IsAdmin() {
		return errors.New("not_experience_owner")
	}
	if err := s.DB.Delete(&experience).Error; err != nil {
		return fmt.Errorf("failed to delete experience: %w", err)
	}
	return nil
}

// TransitionStatus applies the shared publication state machine to an
// experience.
func (s *ExperienceService) TransitionStatus(id uint, actor *models.User, target string) (*models.Experience, error) {
	var experience models.Experience
	if err := s.DB.First(&experience, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("experience_not_found")
		}
		return nil, fmt.Errorf("failed to load experience: %w", err)
	}

	switch target {
	case models.StatusPending, models.StatusArchived:
		if experience.HostID != actor.ID && !actor.IsAdmin() {
			return nil, errors.New("not_experience_owner")
		}
	case models.StatusPublished, models.StatusRejected, models.StatusSuspended:
		if !actor.IsAdmin() {
			return nil, errors.New("admin_required")
		}
	default:
		return nil, errors.New("invalid_status")
	}

	if !models.CanTransitionStatus(experience.Status, target) {
		return nil, fmt.Errorf("invalid_transition: %s -> %s", experience.Status, target)
	}

	if err := s.DB.Model(&experience).Update("status", target).Error; err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	experience.Status = target
	return &experience, nil
}

func (s *ExperienceService) IncrementViews(id uint) error {
	return s.DB.Model(&models.Experience{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}
