package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Vladyslav2123/triply-sub001/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AvailabilityService manages the per-date override calendars for
// listings and experiences.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// DateOverride is one calendar entry in an upsert payload.
type DateOverride struct {
	Date              time.Time `json:"date" binding:"required"`
	IsAvailable       bool      `json:"is_available"`
	PriceOverride     *int64    `json:"price_override,omitempty"`
	RemainingCapacity *int      `json:"remaining_capacity,omitempty"`
}

// UpsertListingDates writes per-date override rows for a host's own
// listing, replacing existing rows for the same dates.
func (s *AvailabilityService) UpsertListingDates(listingID uint, actor *models.User, overrides []DateOverride) error {
	var listing models.Listing
	if err := s.DB.Select("id", "host_id").First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("listing_not_found")
		}
		return fmt.Errorf("failed to load listing: %w", err)
	}
	if listing.HostID != actor.ID && !actor.IsAdmin() {
		return errors.New("not_listing_owner")
	}

	rows := make([]models.ListingAvailability, 0, len(overrides))
	for _, o := range overrides {
		rows = append(rows, models.ListingAvailability{
			ListingID:     listingID,
			Date:          truncateToDate(o.Date),
			IsAvailable:   o.IsAvailable,
			PriceOverride: o.PriceOverride,
		})
	}
	if len(rows) == 0 {
		return nil
	}

	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "listing_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_available", "price_override", "updated_at"}),
	}).Create(&rows).Error
}

// UpsertExperienceDates is the experience counterpart, carrying
// remaining capacity as well.
func (s *AvailabilityService) UpsertExperienceDates(experienceID uint, actor *models.User, overrides []DateOverride) error {
	var experience models.Experience
	if err := s.DB.Select("id", "host_id").First(&experience, experienceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("experience_not_found")
		}
		return fmt.Errorf("failed to load experience: %w", err)
	}
	if experience.HostID != actor.ID && !actor.IsAdmin() {
		return errors.New("not_experience_owner")
	}

	rows := make([]models.ExperienceAvailability, 0, len(overrides))
	for _, o := range overrides {
		rows = append(rows, models.ExperienceAvailability{
			ExperienceID:      experienceID,
			Date:              o.Date,
			IsAvailable:       o.IsAvailable,
			PriceOverride:     o.PriceOverride,
			RemainingCapacity: o.RemainingCapacity,
		})
	}
	if len(rows) == 0 {
		return nil
	}

	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "experience_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_available", "price_override", "remaining_capacity", "updated_at"}),
	}).Create(&rows).Error
}

// ListListingDates returns the listing's override rows for [from, to).
func (s *AvailabilityService) ListListingDates(listingID uint, from, to time.Time) ([]models.ListingAvailability, error) {
	var rows []models.ListingAvailability
	if err := s.DB.
		Where("listing_id = ? AND date >= ? AND date < ?", listingID, from, to).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}
	return rows, nil
}

// ListExperienceDates returns the experience's slots for [from, to).
func (s *AvailabilityService) ListExperienceDates(experienceID uint, from, to time.Time) ([]models.ExperienceAvailability, error) {
	var rows []models.ExperienceAvailability
	if err := s.DB.
		Where("experience_id = ? AND date >= ? AND date < ?", experienceID, from, to).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}
	return rows, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
