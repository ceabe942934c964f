package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/Vladyslav2123/triply-sub001/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingAggregate is a cached rating snapshot for one listing or
// experience.
type RatingAggregate struct {
	Overall float64 `json:"overall"`
	Count   int     `json:"count"`
}

// StaleEntity signals that a read-model keyed by this entity must be
// invalidated. Emitted by the review write path, consumed by the cache
// service; core code never touches the cache itself.
type StaleEntity struct {
	EntityType string
	EntityID   uint
}

// RoundHalfUp1 rounds to one decimal place, halves away from zero.
func RoundHalfUp1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// ComputeOverallRating returns the rounded mean of the six sub-ratings.
func ComputeOverallRating(sub [6]int) float64 {
	sum := 0
	for _, s := range sub {
		sum += s
	}
	return RoundHalfUp1(float64(sum) / 6)
}

// RecomputeRating aggregates an entity's full review set. Empty input
// yields {0, 0}.
func RecomputeRating(reviews []models.Review) RatingAggregate {
	if len(reviews) == 0 {
		return RatingAggregate{}
	}
	var sum float64
	for _, r := range reviews {
		sum += r.OverallRating
	}
	return RatingAggregate{
		Overall: RoundHalfUp1(sum / float64(len(reviews))),
		Count:   len(reviews),
	}
}

// ApplyIncremental folds one added and/or one removed review into a
// current aggregate without refetching the whole set. The result may
// differ from a full recompute only by rounding.
func ApplyIncremental(cur RatingAggregate, added, removed *models.Review) RatingAggregate {
	sum := cur.Overall * float64(cur.Count)
	count := cur.Count
	if added != nil {
		sum += added.OverallRating
		count++
	}
	if removed != nil {
		sum -= removed.OverallRating
		count--
	}
	if count <= 0 {
		return RatingAggregate{}
	}
	return RatingAggregate{
		Overall: RoundHalfUp1(sum / float64(count)),
		Count:   count,
	}
}

// RatingService refreshes the cached rating/reviews_count columns on
// listings and experiences.
type RatingService struct {
	DB *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{DB: db}
}

const ratingPersistRetries = 3

// RefreshEntityRating recomputes and persists the cached aggregate for
// one entity, serialized per entity via a row lock on the entity
// itself. Retries transient conflicts a bounded number of times before
// surfacing them.
func (s *RatingService) RefreshEntityRating(entityType string, entityID uint) (RatingAggregate, error) {
	var agg RatingAggregate
	var lastErr error

	for attempt := 0; attempt < ratingPersistRetries; attempt++ {
		lastErr = s.DB.Transaction(func(tx *gorm.DB) error {
			var err error
			agg, err = refreshRatingTx(tx, entityType, entityID)
			return err
		})
		if lastErr == nil {
			return agg, nil
		}
		if !isTransientConflict(lastErr) {
			return agg, lastErr
		}
		log.Printf("rating refresh conflict for %s %d (attempt %d) - retrying", entityType, entityID, attempt+1)
	}
	return agg, fmt.Errorf("rating refresh failed after retries: %w", lastErr)
}

func refreshRatingTx(tx *gorm.DB, entityType string, entityID uint) (RatingAggregate, error) {
	locked := tx.Clauses(clause.Locking{Strength: "UPDATE"})

	switch entityType {
	case models.ReservationableListing:
		var listing models.Listing
		if err := locked.First(&listing, entityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return RatingAggregate{}, errors.New("listing_not_found")
			}
			return RatingAggregate{}, err
		}
	case models.ReservationableExperience:
		var experience models.Experience
		if err := locked.First(&experience, entityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return RatingAggregate{}, errors.New("experience_not_found")
			}
			return RatingAggregate{}, err
		}
	default:
		return RatingAggregate{}, errors.New("unsupported_entity_type")
	}

	var reviews []models.Review
	if err := tx.
		Where("reviewable_type = ? AND reviewable_id = ?", entityType, entityID).
		Find(&reviews).Error; err != nil {
		return RatingAggregate{}, fmt.Errorf("failed to load reviews: %w", err)
	}

	agg := RecomputeRating(reviews)

	model := targetModel(entityType)
	if err := tx.Model(model).
		Where("id = ?", entityID).
		Updates(map[string]interface{}{
			"rating":        agg.Overall,
			"reviews_count": agg.Count,
		}).Error; err != nil {
		return agg, fmt.Errorf("failed to persist rating: %w", err)
	}

	return agg, nil
}

func targetModel(entityType string) interface{} {
	if entityType == models.ReservationableExperience {
		return &models.Experience{}
	}
	return &models.Listing{}
}

// isTransientConflict matches deadlock / lock-wait errors that are
// safe to retry.
func isTransientConflict(err error) bool {
	if err == nil {
		return false
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "deadlock") ||
		strings.Contains(lc, "lock wait timeout") ||
		strings.Contains(lc, "try restarting transaction")
}
