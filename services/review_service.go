package services

import (
	"errors"
	"fmt"

	"github.com/Vladyslav2123/triply-sub001/models"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Deny reasons are stable strings surfaced to the caller as-is.
const (
	DenyUnsupportedEntity = "unsupported entity type"
	DenyNoEligibleStay    = "no eligible completed reservation"
	DenyOwnEntity         = "cannot review own entity"
)

// Decision is the outcome of a review-eligibility check. A deny is a
// typed negative answer, not an error.
type Decision struct {
	Allowed       bool   `json:"allowed"`
	Reason        string `json:"reason,omitempty"`
	ReservationID uint   `json:"reservation_id,omitempty"`
}

func Allow(reservationID uint) Decision {
	return Decision{Allowed: true, ReservationID: reservationID}
}

func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// CanReview evaluates the eligibility rules in order; the first
// failing rule wins.
//
// reservations are the user's reservations for this exact entity;
// existingReviews are the user's reviews.
func CanReview(user *models.User, entityType string, entityID, ownerID uint, reservations []models.Reservation, existingReviews []models.Review) Decision {
	if entityType != models.ReservationableListing && entityType != models.ReservationableExperience {
		return Deny(DenyUnsupportedEntity)
	}

	reviewed := make(map[uint]bool, len(existingReviews))
	for _, rv := range existingReviews {
		if rv.ReviewerID == user.ID {
			reviewed[rv.ReservationID] = true
		}
	}

	var eligible *models.Reservation
	for i := range reservations {
		r := &reservations[i]
		if r.ReservationableType != entityType || r.ReservationableID != entityID {
			continue
		}
		if !r.IsCompleted() || reviewed[r.ID] {
			continue
		}
		eligible = r
		break
	}
	if eligible == nil {
		return Deny(DenyNoEligibleStay)
	}

	if user.ID == ownerID {
		return Deny(DenyOwnEntity)
	}

	return Allow(eligible.ID)
}

// ReviewService owns the review write path: eligibility, the review
// row, and the cached rating refresh commit together or not at all.
type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

// ReviewInput carries the six sub-scores plus an optional comment.
// Range validation happens at the request boundary.
type ReviewInput struct {
	Cleanliness   int    `json:"cleanliness" binding:"required,min=1,max=5"`
	Accuracy      int    `json:"accuracy" binding:"required,min=1,max=5"`
	Checkin       int    `json:"checkin" binding:"required,min=1,max=5"`
	Communication int    `json:"communication" binding:"required,min=1,max=5"`
	Location      int    `json:"location" binding:"required,min=1,max=5"`
	Value         int    `json:"value" binding:"required,min=1,max=5"`
	Comment       string `json:"comment"`
}

func (in ReviewInput) subRatings() [6]int {
	return [6]int{in.Cleanliness, in.Accuracy, in.Checkin, in.Communication, in.Location, in.Value}
}

// CheckEligibility loads the user's reservations and reviews for the
// entity and runs CanReview over them.
func (s *ReviewService) CheckEligibility(user *models.User, entityType string, entityID uint) (Decision, error) {
	if entityType != models.ReservationableListing && entityType != models.ReservationableExperience {
		return Deny(DenyUnsupportedEntity), nil
	}

	ownerID, err := s.entityOwner(entityType, entityID)
	if err != nil {
		return Decision{}, err
	}

	var reservations []models.Reservation
	if err := s.DB.
		Where("guest_id = ? AND reservationable_type = ? AND reservationable_id = ?", user.ID, entityType, entityID).
		Find(&reservations).Error; err != nil {
		return Decision{}, fmt.Errorf("failed to load reservations: %w", err)
	}

	var reviews []models.Review
	if err := s.DB.
		Where("reviewer_id = ?", user.ID).
		Find(&reviews).Error; err != nil {
		return Decision{}, fmt.Errorf("failed to load reviews: %w", err)
	}

	return CanReview(user, entityType, entityID, ownerID, reservations, reviews), nil
}

// Create persists a review for an eligible completed reservation and
// refreshes the entity's cached aggregate in the same transaction.
// Returns the stale-entity event the caller must hand to the cache
// collaborator.
func (s *ReviewService) Create(user *models.User, entityType string, entityID uint, in ReviewInput) (*models.Review, *StaleEntity, error) {
	decision, err := s.CheckEligibility(user, entityType, entityID)
	if err != nil {
		return nil, nil, err
	}
	if !decision.Allowed {
		return nil, nil, fmt.Errorf("not_eligible: %s", decision.Reason)
	}

	review := &models.Review{
		ReservationID:  decision.ReservationID,
		ReviewerID:     user.ID,
		ReviewableID:   entityID,
		ReviewableType: entityType,
		Cleanliness:    in.Cleanliness,
		Accuracy:       in.Accuracy,
		Checkin:        in.Checkin,
		Communication:  in.Communication,
		Location:       in.Location,
		Value:          in.Value,
		OverallRating:  ComputeOverallRating(in.subRatings()),
		Comment:        in.Comment,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			var mysqlErr *mysql.MySQLError
			if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
				return errors.New("review_already_exists")
			}
			return fmt.Errorf("failed to create review: %w", err)
		}
		if _, err := refreshRatingTx(tx, entityType, entityID); err != nil {
			return err
		}
		return nil
	})
	if txErr != nil {
		return nil, nil, txErr
	}

	return review, &StaleEntity{EntityType: entityType, EntityID: entityID}, nil
}

// Update rewrites the reviewer's own review and refreshes the cached
// aggregate, using the same overall-rating computation as Create.
func (s *ReviewService) Update(user *models.User, reviewID uint, in ReviewInput) (*models.Review, *StaleEntity, error) {
	var review models.Review
	if err := s.DB.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errors.New("review_not_found")
		}
		return nil, nil, fmt.Errorf("failed to load review: %w", err)
	}
	if review.ReviewerID != user.ID && !user.IsAdmin() {
		return nil, nil, errors.New("not_review_owner")
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&review).Updates(map[string]interface{}{
			"cleanliness":    in.Cleanliness,
			"accuracy":       in.Accuracy,
			"checkin":        in.Checkin,
			"communication":  in.Communication,
			"location":       in.Location,
			"value":          in.Value,
			"overall_rating": ComputeOverallRating(in.subRatings()),
			"comment":        in.Comment,
		}).Error; err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}
		if _, err := refreshRatingTx(tx, review.ReviewableType, review.ReviewableID); err != nil {
			return err
		}
		return nil
	})
	if txErr != nil {
		return nil, nil, txErr
	}

	return &review, &StaleEntity{EntityType: review.ReviewableType, EntityID: review.ReviewableID}, nil
}

// Delete removes the reviewer's own review and refreshes the cached
// aggregate.
func (s *ReviewService) Delete(user *models.User, reviewID uint) (*StaleEntity, error) {
	var review models.Review
	if err := s.DB.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("review_not_found")
		}
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	if review.ReviewerID != user.ID && !user.IsAdmin() {
		return nil, errors.New("not_review_owner")
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&review).Error; err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		if _, err := refreshRatingTx(tx, review.ReviewableType, review.ReviewableID); err != nil {
			return err
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &StaleEntity{EntityType: review.ReviewableType, EntityID: review.ReviewableID}, nil
}

// ListForEntity returns an entity's reviews, newest first.
func (s *ReviewService) ListForEntity(entityType string, entityID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.DB.
		Preload("Reviewer").
		Where("reviewable_type = ? AND reviewable_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	return reviews, nil
}

func (s *ReviewService) entityOwner(entityType string, entityID uint) (uint, error) {
	switch entityType {
	case models.ReservationableListing:
		var listing models.Listing
		if err := s.DB.Select("id", "host_id").First(&listing, entityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, errors.New("listing_not_found")
			}
			return 0, err
		}
		return listing.HostID, nil
	case models.ReservationableExperience:
		var experience models.Experience
		if err := s.DB.Select("id", "host_id").First(&experience, entityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, errors.New("experience_not_found")
			}
			return 0, err
		}
		return experience.HostID, nil
	}
	return 0, errors.New("unsupported_entity_type")
}
