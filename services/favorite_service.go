package services

import (
	"errors"
	"fmt"

	"github.com/Vladyslav2123/triply-sub001/models"

	"gorm.io/gorm"
)

type FavoriteService struct {
	DB *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{DB: db}
}

// Toggle saves or removes a favorite for the user and reports the
// resulting state (true = now favorited).
func (s *FavoriteService) Toggle(user *models.User, targetType string, targetID uint) (bool, error) {
	if targetType != models.FavoriteableListing && targetType != models.FavoriteableExperience {
		return false, errors.New("unsupported_entity_type")
	}

	var existing models.Favorite
	err := s.DB.
		Where("user_id = ? AND favoriteable_type = ? AND favoriteable_id = ?", user.ID, targetType, targetID).
		First(&existing).Error
	if err == nil {
		if err := s.DB.Delete(&existing).Error; err != nil {
			return true, fmt.Errorf("failed to remove favorite: %w", err)
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	favorite := models.Favorite{
		UserID:           user.ID,
		FavoriteableType: targetType,
		FavoriteableID:   targetID,
	}
	if err := s.DB.Create(&favorite).Error; err != nil {
		return false, fmt.Errorf("failed to create favorite: %w", err)
	}
	return true, nil
}

// ListListings returns the user's favorited listings.
func (s *FavoriteService) ListListings(userID uint) ([]models.Listing, error) {
	var listings []models.Listing
	if err := s.DB.
		Joins("JOIN favorites ON favorites.favoriteable_id = listings.id AND favorites.favoriteable_type = ?", models.FavoriteableListing).
		Where("favorites.user_id = ?", userID).
		Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to load favorite listings: %w", err)
	}
	return listings, nil
}

// ListExperiences returns the user's favorited experiences.
func (s *FavoriteService) ListExperiences(userID uint) ([]models.Experience, error) {
	var experiences []models.Experience
	if err := s.DB.
		Joins("JOIN favorites ON favorites.favoriteable_id = experiences.id AND favorites.favoriteable_type = ?", models.FavoriteableExperience).
		Where("favorites.user_id = ?", userID).
		Find(&experiences).Error; err != nil {
		return nil, fmt.Errorf("failed to load favorite experiences: %w", err)
	}
	return experiences, nil
}
