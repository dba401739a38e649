package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"pminternship/internship-ai/internal/models"
)

type ProfileRepository interface {
	Create(profile *models.UserProfile) error
	FindByUserID(userID string) ([]models.UserProfile, error)
	List(page, limit int) ([]models.UserProfile, int64, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Create implements ProfileRepository.
func (r *profileRepository) Create(profile *models.UserProfile) error {
	if err := r.db.Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// FindByUserID implements ProfileRepository. Newest profile first.
func (r *profileRepository) FindByUserID(userID string) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find profiles: %w", err)
	}
	return profiles, nil
}

// List implements ProfileRepository. Pages are 1-indexed.
func (r *profileRepository) List(page, limit int) ([]models.UserProfile, int64, error) {
	var total int64
	if err := r.db.Model(&models.UserProfile{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	var profiles []models.UserProfile
	err := r.db.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list profiles: %w", err)
	}

	return profiles, total, nil
}
