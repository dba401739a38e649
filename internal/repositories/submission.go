package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"pminternship/internship-ai/internal/models"
)

type SubmissionRepository interface {
	Create(submission *models.Submission) error
	Count() (int64, error)
	CountUsers() (int64, error)
	PopularSkills(limit int) ([]models.SkillCount, error)
	LocationDistribution(limit int) ([]models.LocationCount, error)
	SectorDistribution(limit int) ([]models.SectorCount, error)
	Recent(limit int) ([]models.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

// Create implements SubmissionRepository.
func (r *submissionRepository) Create(submission *models.Submission) error {
	if err := r.db.Create(submission).Error; err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

// Count implements SubmissionRepository.
func (r *submissionRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Submission{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return total, nil
}

// CountUsers implements SubmissionRepository.
func (r *submissionRepository) CountUsers() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Submission{}).Distinct("user_id").Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}

// PopularSkills implements SubmissionRepository. Most frequent first.
func (r *submissionRepository) PopularSkills(limit int) ([]models.SkillCount, error) {
	var counts []models.SkillCount
	err := r.db.Raw(`
		SELECT skill, COUNT(*) AS count
		FROM submissions, unnest(skills) AS skill
		GROUP BY skill
		ORDER BY count DESC, skill ASC
		LIMIT ?`, limit).Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate skills: %w", err)
	}
	return counts, nil
}

// LocationDistribution implements SubmissionRepository. Most frequent first.
func (r *submissionRepository) LocationDistribution(limit int) ([]models.LocationCount, error) {
	var counts []models.LocationCount
	err := r.db.Raw(`
		SELECT location, COUNT(*) AS count
		FROM submissions
		WHERE location <> ''
		GROUP BY location
		ORDER BY count DESC, location ASC
		LIMIT ?`, limit).Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate locations: %w", err)
	}
	return counts, nil
}

// SectorDistribution implements SubmissionRepository. Sectors are the
// interests of each submission.
func (r *submissionRepository) SectorDistribution(limit int) ([]models.SectorCount, error) {
	var counts []models.SectorCount
	err := r.db.Raw(`
		SELECT sector, COUNT(*) AS count
		FROM submissions, unnest(interests) AS sector
		GROUP BY sector
		ORDER BY count DESC, sector ASC
		LIMIT ?`, limit).Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sectors: %w", err)
	}
	return counts, nil
}

// Recent implements SubmissionRepository.
func (r *submissionRepository) Recent(limit int) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.db.
		Order("submitted_at DESC").
		Limit(limit).
		Find(&submissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recent submissions: %w", err)
	}
	return submissions, nil
}
