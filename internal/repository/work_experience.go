package repository

import (
	"context"
	"errors"

	"tapcard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkExperienceRepository defines persistence operations for work history entries.
type WorkExperienceRepository interface {
	Create(ctx context.Context, entry *models.WorkExperience) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.WorkExperience, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]models.WorkExperience, error)
	Update(ctx context.Context, entry *models.WorkExperience) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type workExperienceRepository struct {
	db *gorm.DB
}

// NewWorkExperienceRepository returns a new WorkExperienceRepository implementation.
func NewWorkExperienceRepository(db *gorm.DB) WorkExperienceRepository {
	return &workExperienceRepository{db: db}
}

func (r *workExperienceRepository) Create(ctx context.Context, entry *models.WorkExperience) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *workExperienceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.WorkExperience, error) {
	var entry models.WorkExperience
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("WorkExperience", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &entry, nil
}

func (r *workExperienceRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.WorkExperience, error) {
	var entries []models.WorkExperience
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *workExperienceRepository) Update(ctx context.Context, entry *models.WorkExperience) error {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *workExperienceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.WorkExperience{}, "id = ?", id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("WorkExperience", id)
	}
	return nil
}
