package repository

import (
	"context"
	"errors"

	"tapcard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SocialLinkRepository defines persistence operations for social links.
type SocialLinkRepository interface {
	Create(ctx context.Context, link *models.SocialLink) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SocialLink, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]models.SocialLink, error)
	Update(ctx context.Context, link *models.SocialLink) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type socialLinkRepository struct {
	db *gorm.DB
}

// NewSocialLinkRepository returns a new SocialLinkRepository implementation.
func NewSocialLinkRepository(db *gorm.DB) SocialLinkRepository {
	return &socialLinkRepository{db: db}
}

func (r *socialLinkRepository) Create(ctx context.Context, link *models.SocialLink) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *socialLinkRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SocialLink, error) {
	var link models.SocialLink
	if err := r.db.WithContext(ctx).First(&link, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("SocialLink", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &link, nil
}

func (r *socialLinkRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.SocialLink, error) {
	var links []models.SocialLink
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("platform_name ASC").
		Find(&links).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return links, nil
}

func (r *socialLinkRepository) Update(ctx context.Context, link *models.SocialLink) error {
	if err := r.db.WithContext(ctx).Save(link).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *socialLinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.SocialLink{}, "id = ?", id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("SocialLink", id)
	}
	return nil
}
