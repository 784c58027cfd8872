package repository

import (
	"context"
	"errors"

	"tapcard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PortfolioRepository defines persistence operations for portfolio items.
type PortfolioRepository interface {
	Create(ctx context.Context, item *models.PortfolioItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PortfolioItem, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]models.PortfolioItem, error)
	Update(ctx context.Context, item *models.PortfolioItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type portfolioRepository struct {
	db *gorm.DB
}

// NewPortfolioRepository returns a new PortfolioRepository implementation.
func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

func (r *portfolioRepository) Create(ctx context.Context, item *models.PortfolioItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *portfolioRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("PortfolioItem", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &item, nil
}

func (r *portfolioRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.PortfolioItem, error) {
	var items []models.PortfolioItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *portfolioRepository) Update(ctx context.Context, item *models.PortfolioItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *portfolioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.PortfolioItem{}, "id = ?", id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("PortfolioItem", id)
	}
	return nil
}
