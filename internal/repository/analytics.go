package repository

import (
	"context"

	"tapcard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalyticsRepository defines persistence operations for analytics events.
type AnalyticsRepository interface {
	Create(ctx context.Context, event *models.AnalyticsEvent) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.AnalyticsEvent, error)
	CountsByType(ctx context.Context, userID uuid.UUID) (map[string]int64, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository returns a new AnalyticsRepository implementation.
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Create(ctx context.Context, event *models.AnalyticsEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *analyticsRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.AnalyticsEvent, error) {
	var events []models.AnalyticsEvent
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&events).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

// CountsByType aggregates event counts per event type for a profile owner.
func (r *analyticsRepository) CountsByType(ctx context.Context, userID uuid.UUID) (map[string]int64, error) {
	type row struct {
		EventType string
		Count     int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Select("event_type, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("event_type").
		Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.EventType] = r.Count
	}
	return counts, nil
}
