package service

import (
	"context"

	"tapcard/internal/cache"
	"tapcard/internal/models"
	"tapcard/internal/observability"
	"tapcard/internal/repository"

	"github.com/google/uuid"
)

// AnalyticsService records profile interaction events and serves summaries.
type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	userRepo      repository.UserRepository
}

// AnalyticsSummary aggregates a profile's event counts.
type AnalyticsSummary struct {
	ProfileViews int64 `json:"profile_views"`
	LinkClicks   int64 `json:"link_clicks"`
	QRScans      int64 `json:"qr_scans"`
	Total        int64 `json:"total"`
}

// NewAnalyticsService returns a new AnalyticsService.
func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository, userRepo repository.UserRepository) *AnalyticsService {
	return &AnalyticsService{analyticsRepo: analyticsRepo, userRepo: userRepo}
}

// RecordEvent stores an interaction event against a profile owner.
func (s *AnalyticsService) RecordEvent(ctx context.Context, ownerID uuid.UUID, eventType, eventData string) (*models.AnalyticsEvent, error) {
	if !models.KnownEventType(eventType) {
		return nil, models.NewValidationError("Unknown event type")
	}
	if len(eventData) > 2048 {
		return nil, models.NewValidationError("Event data too large")
	}

	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	event := &models.AnalyticsEvent{
		UserID:    ownerID,
		EventType: eventType,
		EventData: eventData,
	}
	if err := s.analyticsRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	observability.RecordAnalyticsEvent(eventType)
	cache.Invalidate(ctx, cache.AnalyticsSummaryKey(ownerID))

	return event, nil
}

// GetSummary returns aggregated event counts for a profile owner.
func (s *AnalyticsService) GetSummary(ctx context.Context, ownerID uuid.UUID) (*AnalyticsSummary, error) {
	var summary AnalyticsSummary
	err := cache.Aside(ctx, cache.AnalyticsSummaryKey(ownerID), &summary, cache.AnalyticsSummaryTTL, func() error {
		counts, err := s.analyticsRepo.CountsByType(ctx, ownerID)
		if err != nil {
			return err
		}
		summary.ProfileViews = counts[models.EventTypeProfileView]
		summary.LinkClicks = counts[models.EventTypeLinkClick]
		summary.QRScans = counts[models.EventTypeQRScan]
		summary.Total = summary.ProfileViews + summary.LinkClicks + summary.QRScans
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// ListEvents returns the recent raw events for a profile owner.
func (s *AnalyticsService) ListEvents(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]models.AnalyticsEvent, error) {
	return s.analyticsRepo.ListByUser(ctx, ownerID, limit, offset)
}
