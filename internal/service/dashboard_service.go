package service

import (
	"context"

	"tapcard/internal/cache"
	"tapcard/internal/models"
	"tapcard/internal/repository"

	"github.com/google/uuid"
)

// DashboardService batches the data the dashboard screen needs into one call.
type DashboardService struct {
	userRepo       repository.UserRepository
	socialLinkRepo repository.SocialLinkRepository
	circleRepo     repository.CircleRepository
	analyticsRepo  repository.AnalyticsRepository
}

// Dashboard is the batched dashboard payload.
type Dashboard struct {
	User             models.PublicProfile `json:"user"`
	SocialLinks      []models.SocialLink  `json:"social_links"`
	Analytics        AnalyticsSummary     `json:"analytics"`
	ConnectionsCount int64                `json:"connections_count"`
	PendingInvites   int64                `json:"pending_invites"`
}

// NewDashboardService returns a new DashboardService.
func NewDashboardService(
	userRepo repository.UserRepository,
	socialLinkRepo repository.SocialLinkRepository,
	circleRepo repository.CircleRepository,
	analyticsRepo repository.AnalyticsRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:       userRepo,
		socialLinkRepo: socialLinkRepo,
		circleRepo:     circleRepo,
		analyticsRepo:  analyticsRepo,
	}
}

// Get assembles the caller's dashboard. The result is cached briefly; circle
// transitions and profile edits invalidate it.
func (s *DashboardService) Get(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	var dash Dashboard
	err := cache.Aside(ctx, cache.DashboardKey(userID), &dash, cache.DashboardTTL, func() error {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		dash.User = user.Public()

		links, err := s.socialLinkRepo.GetByUser(ctx, userID)
		if err != nil {
			return err
		}
		dash.SocialLinks = links

		counts, err := s.analyticsRepo.CountsByType(ctx, userID)
		if err != nil {
			return err
		}
		dash.Analytics = AnalyticsSummary{
			ProfileViews: counts[models.EventTypeProfileView],
			LinkClicks:   counts[models.EventTypeLinkClick],
			QRScans:      counts[models.EventTypeQRScan],
		}
		dash.Analytics.Total = dash.Analytics.ProfileViews + dash.Analytics.LinkClicks + dash.Analytics.QRScans

		if dash.ConnectionsCount, err = s.circleRepo.CountConnections(ctx, userID); err != nil {
			return err
		}
		if dash.PendingInvites, err = s.circleRepo.CountPendingReceived(ctx, userID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dash, nil
}
