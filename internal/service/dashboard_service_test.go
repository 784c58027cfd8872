package service

import (
	"context"
	"testing"

	"tapcard/internal/models"

	"github.com/google/uuid"
)

func TestDashboardServiceGet(t *testing.T) {
	me := uuid.New()

	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.User, error) {
		return &models.User{ID: id, Username: "alice", Fullname: "Alice"}, nil
	}

	links := noopSocialLinkRepo()
	links.getByUserFn = func(context.Context, uuid.UUID) ([]models.SocialLink, error) {
		return []models.SocialLink{{UserID: me, PlatformName: "github", LinkURL: "https://github.com/alice"}}, nil
	}

	circles := noopCircleRepo()
	circles.countConnectionsFn = func(context.Context, uuid.UUID) (int64, error) { return 5, nil }
	circles.countPendingReceivedFn = func(context.Context, uuid.UUID) (int64, error) { return 2, nil }

	analytics := noopAnalyticsRepo()
	analytics.countsByTypeFn = func(context.Context, uuid.UUID) (map[string]int64, error) {
		return map[string]int64{models.EventTypeProfileView: 7}, nil
	}

	svc := NewDashboardService(users, links, circles, analytics)
	dash, err := svc.Get(context.Background(), me)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dash.User.Username != "alice" {
		t.Fatalf("unexpected user: %#v", dash.User)
	}
	if len(dash.SocialLinks) != 1 {
		t.Fatalf("unexpected links: %#v", dash.SocialLinks)
	}
	if dash.ConnectionsCount != 5 || dash.PendingInvites != 2 {
		t.Fatalf("unexpected counts: %#v", dash)
	}
	if dash.Analytics.ProfileViews != 7 || dash.Analytics.Total != 7 {
		t.Fatalf("unexpected analytics: %#v", dash.Analytics)
	}
}

func TestDashboardServiceGetUserNotFound(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewDashboardService(users, noopSocialLinkRepo(), noopCircleRepo(), noopAnalyticsRepo())
	_, err := svc.Get(context.Background(), uuid.New())
	assertCode(t, err, models.CodeNotFound)
}
