package service

import (
	"context"
	"strings"
	"testing"

	"tapcard/internal/models"

	"github.com/google/uuid"
)

func strptr(s string) *string { return &s }

func TestUserServiceUpdateProfileValidation(t *testing.T) {
	me := uuid.New()

	tests := []struct {
		name string
		in   UpdateProfileInput
	}{
		{"Username too long", UpdateProfileInput{UserID: me, Username: strptr(strings.Repeat("x", 31))}},
		{"Username reserved", UpdateProfileInput{UserID: me, Username: strptr("admin")}},
		{"Username bad characters", UpdateProfileInput{UserID: me, Username: strptr("no spaces")}},
		{"Fullname too long", UpdateProfileInput{UserID: me, Fullname: strptr(strings.Repeat("x", 101))}},
		{"Bio too long", UpdateProfileInput{UserID: me, Bio: strptr(strings.Repeat("x", 501))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := noopUserRepo()
			users.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.User, error) {
				return &models.User{ID: id, Username: "original"}, nil
			}

			svc := NewUserService(users, noopCircleRepo())
			_, err := svc.UpdateProfile(context.Background(), tt.in)
			assertCode(t, err, models.CodeValidation)
		})
	}
}

func TestUserServiceUpdateProfileUsernameTaken(t *testing.T) {
	me := uuid.New()
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.User, error) {
		return &models.User{ID: id, Username: "original"}, nil
	}
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: uuid.New(), Username: username}, nil
	}

	svc := NewUserService(users, noopCircleRepo())
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: me, Username: strptr("newname")})
	assertCode(t, err, models.CodeValidation)
}

func TestUserServiceUpdateProfileAppliesFields(t *testing.T) {
	me := uuid.New()
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.User, error) {
		return &models.User{ID: id, Username: "original", Fullname: "Old Name", Bio: "old"}, nil
	}
	users.getByUsernameFn = func(context.Context, string) (*models.User, error) { return nil, nil }

	var saved *models.User
	users.updateFn = func(_ context.Context, u *models.User) error {
		saved = u
		return nil
	}

	svc := NewUserService(users, noopCircleRepo())
	got, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:   me,
		Username: strptr("newname"),
		Bio:      strptr("new bio"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil || saved.Username != "newname" || saved.Bio != "new bio" {
		t.Fatalf("unexpected saved user: %#v", saved)
	}
	// Untouched fields survive.
	if got.Fullname != "Old Name" {
		t.Fatalf("fullname should be unchanged, got %q", got.Fullname)
	}
}

func TestUserServiceGetPublicProfile(t *testing.T) {
	bob := uuid.New()
	users := noopUserRepo()
	users.getByIDWithProfileFn = func(_ context.Context, id uuid.UUID) (*models.User, error) {
		return &models.User{
			ID:       id,
			Username: "bob",
			Email:    "bob@example.com",
			SocialLinks: []models.SocialLink{
				{UserID: id, PlatformName: "github", LinkURL: "https://github.com/bob"},
			},
		}, nil
	}
	circles := noopCircleRepo()
	circles.countConnectionsFn = func(context.Context, uuid.UUID) (int64, error) { return 3, nil }

	svc := NewUserService(users, circles)
	view, err := svc.GetPublicProfile(context.Background(), bob)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.User.Username != "bob" || view.ConnectionsCount != 3 || len(view.SocialLinks) != 1 {
		t.Fatalf("unexpected view: %#v", view)
	}
}

func TestUserServiceSearchAnnotatesConnectionStatus(t *testing.T) {
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()

	users := noopUserRepo()
	users.searchFn = func(context.Context, string, int, int) ([]models.User, error) {
		return []models.User{
			{ID: alice, Username: "alice"}, // the caller, must be excluded
			{ID: bob, Username: "bob"},
			{ID: carol, Username: "carol"},
		}, nil
	}

	circles := noopCircleRepo()
	circles.getBetweenUsersFn = func(_ context.Context, _, other uuid.UUID) (*models.Circle, error) {
		if other == bob {
			return &models.Circle{RequesterID: alice, ReceiverID: bob, Status: models.CircleStatusAccepted}, nil
		}
		if other == carol {
			return &models.Circle{RequesterID: alice, ReceiverID: carol, Status: models.CircleStatusPending}, nil
		}
		return nil, nil
	}
	circles.countConnectionsFn = func(context.Context, uuid.UUID) (int64, error) { return 2, nil }

	svc := NewUserService(users, circles)
	results, err := svc.SearchUsers(context.Background(), alice, "a", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected caller excluded, got %d results", len(results))
	}
	if results[0].ConnectionStatus.State != ConnectionStateConnected {
		t.Fatalf("expected bob connected, got %#v", results[0].ConnectionStatus)
	}
	if results[1].ConnectionStatus.State != ConnectionStatePending || !results[1].ConnectionStatus.IsInvitedByMe {
		t.Fatalf("expected pending invite sent by caller, got %#v", results[1].ConnectionStatus)
	}
	if results[0].ConnectionsCount != 2 {
		t.Fatalf("expected connections count annotation, got %#v", results[0])
	}
}

func TestUserServiceSearchEmptyQuery(t *testing.T) {
	svc := NewUserService(noopUserRepo(), noopCircleRepo())
	results, err := svc.SearchUsers(context.Background(), uuid.New(), "", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results for empty query, got %d", len(results))
	}
}
