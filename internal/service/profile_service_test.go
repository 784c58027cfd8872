package service

import (
	"context"
	"testing"
	"time"

	"tapcard/internal/models"

	"github.com/google/uuid"
)

type socialLinkRepoStub struct {
	createFn    func(context.Context, *models.SocialLink) error
	getByIDFn   func(context.Context, uuid.UUID) (*models.SocialLink, error)
	getByUserFn func(context.Context, uuid.UUID) ([]models.SocialLink, error)
	updateFn    func(context.Context, *models.SocialLink) error
	deleteFn    func(context.Context, uuid.UUID) error
}

func (s *socialLinkRepoStub) Create(ctx context.Context, link *models.SocialLink) error {
	return s.createFn(ctx, link)
}
func (s *socialLinkRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.SocialLink, error) {
	return s.getByIDFn(ctx, id)
}
func (s *socialLinkRepoStub) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.SocialLink, error) {
	return s.getByUserFn(ctx, userID)
}
func (s *socialLinkRepoStub) Update(ctx context.Context, link *models.SocialLink) error {
	return s.updateFn(ctx, link)
}
func (s *socialLinkRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func noopSocialLinkRepo() *socialLinkRepoStub {
	return &socialLinkRepoStub{
		createFn: func(context.Context, *models.SocialLink) error { return nil },
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.SocialLink, error) {
			return &models.SocialLink{ID: id}, nil
		},
		getByUserFn: func(context.Context, uuid.UUID) ([]models.SocialLink, error) { return nil, nil },
		updateFn:    func(context.Context, *models.SocialLink) error { return nil },
		deleteFn:    func(context.Context, uuid.UUID) error { return nil },
	}
}

type portfolioRepoStub struct {
	createFn    func(context.Context, *models.PortfolioItem) error
	getByIDFn   func(context.Context, uuid.UUID) (*models.PortfolioItem, error)
	getByUserFn func(context.Context, uuid.UUID) ([]models.PortfolioItem, error)
	updateFn    func(context.Context, *models.PortfolioItem) error
	deleteFn    func(context.Context, uuid.UUID) error
}

func (s *portfolioRepoStub) Create(ctx context.Context, item *models.PortfolioItem) error {
	return s.createFn(ctx, item)
}
func (s *portfolioRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.PortfolioItem, error) {
	return s.getByIDFn(ctx, id)
}
func (s *portfolioRepoStub) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.PortfolioItem, error) {
	return s.getByUserFn(ctx, userID)
}
func (s *portfolioRepoStub) Update(ctx context.Context, item *models.PortfolioItem) error {
	return s.updateFn(ctx, item)
}
func (s *portfolioRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func noopPortfolioRepo() *portfolioRepoStub {
	return &portfolioRepoStub{
		createFn: func(context.Context, *models.PortfolioItem) error { return nil },
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.PortfolioItem, error) {
			return &models.PortfolioItem{ID: id}, nil
		},
		getByUserFn: func(context.Context, uuid.UUID) ([]models.PortfolioItem, error) { return nil, nil },
		updateFn:    func(context.Context, *models.PortfolioItem) error { return nil },
		deleteFn:    func(context.Context, uuid.UUID) error { return nil },
	}
}

type workExperienceRepoStub struct {
	createFn    func(context.Context, *models.WorkExperience) error
	getByIDFn   func(context.Context, uuid.UUID) (*models.WorkExperience, error)
	getByUserFn func(context.Context, uuid.UUID) ([]models.WorkExperience, error)
	updateFn    func(context.Context, *models.WorkExperience) error
	deleteFn    func(context.Context, uuid.UUID) error
}

func (s *workExperienceRepoStub) Create(ctx context.Context, entry *models.WorkExperience) error {
	return s.createFn(ctx, entry)
}
func (s *workExperienceRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.WorkExperience, error) {
	return s.getByIDFn(ctx, id)
}
func (s *workExperienceRepoStub) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.WorkExperience, error) {
	return s.getByUserFn(ctx, userID)
}
func (s *workExperienceRepoStub) Update(ctx context.Context, entry *models.WorkExperience) error {
	return s.updateFn(ctx, entry)
}
func (s *workExperienceRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func noopWorkExperienceRepo() *workExperienceRepoStub {
	return &workExperienceRepoStub{
		createFn: func(context.Context, *models.WorkExperience) error { return nil },
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.WorkExperience, error) {
			return &models.WorkExperience{ID: id}, nil
		},
		getByUserFn: func(context.Context, uuid.UUID) ([]models.WorkExperience, error) { return nil, nil },
		updateFn:    func(context.Context, *models.WorkExperience) error { return nil },
		deleteFn:    func(context.Context, uuid.UUID) error { return nil },
	}
}

func newProfileService(links *socialLinkRepoStub, items *portfolioRepoStub, work *workExperienceRepoStub) *ProfileService {
	return NewProfileService(links, items, work, noopUserRepo())
}

func TestProfileServiceCreateSocialLinkValidation(t *testing.T) {
	me := uuid.New()
	svc := newProfileService(noopSocialLinkRepo(), noopPortfolioRepo(), noopWorkExperienceRepo())

	tests := []struct {
		name string
		in   SocialLinkInput
	}{
		{"Missing platform", SocialLinkInput{LinkURL: "https://example.com/me"}},
		{"Missing url", SocialLinkInput{PlatformName: "github"}},
		{"Bad scheme", SocialLinkInput{PlatformName: "github", LinkURL: "ftp://example.com/me"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSocialLink(context.Background(), me, tt.in)
			assertCode(t, err, models.CodeValidation)
		})
	}
}

func TestProfileServiceCreateSocialLink(t *testing.T) {
	me := uuid.New()
	links := noopSocialLinkRepo()
	var created *models.SocialLink
	links.createFn = func(_ context.Context, l *models.SocialLink) error {
		created = l
		return nil
	}

	svc := newProfileService(links, noopPortfolioRepo(), noopWorkExperienceRepo())
	_, err := svc.CreateSocialLink(context.Background(), me, SocialLinkInput{
		PlatformName: "  github ",
		LinkURL:      "https://github.com/me",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created.UserID != me || created.PlatformName != "github" {
		t.Fatalf("unexpected created link: %#v", created)
	}
}

func TestProfileServiceForeignRowsReadAsNotFound(t *testing.T) {
	me, other := uuid.New(), uuid.New()

	links := noopSocialLinkRepo()
	links.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.SocialLink, error) {
		return &models.SocialLink{ID: id, UserID: other}, nil
	}
	items := noopPortfolioRepo()
	items.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.PortfolioItem, error) {
		return &models.PortfolioItem{ID: id, UserID: other}, nil
	}
	work := noopWorkExperienceRepo()
	work.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.WorkExperience, error) {
		return &models.WorkExperience{ID: id, UserID: other}, nil
	}

	svc := newProfileService(links, items, work)
	ctx := context.Background()

	assertCode(t, svc.DeleteSocialLink(ctx, me, uuid.New()), models.CodeNotFound)
	assertCode(t, svc.DeletePortfolioItem(ctx, me, uuid.New()), models.CodeNotFound)
	assertCode(t, svc.DeleteWorkExperience(ctx, me, uuid.New()), models.CodeNotFound)

	_, err := svc.UpdateSocialLink(ctx, me, uuid.New(), SocialLinkInput{PlatformName: "x", LinkURL: "https://x.com/me"})
	assertCode(t, err, models.CodeNotFound)
}

func TestProfileServiceUpdatePortfolioItem(t *testing.T) {
	me := uuid.New()
	items := noopPortfolioRepo()
	items.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.PortfolioItem, error) {
		return &models.PortfolioItem{ID: id, UserID: me, Title: "old"}, nil
	}
	var saved *models.PortfolioItem
	items.updateFn = func(_ context.Context, item *models.PortfolioItem) error {
		saved = item
		return nil
	}

	svc := newProfileService(noopSocialLinkRepo(), items, noopWorkExperienceRepo())
	got, err := svc.UpdatePortfolioItem(context.Background(), me, uuid.New(), PortfolioInput{
		Title:       "New title",
		Description: "desc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil || saved.Title != "New title" || got.Description != "desc" {
		t.Fatalf("unexpected saved item: %#v", saved)
	}
}

func TestProfileServiceWorkExperienceDateOrder(t *testing.T) {
	me := uuid.New()
	svc := newProfileService(noopSocialLinkRepo(), noopPortfolioRepo(), noopWorkExperienceRepo())

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(-1, 0, 0)
	_, err := svc.CreateWorkExperience(context.Background(), me, WorkExperienceInput{
		CompanyName: "Acme",
		Role:        "Engineer",
		StartDate:   start,
		EndDate:     &end,
	})
	assertCode(t, err, models.CodeValidation)
}

func TestProfileServiceCreateWorkExperienceCurrentPosition(t *testing.T) {
	me := uuid.New()
	work := noopWorkExperienceRepo()
	var created *models.WorkExperience
	work.createFn = func(_ context.Context, entry *models.WorkExperience) error {
		created = entry
		return nil
	}

	svc := newProfileService(noopSocialLinkRepo(), noopPortfolioRepo(), work)
	_, err := svc.CreateWorkExperience(context.Background(), me, WorkExperienceInput{
		CompanyName: "Acme",
		Role:        "Engineer",
		StartDate:   time.Date(2023, 1, 9, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created.EndDate != nil {
		t.Fatalf("expected open-ended entry, got %#v", created)
	}
}
