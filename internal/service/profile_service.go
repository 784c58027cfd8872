package service

import (
	"context"
	"strings"
	"time"

	"tapcard/internal/cache"
	"tapcard/internal/models"
	"tapcard/internal/repository"
	"tapcard/internal/validation"

	"github.com/google/uuid"
)

// ProfileService manages the owned sub-resources of a profile card:
// social links, portfolio items and work experience. Every mutation checks
// that the row belongs to the caller; foreign rows read as not found.
type ProfileService struct {
	socialLinkRepo repository.SocialLinkRepository
	portfolioRepo  repository.PortfolioRepository
	workRepo       repository.WorkExperienceRepository
	userRepo       repository.UserRepository
}

// NewProfileService returns a new ProfileService.
func NewProfileService(
	socialLinkRepo repository.SocialLinkRepository,
	portfolioRepo repository.PortfolioRepository,
	workRepo repository.WorkExperienceRepository,
	userRepo repository.UserRepository,
) *ProfileService {
	return &ProfileService{
		socialLinkRepo: socialLinkRepo,
		portfolioRepo:  portfolioRepo,
		workRepo:       workRepo,
		userRepo:       userRepo,
	}
}

func (s *ProfileService) invalidateProfile(ctx context.Context, userID uuid.UUID) {
	if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
		cache.InvalidateUser(ctx, userID, user.Username)
	}
}

// Social links

type SocialLinkInput struct {
	PlatformName string `json:"platform_name"`
	LinkURL      string `json:"link_url"`
}

func (in SocialLinkInput) validate() error {
	if strings.TrimSpace(in.PlatformName) == "" {
		return models.NewValidationError("Platform name is required")
	}
	if len(in.PlatformName) > 50 {
		return models.NewValidationError("Platform name must be at most 50 characters")
	}
	if err := validation.ValidateLinkURL(in.LinkURL); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

func (s *ProfileService) ListSocialLinks(ctx context.Context, userID uuid.UUID) ([]models.SocialLink, error) {
	return s.socialLinkRepo.GetByUser(ctx, userID)
}

func (s *ProfileService) CreateSocialLink(ctx context.Context, userID uuid.UUID, in SocialLinkInput) (*models.SocialLink, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	link := &models.SocialLink{
		UserID:       userID,
		PlatformName: strings.TrimSpace(in.PlatformName),
		LinkURL:      in.LinkURL,
	}
	if err := s.socialLinkRepo.Create(ctx, link); err != nil {
		return nil, err
	}
	s.invalidateProfile(ctx, userID)
	return link, nil
}

func (s *ProfileService) UpdateSocialLink(ctx context.Context, userID, linkID uuid.UUID, in SocialLinkInput) (*models.SocialLink, error) {
	link, err := s.socialLinkRepo.GetByID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if link.UserID != userID {
		return nil, models.NewNotFoundError("SocialLink", linkID)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	link.PlatformName = strings.TrimSpace(in.PlatformName)
	link.LinkURL = in.LinkURL
	if err := s.socialLinkRepo.Update(ctx, link); err != nil {
		return nil, err
	}
	s.invalidateProfile(ctx, userID)
	return link, nil
}

func (s *ProfileService) DeleteSocialLink(ctx context.Context, userID, linkID uuid.UUID) error {
	link, err := s.socialLinkRepo.GetByID(ctx, linkID)
	if err != nil {
		return err
	}
	if link.UserID != userID {
		return models.NewNotFoundError("SocialLink", linkID)
	}
	if err := s.socialLinkRepo.Delete(ctx, linkID); err != nil {
		return err
	}
	s.invalidateProfile(ctx, userID)
	return nil
}

// Portfolio items

type PortfolioInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	MediaURL    string `json:"media_url"`
}

func (in PortfolioInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(in.Title) > 200 {
		return models.NewValidationError("Title must be at most 200 characters")
	}
	if len(in.Description) > 2000 {
		return models.NewValidationError("Description must be at most 2000 characters")
	}
	if in.MediaURL != "" {
		if err := validation.ValidateLinkURL(in.MediaURL); err != nil {
			return models.NewValidationError(err.Error())
		}
	}
	return nil
}

func (s *ProfileService) ListPortfolioItems(ctx context.Context, userID uuid.UUID) ([]models.PortfolioItem, error) {
	return s.portfolioRepo.GetByUser(ctx, userID)
}

func (s *ProfileService) CreatePortfolioItem(ctx context.Context, userID uuid.UUID, in PortfolioInput) (*models.PortfolioItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	item := &models.PortfolioItem{
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		MediaURL:    in.MediaURL,
	}
	if err := s.portfolioRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.invalidateProfile(ctx, userID)
	return item, nil
}

func (s *ProfileService) UpdatePortfolioItem(ctx context.Context, userID, itemID uuid.UUID, in PortfolioInput) (*models.PortfolioItem, error) {
	item, err := s.portfolioRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, models.NewNotFoundError("PortfolioItem", itemID)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	item.Title = strings.TrimSpace(in.Title)
	item.Description = in.Description
	item.MediaURL = in.MediaURL
	if err := s.portfolioRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.invalidateProfile(ctx, userID)
	return item, nil
}

func (s *ProfileService) DeletePortfolioItem(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.portfolioRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return models.NewNotFoundError("PortfolioItem", itemID)
	}
	if err := s.portfolioRepo.Delete(ctx, itemID); err != nil {
		return err
	}
	s.invalidateProfile(ctx, userID)
	return nil
}

// Work experience

type WorkExperienceInput struct {
	CompanyName string     `json:"company_name"`
	Role        string     `json:"role"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description string     `json:"description"`
}

func (in WorkExperienceInput) validate() error {
	if strings.TrimSpace(in.CompanyName) == "" {
		return models.NewValidationError("Company name is required")
	}
	if strings.TrimSpace(in.Role) == "" {
		return models.NewValidationError("Role is required")
	}
	if in.StartDate.IsZero() {
		return models.NewValidationError("Start date is required")
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return models.NewValidationError("End date must be after start date")
	}
	if len(in.Description) > 2000 {
		return models.NewValidationError("Description must be at most 2000 characters")
	}
	return nil
}

func (s *ProfileService) ListWorkExperiences(ctx context.Context, userID uuid.UUID) ([]models.WorkExperience, error) {
	return s.workRepo.GetByUser(ctx, userID)
}

func (s *ProfileService) CreateWorkExperience(ctx context.Context, userID uuid.UUID, in WorkExperienceInput) (*models.WorkExperience, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	entry := &models.WorkExperience{
		UserID:      userID,
		CompanyName: strings.TrimSpace(in.CompanyName),
		Role:        strings.TrimSpace(in.Role),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Description: in.Description,
	}
	if err := s.workRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.invalidateProfile(ctx, userID)
	return entry, nil
}

func (s *ProfileService) UpdateWorkExperience(ctx context.Context, userID, entryID uuid.UUID, in WorkExperienceInput) (*models.WorkExperience, error) {
	entry, err := s.workRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, models.NewNotFoundError("WorkExperience", entryID)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	entry.CompanyName = strings.TrimSpace(in.CompanyName)
	entry.Role = strings.TrimSpace(in.Role)
	entry.StartDate = in.StartDate
	entry.EndDate = in.EndDate
	entry.Description = in.Description
	if err := s.workRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	s.invalidateProfile(ctx, userID)
	return entry, nil
}

func (s *ProfileService) DeleteWorkExperience(ctx context.Context, userID, entryID uuid.UUID) error {
	entry, err := s.workRepo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return models.NewNotFoundError("WorkExperience", entryID)
	}
	if err := s.workRepo.Delete(ctx, entryID); err != nil {
		return err
	}
	s.invalidateProfile(ctx, userID)
	return nil
}
