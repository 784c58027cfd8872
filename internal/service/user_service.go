package service

import (
	"context"
	"time"

	"tapcard/internal/models"
	"tapcard/internal/repository"
	"tapcard/internal/validation"

	"github.com/google/uuid"
)

// UserService provides profile and directory business logic.
type UserService struct {
	userRepo   repository.UserRepository
	circleRepo repository.CircleRepository
}

// UpdateProfileInput carries the editable profile fields. Nil pointers leave
// the corresponding field untouched.
type UpdateProfileInput struct {
	UserID   uuid.UUID
	Username *string
	Fullname *string
	Bio      *string
	DOB      *time.Time
}

// SearchResult is a directory entry annotated with the caller's connection state.
type SearchResult struct {
	User             models.PublicProfile `json:"user"`
	ConnectionStatus ConnectionStatus     `json:"connection_status"`
	ConnectionsCount int64                `json:"connections_count"`
}

// PublicProfileView is the public profile page payload.
type PublicProfileView struct {
	User             models.PublicProfile    `json:"user"`
	SocialLinks      []models.SocialLink     `json:"social_links"`
	PortfolioItems   []models.PortfolioItem  `json:"portfolio_items"`
	WorkExperiences  []models.WorkExperience `json:"work_experiences"`
	ConnectionsCount int64                   `json:"connections_count"`
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, circleRepo repository.CircleRepository) *UserService {
	return &UserService{userRepo: userRepo, circleRepo: circleRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// UpdateProfile validates and applies profile edits.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != user.Username {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByUsername(ctx, *in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewValidationError("Username already taken")
		}
		user.Username = *in.Username
	}
	if in.Fullname != nil {
		if err := validation.ValidateFullname(*in.Fullname); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Fullname = *in.Fullname
	}
	if in.Bio != nil {
		if err := validation.ValidateBio(*in.Bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Bio = *in.Bio
	}
	if in.DOB != nil {
		user.DOB = in.DOB
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetPublicProfile assembles the public card for a user.
func (s *UserService) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*PublicProfileView, error) {
	user, err := s.userRepo.GetByIDWithProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.circleRepo.CountConnections(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &PublicProfileView{
		User:             user.Public(),
		SocialLinks:      user.SocialLinks,
		PortfolioItems:   user.PortfolioItems,
		WorkExperiences:  user.WorkExperiences,
		ConnectionsCount: count,
	}, nil
}

// SearchUsers finds directory entries matching the query and annotates each
// with the caller's connection state. The caller is excluded from results.
func (s *UserService) SearchUsers(ctx context.Context, callerID uuid.UUID, query string, limit, offset int) ([]SearchResult, error) {
	if query == "" {
		return []SearchResult{}, nil
	}

	users, err := s.userRepo.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(users))
	for _, user := range users {
		if user.ID == callerID {
			continue
		}

		status := ConnectionStatus{State: ConnectionStateNone}
		circle, err := s.circleRepo.GetBetweenUsers(ctx, callerID, user.ID)
		if err != nil {
			return nil, err
		}
		if circle != nil {
			switch circle.Status {
			case models.CircleStatusAccepted:
				status.State = ConnectionStateConnected
			case models.CircleStatusPending:
				status.State = ConnectionStatePending
				status.IsInvitedByMe = circle.RequesterID == callerID
			}
		}

		count, err := s.circleRepo.CountConnections(ctx, user.ID)
		if err != nil {
			return nil, err
		}

		results = append(results, SearchResult{
			User:             user.Public(),
			ConnectionStatus: status,
			ConnectionsCount: count,
		})
	}
	return results, nil
}
