package service

import (
	"context"

	"tapcard/internal/cache"
	"tapcard/internal/models"
	"tapcard/internal/observability"
	"tapcard/internal/repository"

	"github.com/google/uuid"
)

// ConnectionState describes the relationship between two users as seen from
// one side.
type ConnectionState string

const (
	ConnectionStateNone      ConnectionState = "none"
	ConnectionStatePending   ConnectionState = "pending"
	ConnectionStateConnected ConnectionState = "connected"
)

// ConnectionStatus is the answer to a status query between two users.
type ConnectionStatus struct {
	State         ConnectionState `json:"state"`
	IsInvitedByMe bool            `json:"is_invited_by_me"`
}

// PendingInvites groups pending circle invites by direction.
type PendingInvites struct {
	Received []models.Circle `json:"received"`
	Sent     []models.Circle `json:"sent"`
}

// CircleService provides the mutual-consent connection business logic:
// invites, accepts, rejects, removals and the derived queries.
type CircleService struct {
	circleRepo repository.CircleRepository
	userRepo   repository.UserRepository
}

// NewCircleService returns a new CircleService.
func NewCircleService(circleRepo repository.CircleRepository, userRepo repository.UserRepository) *CircleService {
	return &CircleService{
		circleRepo: circleRepo,
		userRepo:   userRepo,
	}
}

// Invite creates a pending circle invite from userID to targetUserID.
// A rejected row between the pair is replaced by a fresh pending invite.
func (s *CircleService) Invite(ctx context.Context, userID, targetUserID uuid.UUID) (*models.Circle, error) {
	if userID == targetUserID {
		return nil, models.NewSelfReferenceError()
	}

	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	existing, err := s.circleRepo.GetBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}

	fresh := &models.Circle{
		RequesterID: userID,
		ReceiverID:  targetUserID,
		Status:      models.CircleStatusPending,
	}

	if existing != nil {
		switch existing.Status {
		case models.CircleStatusAccepted:
			return nil, models.NewAlreadyConnectedError()
		case models.CircleStatusPending:
			if existing.RequesterID == userID {
				return nil, models.NewDuplicateInviteError()
			}
			return nil, models.NewReverseInvitePendingError()
		case models.CircleStatusRejected:
			// Re-invite after rejection: drop the rejected row and start over.
			if err := s.circleRepo.Replace(ctx, existing.ID, fresh); err != nil {
				return nil, err
			}
			observability.RecordCircleTransition("invite")
			return s.circleRepo.GetByID(ctx, fresh.ID)
		}
	}

	if err := s.circleRepo.Create(ctx, fresh); err != nil {
		return nil, err
	}

	observability.RecordCircleTransition("invite")
	return s.circleRepo.GetByID(ctx, fresh.ID)
}

// Accept transitions a pending invite from otherUserID to userID to accepted.
// Only the receiver of the invite may accept it.
func (s *CircleService) Accept(ctx context.Context, userID, otherUserID uuid.UUID) (*models.Circle, error) {
	circle, err := s.pendingReceivedFrom(ctx, userID, otherUserID)
	if err != nil {
		return nil, err
	}

	ok, err := s.circleRepo.UpdateStatusIfPending(ctx, circle.ID, models.CircleStatusAccepted)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost a race with a concurrent accept/reject.
		return nil, models.NewNoPendingInviteError()
	}

	cache.InvalidateCircle(ctx, userID, otherUserID)
	observability.RecordCircleTransition("accept")
	return s.circleRepo.GetByID(ctx, circle.ID)
}

// Reject transitions a pending invite from otherUserID to userID to rejected.
// The row is retained so repeated invites do not turn into spam; the rejected
// requester may still re-invite later (see Invite).
func (s *CircleService) Reject(ctx context.Context, userID, otherUserID uuid.UUID) (*models.Circle, error) {
	circle, err := s.pendingReceivedFrom(ctx, userID, otherUserID)
	if err != nil {
		return nil, err
	}

	ok, err := s.circleRepo.UpdateStatusIfPending(ctx, circle.ID, models.CircleStatusRejected)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewNoPendingInviteError()
	}

	observability.RecordCircleTransition("reject")
	return s.circleRepo.GetByID(ctx, circle.ID)
}

// pendingReceivedFrom finds the pending invite sent by otherUserID to userID.
func (s *CircleService) pendingReceivedFrom(ctx context.Context, userID, otherUserID uuid.UUID) (*models.Circle, error) {
	if userID == otherUserID {
		return nil, models.NewSelfReferenceError()
	}

	circle, err := s.circleRepo.GetBetweenUsers(ctx, userID, otherUserID)
	if err != nil {
		return nil, err
	}
	// Wrong direction, already resolved, or no row at all: same answer.
	if circle == nil || circle.Status != models.CircleStatusPending || circle.ReceiverID != userID {
		return nil, models.NewNoPendingInviteError()
	}
	return circle, nil
}

// Remove deletes the accepted connection between userID and otherUserID.
// Either party may remove it.
func (s *CircleService) Remove(ctx context.Context, userID, otherUserID uuid.UUID) error {
	if userID == otherUserID {
		return models.NewSelfReferenceError()
	}

	removed, err := s.circleRepo.DeleteAcceptedBetween(ctx, userID, otherUserID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotConnectedError()
	}

	cache.InvalidateCircle(ctx, userID, otherUserID)
	observability.RecordCircleTransition("remove")
	return nil
}

// Status returns the connection state between userID and otherUserID.
// A rejected row reads as none: rejections are invisible to the requester.
func (s *CircleService) Status(ctx context.Context, userID, otherUserID uuid.UUID) (*ConnectionStatus, error) {
	if _, err := s.userRepo.GetByID(ctx, otherUserID); err != nil {
		return nil, err
	}

	circle, err := s.circleRepo.GetBetweenUsers(ctx, userID, otherUserID)
	if err != nil {
		return nil, err
	}

	status := &ConnectionStatus{State: ConnectionStateNone}
	if circle == nil {
		return status, nil
	}

	switch circle.Status {
	case models.CircleStatusAccepted:
		status.State = ConnectionStateConnected
	case models.CircleStatusPending:
		status.State = ConnectionStatePending
		status.IsInvitedByMe = circle.RequesterID == userID
	}
	return status, nil
}

// Pending returns the user's pending invites grouped by direction.
func (s *CircleService) Pending(ctx context.Context, userID uuid.UUID) (*PendingInvites, error) {
	received, err := s.circleRepo.GetPendingReceived(ctx, userID)
	if err != nil {
		return nil, err
	}
	sent, err := s.circleRepo.GetPendingSent(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &PendingInvites{Received: received, Sent: sent}, nil
}

// Connections returns the users connected to the given user plus the total count.
func (s *CircleService) Connections(ctx context.Context, userID uuid.UUID) ([]models.User, int64, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}

	users, err := s.circleRepo.GetConnections(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return users, int64(len(users)), nil
}

// ConnectionsCount returns the number of accepted connections for the user.
// The count is cached briefly; transitions invalidate it for both parties.
func (s *CircleService) ConnectionsCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := cache.Aside(ctx, cache.ConnectionCountKey(userID), &count, cache.ConnectionCountTTL, func() error {
		c, err := s.circleRepo.CountConnections(ctx, userID)
		if err != nil {
			return err
		}
		count = c
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
