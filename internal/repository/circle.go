package repository

import (
	"context"
	"errors"

	"tapcard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CircleRepository defines the interface for circle connection data operations
type CircleRepository interface {
	Create(ctx context.Context, circle *models.Circle) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Circle, error)
	GetBetweenUsers(ctx context.Context, userID1, userID2 uuid.UUID) (*models.Circle, error)
	UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status models.CircleStatus) (bool, error)
	Replace(ctx context.Context, oldID uuid.UUID, fresh *models.Circle) error
	DeleteAcceptedBetween(ctx context.Context, userID1, userID2 uuid.UUID) (bool, error)
	GetConnections(ctx context.Context, userID uuid.UUID) ([]models.User, error)
	GetPendingReceived(ctx context.Context, userID uuid.UUID) ([]models.Circle, error)
	GetPendingSent(ctx context.Context, userID uuid.UUID) ([]models.Circle, error)
	CountConnections(ctx context.Context, userID uuid.UUID) (int64, error)
	CountPendingReceived(ctx context.Context, userID uuid.UUID) (int64, error)
}

// circleRepository implements CircleRepository
type circleRepository struct {
	db *gorm.DB
}

// NewCircleRepository creates a new circle repository
func NewCircleRepository(db *gorm.DB) CircleRepository {
	return &circleRepository{db: db}
}

// Create inserts a new circle row. The unique index on pair_key turns a
// concurrent double-invite into a duplicate invite error instead of two rows.
func (r *circleRepository) Create(ctx context.Context, circle *models.Circle) error {
	if err := r.db.WithContext(ctx).Create(circle).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateInviteError()
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *circleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Circle, error) {
	var circle models.Circle
	if err := r.db.WithContext(ctx).Preload("Requester").Preload("Receiver").First(&circle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Circle", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &circle, nil
}

// GetBetweenUsers returns the circle row between two users regardless of
// direction, or (nil, nil) when none exists.
func (r *circleRepository) GetBetweenUsers(ctx context.Context, userID1, userID2 uuid.UUID) (*models.Circle, error) {
	var circle models.Circle
	if err := r.db.WithContext(ctx).
		Where("pair_key = ?", models.PairKeyFor(userID1, userID2)).
		Preload("Requester").
		Preload("Receiver").
		First(&circle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &circle, nil
}

// UpdateStatusIfPending transitions a pending circle to the given status.
// Returns false when the row was not pending anymore (or gone), so a
// concurrent accept/reject loses cleanly instead of overwriting.
func (r *circleRepository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status models.CircleStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Circle{}).
		Where("id = ? AND status = ?", id, models.CircleStatusPending).
		Update("status", status)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Replace atomically deletes the old circle row and inserts a fresh one.
// Used to re-invite after a rejection so the new invite gets its own
// direction and timestamps.
func (r *circleRepository) Replace(ctx context.Context, oldID uuid.UUID, fresh *models.Circle) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Circle{}, "id = ?", oldID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(fresh).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Circle", oldID)
		}
		if isUniqueConstraintError(err) {
			return models.NewDuplicateInviteError()
		}
		return models.NewInternalError(err)
	}
	return nil
}

// DeleteAcceptedBetween removes an accepted connection between two users.
// Returns false when no accepted connection existed.
func (r *circleRepository) DeleteAcceptedBetween(ctx context.Context, userID1, userID2 uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("pair_key = ? AND status = ?", models.PairKeyFor(userID1, userID2), models.CircleStatusAccepted).
		Delete(&models.Circle{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// GetConnections returns the users on the other side of each accepted circle.
func (r *circleRepository) GetConnections(ctx context.Context, userID uuid.UUID) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN circles c ON (users.id = c.requester_id OR users.id = c.receiver_id)").
		Where("c.status = ? AND (c.requester_id = ? OR c.receiver_id = ?) AND users.id != ?",
			models.CircleStatusAccepted, userID, userID, userID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *circleRepository) GetPendingReceived(ctx context.Context, userID uuid.UUID) ([]models.Circle, error) {
	var circles []models.Circle
	if err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND status = ?", userID, models.CircleStatusPending).
		Preload("Requester").
		Preload("Receiver").
		Order("created_at DESC").
		Find(&circles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return circles, nil
}

func (r *circleRepository) GetPendingSent(ctx context.Context, userID uuid.UUID) ([]models.Circle, error) {
	var circles []models.Circle
	if err := r.db.WithContext(ctx).
		Where("requester_id = ? AND status = ?", userID, models.CircleStatusPending).
		Preload("Requester").
		Preload("Receiver").
		Order("created_at DESC").
		Find(&circles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return circles, nil
}

func (r *circleRepository) CountConnections(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Circle{}).
		Where("status = ? AND (requester_id = ? OR receiver_id = ?)",
			models.CircleStatusAccepted, userID, userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *circleRepository) CountPendingReceived(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Circle{}).
		Where("receiver_id = ? AND status = ?", userID, models.CircleStatusPending).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
