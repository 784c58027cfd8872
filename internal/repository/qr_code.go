package repository

import (
	"context"
	"errors"

	"tapcard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QRCodeRepository defines persistence operations for profile QR codes.
type QRCodeRepository interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.QRCode, error)
	Upsert(ctx context.Context, code *models.QRCode) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type qrCodeRepository struct {
	db *gorm.DB
}

// NewQRCodeRepository returns a new QRCodeRepository implementation.
func NewQRCodeRepository(db *gorm.DB) QRCodeRepository {
	return &qrCodeRepository{db: db}
}

// GetByUser returns the stored QR code for the user, or (nil, nil) when none
// has been generated yet.
func (r *qrCodeRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*models.QRCode, error) {
	var code models.QRCode
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &code, nil
}

// Upsert creates or refreshes the single QR code row per user.
func (r *qrCodeRepository) Upsert(ctx context.Context, code *models.QRCode) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.QRCode
		err := tx.Where("user_id = ?", code.UserID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(code).Error
		}
		if err != nil {
			return err
		}
		existing.QRCodeURL = code.QRCodeURL
		existing.LastGeneratedAt = code.LastGeneratedAt
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*code = existing
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *qrCodeRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.QRCode{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
