package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"tapcard/internal/cache"
	"tapcard/internal/models"
	"tapcard/internal/observability"
	"tapcard/internal/repository"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// QRService generates and serves profile QR codes.
type QRService struct {
	qrRepo         repository.QRCodeRepository
	userRepo       repository.UserRepository
	profileBaseURL string
}

// NewQRService returns a new QRService. profileBaseURL is the public frontend
// base for profile pages, e.g. https://tapcard.app/users.
func NewQRService(qrRepo repository.QRCodeRepository, userRepo repository.UserRepository, profileBaseURL string) *QRService {
	return &QRService{qrRepo: qrRepo, userRepo: userRepo, profileBaseURL: profileBaseURL}
}

// ProfileURL returns the public profile link encoded into the QR image.
func (s *QRService) ProfileURL(username string) string {
	return fmt.Sprintf("%s/%s", s.profileBaseURL, username)
}

// Generate renders the user's profile link as a PNG QR code and stores it as
// a base64 data URL. Regenerating replaces the stored image.
func (s *QRService) Generate(ctx context.Context, userID uuid.UUID) (*models.QRCode, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(s.ProfileURL(user.Username), qrcode.Medium, 256)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	code := &models.QRCode{
		UserID:          userID,
		QRCodeURL:       "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		LastGeneratedAt: time.Now().UTC(),
	}
	if err := s.qrRepo.Upsert(ctx, code); err != nil {
		return nil, err
	}

	observability.QRGenerationsTotal.Inc()
	cache.Invalidate(ctx, cache.QRCodeKey(userID))

	return code, nil
}

// Get returns the user's stored QR code, generating one on first access.
func (s *QRService) Get(ctx context.Context, userID uuid.UUID) (*models.QRCode, error) {
	var code models.QRCode
	err := cache.Aside(ctx, cache.QRCodeKey(userID), &code, cache.QRCodeTTL, func() error {
		existing, err := s.qrRepo.GetByUser(ctx, userID)
		if err != nil {
			return err
		}
		if existing == nil {
			generated, err := s.Generate(ctx, userID)
			if err != nil {
				return err
			}
			code = *generated
			return nil
		}
		code = *existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &code, nil
}
