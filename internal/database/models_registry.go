package database

import "tapcard/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Circle{},
		&models.SocialLink{},
		&models.PortfolioItem{},
		&models.WorkExperience{},
		&models.QRCode{},
		&models.AnalyticsEvent{},
	}
}
