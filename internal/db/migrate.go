package db

import (
	"tradeflex/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Profile{},
		&models.Flex{},
		&models.CommunityPost{},
		&models.CommunityComment{},
		&models.OracleVote{},
		&models.Subscription{},
		&models.Notification{},
		&models.Follow{},
		&models.Referral{},
	)
}
