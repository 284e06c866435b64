package app

import (
	"gorm.io/gorm"

	"github.com/puzzlecollector/LinkPepper/internal/model"
)

// AutoMigrate 自动执行数据库迁移
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.WalletUser{},
		&model.Campaign{},
		&model.Submission{},
		&model.Payout{},
		&model.CampaignApplication{},
		&model.Event{},
		&model.Admin{},
		&model.AuditLog{},
	)
}
