package model

import "github.com/shopspring/decimal"

// Payout 打款台账
// 管理员手动转账后登记, 与提交一一对应
// submission_id 上的唯一约束是 "一笔提交至多一次打款" 的唯一正确性机制,
// 并发登记时靠它而不是先查后插
// 对应数据库表 payouts
type Payout struct {
	ID           int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	SubmissionID int64 `gorm:"not null;uniqueIndex:uk_payout_submission" json:"submission_id"`
	CampaignID   int64 `gorm:"not null;index" json:"campaign_id"`

	AmountUSDT  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount_usdt"`
	TokenSymbol string          `gorm:"type:varchar(16);not null;default:'USDT'" json:"token_symbol"`
	Network     Network         `gorm:"type:varchar(8);not null" json:"network"`
	TxHash      string          `gorm:"type:varchar(120)" json:"tx_hash"`

	PaidAt int64  `gorm:"type:bigint;not null;index" json:"paid_at"` // 毫秒
	PaidBy int64  `gorm:"type:bigint" json:"paid_by"`                // 后台管理员 ID
	Note   string `gorm:"type:varchar(240)" json:"note"`
}

// TableName 返回表名
func (Payout) TableName() string {
	return "payouts"
}
