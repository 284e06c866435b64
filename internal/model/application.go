package model

import "github.com/shopspring/decimal"

// CampaignApplication 客户活动申请 (来自 /rewards/apply)
// 管理员审阅后转为正式 Campaign
// 对应数据库表 campaign_applications
type CampaignApplication struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"` // UUID

	Email string `gorm:"type:varchar(254);not null" json:"email"`
	Phone string `gorm:"type:varchar(64);not null" json:"phone"`

	Country            string `gorm:"type:varchar(64)" json:"country"`
	CampaignTitle      string `gorm:"type:varchar(180)" json:"campaign_title"`
	WebsiteURL         string `gorm:"type:varchar(500)" json:"website_url"`
	WebsiteDescription string `gorm:"type:text" json:"website_description"`

	// 申请的任务类型 (多选框)
	WantsVisit bool `gorm:"not null;default:false" json:"wants_visit"`
	WantsLink  bool `gorm:"not null;default:true" json:"wants_link"`

	// VISIT 专用
	VisitCode string `gorm:"type:varchar(64)" json:"visit_code"`

	// LINK SEO 专用
	ExpectedReviewKeywords string `gorm:"type:varchar(400)" json:"expected_review_keywords"`
	CurrentSEOKeywords     string `gorm:"type:varchar(400)" json:"current_seo_keywords"`

	RewardPoolUSDT    decimal.Decimal `gorm:"type:decimal(12,2)" json:"reward_pool_usdt"`
	PayoutPerTaskUSDT decimal.Decimal `gorm:"type:decimal(12,2)" json:"payout_per_task_usdt"`
	Currency          Network         `gorm:"type:varchar(8);default:'ETH'" json:"currency"`

	StartDate *string `gorm:"type:varchar(10)" json:"start_date"` // YYYY-MM-DD
	EndDate   *string `gorm:"type:varchar(10)" json:"end_date"`

	// 已处理标记: 管理员回复或转为 Campaign 后置位
	Handled bool `gorm:"not null;default:false;index" json:"handled"`

	CreatedAt int64 `gorm:"type:bigint;not null;autoCreateTime:milli" json:"created_at"`
}

// TableName 返回表名
func (CampaignApplication) TableName() string {
	return "campaign_applications"
}
