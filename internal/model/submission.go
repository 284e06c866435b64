package model

// SubmissionStatus 提交审核状态
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "PENDING"  // 待审核
	SubmissionStatusApproved SubmissionStatus = "APPROVED" // 审核通过
	SubmissionStatusRejected SubmissionStatus = "REJECTED" // 审核拒绝 (终态)
	SubmissionStatusPaid     SubmissionStatus = "PAID"     // 已打款 (终态)
)

// IsTerminal 判断是否为终态
func (s SubmissionStatus) IsTerminal() bool {
	return s == SubmissionStatusRejected || s == SubmissionStatusPaid
}

// Submission 用户任务提交
// 每个 (campaign, wallet_address) 至多一条, 重复提交静默忽略
// 对应数据库表 submissions
type Submission struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CampaignID int64 `gorm:"not null;uniqueIndex:uk_campaign_wallet;index:idx_campaign_status" json:"campaign_id"`

	// 钱包用户 (登录提交时必填)
	UserID *int64 `gorm:"index" json:"user_id"`

	WalletAddress string  `gorm:"type:varchar(128);not null;uniqueIndex:uk_campaign_wallet;index" json:"wallet_address"`
	Network       Network `gorm:"type:varchar(8);not null" json:"network"`

	// 两种任务载荷, 按活动 task_type 只填其一:
	// LINK
	PostURL string `gorm:"type:varchar(500)" json:"post_url"`
	Comment string `gorm:"type:text" json:"comment"`
	// VISIT
	VisitedURL  string `gorm:"type:varchar(500)" json:"visited_url"`
	CodeEntered string `gorm:"type:varchar(64)" json:"code_entered"`

	// 审核字段
	Status       SubmissionStatus `gorm:"type:varchar(12);not null;default:'PENDING';index:idx_campaign_status" json:"status"`
	ProofScore   *int             `gorm:"type:smallint" json:"proof_score"`
	ReviewerNote string           `gorm:"type:text" json:"reviewer_note"`
	AdminComment string           `gorm:"type:text" json:"admin_comment"`
	ReviewedBy   *int64           `gorm:"type:bigint" json:"reviewed_by"`
	ReviewedAt   int64            `gorm:"type:bigint" json:"reviewed_at"`

	// 快捷过滤开关
	IsApproved bool `gorm:"not null;default:false" json:"is_approved"`
	IsPaid     bool `gorm:"not null;default:false" json:"is_paid"`

	CreatedAt int64 `gorm:"type:bigint;not null;autoCreateTime:milli" json:"created_at"`
}

// TableName 返回表名
func (Submission) TableName() string {
	return "submissions"
}
