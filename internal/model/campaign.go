package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaskType 活动任务类型
type TaskType string

const (
	TaskTypeVisit TaskType = "VISIT" // 访问站点并输入验证码
	TaskTypeLink  TaskType = "LINK"  // 分享链接
	// TaskTypeMixedLegacy 历史数据残留, 对外展示为 VISIT, 提交时两类任务都接受
	TaskTypeMixedLegacy TaskType = "MIXED"
)

// Normalize 将历史 MIXED 归一为 VISIT
func (t TaskType) Normalize() TaskType {
	if t == TaskTypeMixedLegacy {
		return TaskTypeVisit
	}
	return t
}

// Network 钱包网络
type Network string

const (
	NetworkETH Network = "ETH"
	NetworkSOL Network = "SOL"
	NetworkBNB Network = "BNB"
	NetworkPOL Network = "POL"
)

// IsValidNetwork 检查网络标识是否在允许集合内
func IsValidNetwork(network string, supported []string) bool {
	for _, s := range supported {
		if network == s {
			return true
		}
	}
	return false
}

// Campaign 管理员创建的奖励活动
// 对应数据库表 campaigns
type Campaign struct {
	ID              int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug            string   `gorm:"type:varchar(220);uniqueIndex;not null" json:"slug"`
	Title           string   `gorm:"type:varchar(180);not null" json:"title"`
	Summary         string   `gorm:"type:varchar(300)" json:"summary"`
	LongDescription string   `gorm:"type:text" json:"long_description"`
	TaskType        TaskType `gorm:"type:varchar(12);not null;default:'VISIT'" json:"task_type"`

	ClientSiteDomain string `gorm:"type:varchar(180)" json:"client_site_domain"`
	Rules            string `gorm:"type:text" json:"rules"`

	// VISIT 流程: 验证码提示 + 实际验证码 (仅后台可见)
	CodeInstructions string `gorm:"type:text" json:"code_instructions"`
	VisitCode        string `gorm:"type:varchar(64)" json:"-"`

	// LINK 流程: SEO 关键词提示
	SEOKeywords string `gorm:"type:varchar(400)" json:"seo_keywords"`

	ImageURL   string `gorm:"type:varchar(500)" json:"image_url"`
	FaviconURL string `gorm:"type:varchar(500)" json:"favicon_url"`

	// 奖池与单任务奖励 (USDT)
	PoolUSDT   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"pool_usdt"`
	PayoutUSDT decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"payout_usdt"`
	Currency   Network         `gorm:"type:varchar(8);not null;default:'ETH'" json:"currency"`

	// 活动窗口 (仅日期粒度)
	Start time.Time `gorm:"type:date;not null" json:"start"`
	End   time.Time `gorm:"type:date;not null" json:"end"`

	// 空投参数 (公告侧边栏用)
	AirdropEnabled       bool            `gorm:"not null;default:false" json:"airdrop_enabled"`
	AirdropFirstN        int             `gorm:"type:int" json:"airdrop_first_n"`
	AirdropAmountPerUser decimal.Decimal `gorm:"type:decimal(18,8)" json:"airdrop_amount_per_user"`
	AirdropTokenSymbol   string          `gorm:"type:varchar(24)" json:"airdrop_token_symbol"`
	AirdropNetwork       string          `gorm:"type:varchar(48)" json:"airdrop_network"`
	AirdropNote          string          `gorm:"type:varchar(240)" json:"airdrop_note"`

	// 管理开关
	IsPublished bool `gorm:"not null;default:false;index" json:"is_published"`
	IsPaused    bool `gorm:"not null;default:false" json:"is_paused"`

	// 来源申请 (可空)
	SourceApplicationID *string `gorm:"type:varchar(36)" json:"source_application_id"`

	CreatedAt int64 `gorm:"type:bigint;not null;autoCreateTime:milli" json:"created_at"`
	UpdatedAt int64 `gorm:"type:bigint;not null;autoUpdateTime:milli" json:"updated_at"`
}

// TableName 返回表名
func (Campaign) TableName() string {
	return "campaigns"
}

// HasVisit 是否包含 VISIT 任务
func (c *Campaign) HasVisit() bool {
	return c.TaskType == TaskTypeVisit || c.TaskType == TaskTypeMixedLegacy
}

// HasLink 是否包含 LINK 任务
func (c *Campaign) HasLink() bool {
	return c.TaskType == TaskTypeLink || c.TaskType == TaskTypeMixedLegacy
}

// IsOpenNow 活动是否开放提交
// 纯函数: 已发布 且 未暂停 且 当日在 [start, end] 窗口内
// 必须在每次提交时重新求值, 管理状态随时可能变化
func (c *Campaign) IsOpenNow(now time.Time) bool {
	if !c.IsPublished || c.IsPaused {
		return false
	}
	today := dateOnly(now)
	return !today.Before(dateOnly(c.Start)) && !today.After(dateOnly(c.End))
}

// ClaimedPercent 已领取奖池百分比
// (已打款去重钱包数 × 单任务奖励) / 奖池, 取整 0..100
// 有进度但不足 1% 时显示 1, 避免 UI 一直停在 0
func (c *Campaign) ClaimedPercent(paidWallets int64) int {
	if c.PoolUSDT.IsZero() || c.PayoutUSDT.IsZero() || paidWallets <= 0 {
		return 0
	}

	claimed := decimal.NewFromInt(paidWallets).Mul(c.PayoutUSDT)
	pct := claimed.Div(c.PoolUSDT).Mul(decimal.NewFromInt(100))

	if pct.GreaterThan(decimal.Zero) && pct.LessThan(decimal.NewFromInt(1)) {
		return 1
	}

	n := int(pct.Round(0).IntPart())
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// dateOnly 截断到日期粒度 (UTC)
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
