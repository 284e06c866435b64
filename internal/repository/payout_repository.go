package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/puzzlecollector/LinkPepper/internal/model"
)

var (
	// ErrPayoutAlreadyExists 该提交已有打款记录
	ErrPayoutAlreadyExists = errors.New("payout already exists")
	// ErrPayoutNotFound 打款记录不存在
	ErrPayoutNotFound = errors.New("payout not found")
)

// PayoutRepository 打款仓储接口
type PayoutRepository interface {
	// Create 创建打款记录
	// submission_id 唯一约束是唯一的并发防线, 冲突返回 ErrPayoutAlreadyExists
	Create(ctx context.Context, payout *model.Payout) error

	// GetBySubmissionID 按提交获取打款记录
	GetBySubmissionID(ctx context.Context, submissionID int64) (*model.Payout, error)

	// ListByCampaign 活动维度打款列表
	ListByCampaign(ctx context.Context, campaignID int64, p *Pagination) ([]*model.Payout, error)

	// SumByCampaign 活动累计打款金额
	SumByCampaign(ctx context.Context, campaignID int64) (decimal.Decimal, error)
}

// payoutRepository 打款仓储实现
type payoutRepository struct {
	*Repository
}

// NewPayoutRepository 创建打款仓储
func NewPayoutRepository(db *gorm.DB) PayoutRepository {
	return &payoutRepository{Repository: NewRepository(db)}
}

// Create 创建打款记录
func (r *payoutRepository) Create(ctx context.Context, payout *model.Payout) error {
	result := r.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "submission_id"}},
		DoNothing: true,
	}).Create(payout)

	if result.Error != nil {
		return fmt.Errorf("create payout failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPayoutAlreadyExists
	}
	return nil
}

// GetBySubmissionID 按提交获取打款记录
func (r *payoutRepository) GetBySubmissionID(ctx context.Context, submissionID int64) (*model.Payout, error) {
	var payout model.Payout
	result := r.DB(ctx).Where("submission_id = ?", submissionID).First(&payout)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPayoutNotFound
		}
		return nil, fmt.Errorf("get payout failed: %w", result.Error)
	}
	return &payout, nil
}

// ListByCampaign 活动维度打款列表
func (r *payoutRepository) ListByCampaign(ctx context.Context, campaignID int64, p *Pagination) ([]*model.Payout, error) {
	query := r.DB(ctx).Model(&model.Payout{})
	if campaignID > 0 {
		query = query.Where("campaign_id = ?", campaignID)
	}

	if err := query.Count(&p.Total).Error; err != nil {
		return nil, fmt.Errorf("count payouts failed: %w", err)
	}

	var payouts []*model.Payout
	result := query.Order("id DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&payouts)

	if result.Error != nil {
		return nil, fmt.Errorf("list payouts failed: %w", result.Error)
	}
	return payouts, nil
}

// SumByCampaign 活动累计打款金额
func (r *payoutRepository) SumByCampaign(ctx context.Context, campaignID int64) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	result := r.DB(ctx).Model(&model.Payout{}).
		Select("SUM(amount_usdt)").
		Where("campaign_id = ?", campaignID).
		Scan(&sum)

	if result.Error != nil {
		return decimal.Zero, fmt.Errorf("sum payouts failed: %w", result.Error)
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
