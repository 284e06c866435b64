package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/puzzlecollector/LinkPepper/internal/model"
)

var (
	// ErrCampaignNotFound 活动不存在
	ErrCampaignNotFound = errors.New("campaign not found")
	// ErrSlugTaken slug 已被占用
	ErrSlugTaken = errors.New("campaign slug already taken")
)

// CampaignRepository 活动仓储接口
type CampaignRepository interface {
	// Create 创建活动, slug 冲突返回 ErrSlugTaken
	Create(ctx context.Context, campaign *model.Campaign) error

	// Update 按主键全量更新可编辑字段
	Update(ctx context.Context, campaign *model.Campaign) error

	// GetByID 按主键获取活动
	GetByID(ctx context.Context, id int64) (*model.Campaign, error)

	// GetBySlug 按 slug 获取活动
	GetBySlug(ctx context.Context, slug string) (*model.Campaign, error)

	// SlugExists 检查 slug 是否已存在
	SlugExists(ctx context.Context, slug string) (bool, error)

	// ListPublished 列出已发布活动, 按主键倒序
	ListPublished(ctx context.Context, p *Pagination) ([]*model.Campaign, error)

	// ListAll 后台全量列表, 按主键倒序
	ListAll(ctx context.Context, p *Pagination) ([]*model.Campaign, error)

	// SetPublished 切换发布状态
	SetPublished(ctx context.Context, id int64, published bool) error

	// SetPaused 切换暂停状态
	SetPaused(ctx context.Context, id int64, paused bool) error

	// Delete 删除活动
	Delete(ctx context.Context, id int64) error

	// CountParticipants 统计活动提交数 (唯一约束保证一钱包一条)
	CountParticipants(ctx context.Context, campaignID int64) (int64, error)

	// CountPaidWallets 统计活动已打款去重钱包数
	CountPaidWallets(ctx context.Context, campaignID int64) (int64, error)
}

// campaignRepository 活动仓储实现
type campaignRepository struct {
	*Repository
}

// NewCampaignRepository 创建活动仓储
func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{Repository: NewRepository(db)}
}

// Create 创建活动
func (r *campaignRepository) Create(ctx context.Context, campaign *model.Campaign) error {
	taken, err := r.SlugExists(ctx, campaign.Slug)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}

	if err := r.DB(ctx).Create(campaign).Error; err != nil {
		return fmt.Errorf("create campaign failed: %w", err)
	}
	return nil
}

// Update 按主键更新
func (r *campaignRepository) Update(ctx context.Context, campaign *model.Campaign) error {
	result := r.DB(ctx).Model(&model.Campaign{}).
		Where("id = ?", campaign.ID).
		Select("*").
		Omit("id", "slug", "created_at").
		Updates(campaign)

	if result.Error != nil {
		return fmt.Errorf("update campaign failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

// GetByID 按主键获取活动
func (r *campaignRepository) GetByID(ctx context.Context, id int64) (*model.Campaign, error) {
	var campaign model.Campaign
	result := r.DB(ctx).Where("id = ?", id).First(&campaign)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("get campaign failed: %w", result.Error)
	}
	return &campaign, nil
}

// GetBySlug 按 slug 获取活动
func (r *campaignRepository) GetBySlug(ctx context.Context, slug string) (*model.Campaign, error) {
	var campaign model.Campaign
	result := r.DB(ctx).Where("slug = ?", slug).First(&campaign)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("get campaign by slug failed: %w", result.Error)
	}
	return &campaign, nil
}

// SlugExists 检查 slug 是否已存在
func (r *campaignRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	result := r.DB(ctx).Model(&model.Campaign{}).Where("slug = ?", slug).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("check slug failed: %w", result.Error)
	}
	return count > 0, nil
}

// ListPublished 列出已发布活动
func (r *campaignRepository) ListPublished(ctx context.Context, p *Pagination) ([]*model.Campaign, error) {
	query := r.DB(ctx).Model(&model.Campaign{}).Where("is_published = ?", true)

	if err := query.Count(&p.Total).Error; err != nil {
		return nil, fmt.Errorf("count published campaigns failed: %w", err)
	}

	var campaigns []*model.Campaign
	result := query.Order("id DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&campaigns)

	if result.Error != nil {
		return nil, fmt.Errorf("list published campaigns failed: %w", result.Error)
	}
	return campaigns, nil
}

// ListAll 后台全量列表
func (r *campaignRepository) ListAll(ctx context.Context, p *Pagination) ([]*model.Campaign, error) {
	if err := r.DB(ctx).Model(&model.Campaign{}).Count(&p.Total).Error; err != nil {
		return nil, fmt.Errorf("count campaigns failed: %w", err)
	}

	var campaigns []*model.Campaign
	result := r.DB(ctx).Order("id DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&campaigns)

	if result.Error != nil {
		return nil, fmt.Errorf("list campaigns failed: %w", result.Error)
	}
	return campaigns, nil
}

// SetPublished 切换发布状态
func (r *campaignRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	return r.setFlag(ctx, id, "is_published", published)
}

// SetPaused 切换暂停状态
func (r *campaignRepository) SetPaused(ctx context.Context, id int64, paused bool) error {
	return r.setFlag(ctx, id, "is_paused", paused)
}

func (r *campaignRepository) setFlag(ctx context.Context, id int64, column string, value bool) error {
	result := r.DB(ctx).Model(&model.Campaign{}).
		Where("id = ?", id).
		Update(column, value)

	if result.Error != nil {
		return fmt.Errorf("update campaign %s failed: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

// Delete 删除活动
func (r *campaignRepository) Delete(ctx context.Context, id int64) error {
	result := r.DB(ctx).Delete(&model.Campaign{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete campaign failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

// CountParticipants 统计活动提交数
func (r *campaignRepository) CountParticipants(ctx context.Context, campaignID int64) (int64, error) {
	var count int64
	result := r.DB(ctx).Model(&model.Submission{}).
		Where("campaign_id = ?", campaignID).
		Count(&count)

	if result.Error != nil {
		return 0, fmt.Errorf("count participants failed: %w", result.Error)
	}
	return count, nil
}

// CountPaidWallets 统计活动已打款去重钱包数
func (r *campaignRepository) CountPaidWallets(ctx context.Context, campaignID int64) (int64, error) {
	var count int64
	result := r.DB(ctx).Model(&model.Submission{}).
		Where("campaign_id = ? AND status = ?", campaignID, model.SubmissionStatusPaid).
		Distinct("wallet_address").
		Count(&count)

	if result.Error != nil {
		return 0, fmt.Errorf("count paid wallets failed: %w", result.Error)
	}
	return count, nil
}
