package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/puzzlecollector/LinkPepper/internal/model"
)

// ErrApplicationNotFound 活动申请不存在
var ErrApplicationNotFound = errors.New("campaign application not found")

// ApplicationRepository 活动申请仓储接口
type ApplicationRepository interface {
	// Create 创建申请, ID 由调用方生成 (UUID)
	Create(ctx context.Context, app *model.CampaignApplication) error

	// GetByID 按 UUID 获取申请
	GetByID(ctx context.Context, id string) (*model.CampaignApplication, error)

	// List 后台申请列表, 未处理优先, 新申请在前
	List(ctx context.Context, onlyUnhandled bool, p *Pagination) ([]*model.CampaignApplication, error)

	// MarkHandled 标记已处理
	MarkHandled(ctx context.Context, id string) error
}

// applicationRepository 活动申请仓储实现
type applicationRepository struct {
	*Repository
}

// NewApplicationRepository 创建活动申请仓储
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{Repository: NewRepository(db)}
}

// Create 创建申请
func (r *applicationRepository) Create(ctx context.Context, app *model.CampaignApplication) error {
	if err := r.DB(ctx).Create(app).Error; err != nil {
		return fmt.Errorf("create application failed: %w", err)
	}
	return nil
}

// GetByID 按 UUID 获取申请
func (r *applicationRepository) GetByID(ctx context.Context, id string) (*model.CampaignApplication, error) {
	var app model.CampaignApplication
	result := r.DB(ctx).Where("id = ?", id).First(&app)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("get application failed: %w", result.Error)
	}
	return &app, nil
}

// List 后台申请列表
func (r *applicationRepository) List(ctx context.Context, onlyUnhandled bool, p *Pagination) ([]*model.CampaignApplication, error) {
	query := r.DB(ctx).Model(&model.CampaignApplication{})
	if onlyUnhandled {
		query = query.Where("handled = ?", false)
	}

	if err := query.Count(&p.Total).Error; err != nil {
		return nil, fmt.Errorf("count applications failed: %w", err)
	}

	var apps []*model.CampaignApplication
	result := query.Order("handled ASC, created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&apps)

	if result.Error != nil {
		return nil, fmt.Errorf("list applications failed: %w", result.Error)
	}
	return apps, nil
}

// MarkHandled 标记已处理
func (r *applicationRepository) MarkHandled(ctx context.Context, id string) error {
	result := r.DB(ctx).Model(&model.CampaignApplication{}).
		Where("id = ?", id).
		Update("handled", true)

	if result.Error != nil {
		return fmt.Errorf("mark application handled failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
