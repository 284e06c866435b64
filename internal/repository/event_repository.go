package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/puzzlecollector/LinkPepper/internal/model"
)

// ErrEventNotFound 公告不存在
var ErrEventNotFound = errors.New("event not found")

// EventRepository 公告仓储接口
type EventRepository interface {
	// Create 创建公告
	Create(ctx context.Context, event *model.Event) error

	// Update 按主键更新
	Update(ctx context.Context, event *model.Event) error

	// GetBySlug 按 slug 获取公告
	GetBySlug(ctx context.Context, slug string) (*model.Event, error)

	// ListPublished 按语言列出已发布公告, 新帖在前
	ListPublished(ctx context.Context, lang model.EventLang, p *Pagination) ([]*model.Event, error)

	// ListAll 后台全量列表
	ListAll(ctx context.Context, p *Pagination) ([]*model.Event, error)

	// Delete 删除公告
	Delete(ctx context.Context, id int64) error
}

// eventRepository 公告仓储实现
type eventRepository struct {
	*Repository
}

// NewEventRepository 创建公告仓储
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{Repository: NewRepository(db)}
}

// Create 创建公告
func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	if err := r.DB(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create event failed: %w", err)
	}
	return nil
}

// Update 按主键更新
func (r *eventRepository) Update(ctx context.Context, event *model.Event) error {
	result := r.DB(ctx).Model(&model.Event{}).
		Where("id = ?", event.ID).
		Select("*").
		Omit("id", "slug", "created_at").
		Updates(event)

	if result.Error != nil {
		return fmt.Errorf("update event failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// GetBySlug 按 slug 获取公告
func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	var event model.Event
	result := r.DB(ctx).Where("slug = ?", slug).First(&event)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event failed: %w", result.Error)
	}
	return &event, nil
}

// ListPublished 按语言列出已发布公告
func (r *eventRepository) ListPublished(ctx context.Context, lang model.EventLang, p *Pagination) ([]*model.Event, error) {
	query := r.DB(ctx).Model(&model.Event{}).
		Where("is_published = ? AND lang = ?", true, lang)

	if err := query.Count(&p.Total).Error; err != nil {
		return nil, fmt.Errorf("count events failed: %w", err)
	}

	var events []*model.Event
	result := query.Order("posted_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&events)

	if result.Error != nil {
		return nil, fmt.Errorf("list events failed: %w", result.Error)
	}
	return events, nil
}

// ListAll 后台全量列表
func (r *eventRepository) ListAll(ctx context.Context, p *Pagination) ([]*model.Event, error) {
	if err := r.DB(ctx).Model(&model.Event{}).Count(&p.Total).Error; err != nil {
		return nil, fmt.Errorf("count events failed: %w", err)
	}

	var events []*model.Event
	result := r.DB(ctx).Order("posted_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&events)

	if result.Error != nil {
		return nil, fmt.Errorf("list events failed: %w", result.Error)
	}
	return events, nil
}

// Delete 删除公告
func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	result := r.DB(ctx).Where("id = ?", id).Delete(&model.Event{})
	if result.Error != nil {
		return fmt.Errorf("delete event failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}
