package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/puzzlecollector/LinkPepper/internal/model"
)

// AuditLogFilter 审计日志过滤条件
type AuditLogFilter struct {
	AdminID int64
	Action  model.AuditAction
	Range   *TimeRange
}

// AuditLogRepository 审计日志仓储接口
// 审计日志只追加, 不修改不删除
type AuditLogRepository interface {
	// Create 追加一条审计记录
	Create(ctx context.Context, log *model.AuditLog) error

	// List 条件查询, 新记录在前
	List(ctx context.Context, filter *AuditLogFilter, p *Pagination) ([]*model.AuditLog, error)
}

// auditLogRepository 审计日志仓储实现
type auditLogRepository struct {
	*Repository
}

// NewAuditLogRepository 创建审计日志仓储
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{Repository: NewRepository(db)}
}

// Create 追加一条审计记录
func (r *auditLogRepository) Create(ctx context.Context, log *model.AuditLog) error {
	if err := r.DB(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("create audit log failed: %w", err)
	}
	return nil
}

// List 条件查询
func (r *auditLogRepository) List(ctx context.Context, filter *AuditLogFilter, p *Pagination) ([]*model.AuditLog, error) {
	query := r.DB(ctx).Model(&model.AuditLog{})

	if filter != nil {
		if filter.AdminID > 0 {
			query = query.Where("admin_id = ?", filter.AdminID)
		}
		if filter.Action != "" {
			query = query.Where("action = ?", filter.Action)
		}
		if filter.Range.IsValid() {
			query = query.Where("created_at BETWEEN ? AND ?", filter.Range.Start, filter.Range.End)
		}
	}

	if err := query.Count(&p.Total).Error; err != nil {
		return nil, fmt.Errorf("count audit logs failed: %w", err)
	}

	var logs []*model.AuditLog
	result := query.Order("id DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&logs)

	if result.Error != nil {
		return nil, fmt.Errorf("list audit logs failed: %w", result.Error)
	}
	return logs, nil
}
