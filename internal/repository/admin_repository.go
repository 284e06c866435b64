package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/puzzlecollector/LinkPepper/internal/model"
)

// ErrAdminNotFound 管理员不存在
var ErrAdminNotFound = errors.New("admin not found")

// AdminRepository 后台管理员仓储接口
type AdminRepository interface {
	// Create 创建管理员
	Create(ctx context.Context, admin *model.Admin) error

	// GetByID 按主键获取管理员
	GetByID(ctx context.Context, id int64) (*model.Admin, error)

	// GetByUsername 按用户名获取管理员
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)

	// List 管理员列表
	List(ctx context.Context, p *Pagination) ([]*model.Admin, error)

	// UpdateLoginSuccess 记录登录成功, 清零失败计数与锁定
	UpdateLoginSuccess(ctx context.Context, id int64, ip string) error

	// UpdateLoginFailed 记录登录失败, 达到阈值时锁定账户
	UpdateLoginFailed(ctx context.Context, id int64, maxAttempts int, lockDuration time.Duration) error

	// UpdatePassword 更新密码哈希
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// UpdateStatus 变更账户状态
	UpdateStatus(ctx context.Context, id int64, status model.AdminStatus) error
}

// adminRepository 后台管理员仓储实现
type adminRepository struct {
	*Repository
}

// NewAdminRepository 创建后台管理员仓储
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{Repository: NewRepository(db)}
}

// Create 创建管理员
func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	if err := r.DB(ctx).Create(admin).Error; err != nil {
		return fmt.Errorf("create admin failed: %w", err)
	}
	return nil
}

// GetByID 按主键获取管理员
func (r *adminRepository) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	var admin model.Admin
	result := r.DB(ctx).Where("id = ?", id).First(&admin)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("get admin failed: %w", result.Error)
	}
	return &admin, nil
}

// GetByUsername 按用户名获取管理员
func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var admin model.Admin
	result := r.DB(ctx).Where("username = ?", username).First(&admin)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("get admin by username failed: %w", result.Error)
	}
	return &admin, nil
}

// List 管理员列表
func (r *adminRepository) List(ctx context.Context, p *Pagination) ([]*model.Admin, error) {
	if err := r.DB(ctx).Model(&model.Admin{}).Count(&p.Total).Error; err != nil {
		return nil, fmt.Errorf("count admins failed: %w", err)
	}

	var admins []*model.Admin
	result := r.DB(ctx).Order("id DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&admins)

	if result.Error != nil {
		return nil, fmt.Errorf("list admins failed: %w", result.Error)
	}
	return admins, nil
}

// UpdateLoginSuccess 记录登录成功
func (r *adminRepository) UpdateLoginSuccess(ctx context.Context, id int64, ip string) error {
	now := time.Now().UnixMilli()
	result := r.DB(ctx).Model(&model.Admin{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login_at":  now,
			"last_login_ip":  ip,
			"login_attempts": 0,
			"locked_until":   nil,
		})

	if result.Error != nil {
		return fmt.Errorf("update login success failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}
	return nil
}

// UpdateLoginFailed 记录登录失败
func (r *adminRepository) UpdateLoginFailed(ctx context.Context, id int64, maxAttempts int, lockDuration time.Duration) error {
	admin, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"login_attempts": admin.LoginAttempts + 1,
	}

	// 达到最大尝试次数, 锁定账户
	if admin.LoginAttempts+1 >= maxAttempts {
		updates["locked_until"] = time.Now().Add(lockDuration).UnixMilli()
	}

	result := r.DB(ctx).Model(&model.Admin{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("update login failed failed: %w", result.Error)
	}
	return nil
}

// UpdatePassword 更新密码哈希
func (r *adminRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result := r.DB(ctx).Model(&model.Admin{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)

	if result.Error != nil {
		return fmt.Errorf("update password failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}
	return nil
}

// UpdateStatus 变更账户状态
func (r *adminRepository) UpdateStatus(ctx context.Context, id int64, status model.AdminStatus) error {
	result := r.DB(ctx).Model(&model.Admin{}).
		Where("id = ?", id).
		Update("status", status)

	if result.Error != nil {
		return fmt.Errorf("update admin status failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}
	return nil
}
