package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/puzzlecollector/LinkPepper/internal/model"
)

var (
	// ErrWalletUserNotFound 钱包用户不存在
	ErrWalletUserNotFound = errors.New("wallet user not found")
	// ErrNonceConsumed 挑战已被消费或已失效
	ErrNonceConsumed = errors.New("nonce already consumed")
)

// WalletUserRepository 钱包用户仓储接口
type WalletUserRepository interface {
	// FetchOrCreate 按地址获取用户, 不存在则创建
	// 地址必须已小写规范化
	FetchOrCreate(ctx context.Context, address string) (*model.WalletUser, error)

	// GetByAddress 按地址获取用户
	GetByAddress(ctx context.Context, address string) (*model.WalletUser, error)

	// GetByID 按主键获取用户
	GetByID(ctx context.Context, id int64) (*model.WalletUser, error)

	// SetNonce 下发新的登录挑战, 覆盖旧挑战
	SetNonce(ctx context.Context, id int64, nonce string, issuedAt int64) error

	// ConsumeNonce 消费挑战并记录登录时间
	// 带 nonce 条件的守卫更新, 并发下只有一个验证请求能成功
	ConsumeNonce(ctx context.Context, id int64, nonce string, loginAt int64) error

	// UpdateProfile 更新昵称与邮箱
	UpdateProfile(ctx context.Context, id int64, displayName, email string) error
}

// walletUserRepository 钱包用户仓储实现
type walletUserRepository struct {
	*Repository
}

// NewWalletUserRepository 创建钱包用户仓储
func NewWalletUserRepository(db *gorm.DB) WalletUserRepository {
	return &walletUserRepository{Repository: NewRepository(db)}
}

// FetchOrCreate 按地址获取用户, 不存在则创建
func (r *walletUserRepository) FetchOrCreate(ctx context.Context, address string) (*model.WalletUser, error) {
	user := &model.WalletUser{Address: address}

	result := r.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoNothing: true,
	}).Create(user)

	if result.Error != nil {
		return nil, fmt.Errorf("create wallet user failed: %w", result.Error)
	}

	// 已存在 (或并发创建竞争失败), 读取现有记录
	if result.RowsAffected == 0 {
		return r.GetByAddress(ctx, address)
	}
	return user, nil
}

// GetByAddress 按地址获取用户
func (r *walletUserRepository) GetByAddress(ctx context.Context, address string) (*model.WalletUser, error) {
	var user model.WalletUser
	result := r.DB(ctx).Where("address = ?", address).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrWalletUserNotFound
		}
		return nil, fmt.Errorf("get wallet user failed: %w", result.Error)
	}
	return &user, nil
}

// GetByID 按主键获取用户
func (r *walletUserRepository) GetByID(ctx context.Context, id int64) (*model.WalletUser, error) {
	var user model.WalletUser
	result := r.DB(ctx).Where("id = ?", id).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrWalletUserNotFound
		}
		return nil, fmt.Errorf("get wallet user failed: %w", result.Error)
	}
	return &user, nil
}

// SetNonce 下发新的登录挑战
func (r *walletUserRepository) SetNonce(ctx context.Context, id int64, nonce string, issuedAt int64) error {
	result := r.DB(ctx).Model(&model.WalletUser{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"nonce":           nonce,
			"nonce_issued_at": issuedAt,
			"updated_at":      time.Now().UnixMilli(),
		})

	if result.Error != nil {
		return fmt.Errorf("set nonce failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWalletUserNotFound
	}
	return nil
}

// ConsumeNonce 消费挑战并记录登录时间
func (r *walletUserRepository) ConsumeNonce(ctx context.Context, id int64, nonce string, loginAt int64) error {
	result := r.DB(ctx).Model(&model.WalletUser{}).
		Where("id = ? AND nonce = ?", id, nonce).
		Updates(map[string]interface{}{
			"nonce":           "",
			"nonce_issued_at": 0,
			"last_login":      loginAt,
			"updated_at":      time.Now().UnixMilli(),
		})

	if result.Error != nil {
		return fmt.Errorf("consume nonce failed: %w", result.Error)
	}
	// 条件不匹配说明挑战已被其他请求消费
	if result.RowsAffected == 0 {
		return ErrNonceConsumed
	}
	return nil
}

// UpdateProfile 更新昵称与邮箱
func (r *walletUserRepository) UpdateProfile(ctx context.Context, id int64, displayName, email string) error {
	result := r.DB(ctx).Model(&model.WalletUser{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"display_name": displayName,
			"email":        email,
			"updated_at":   time.Now().UnixMilli(),
		})

	if result.Error != nil {
		return fmt.Errorf("update profile failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWalletUserNotFound
	}
	return nil
}
