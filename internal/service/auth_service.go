// Package service 实现业务逻辑
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/puzzlecollector/LinkPepper/internal/cache"
	"github.com/puzzlecollector/LinkPepper/internal/config"
	"github.com/puzzlecollector/LinkPepper/internal/dto"
	"github.com/puzzlecollector/LinkPepper/internal/model"
	"github.com/puzzlecollector/LinkPepper/internal/repository"
	"github.com/puzzlecollector/LinkPepper/pkg/ethsign"
	"github.com/puzzlecollector/LinkPepper/pkg/logger"
)

// nonceBytes 挑战随机字节数
const nonceBytes = 32

// AuthService 钱包登录服务
// 流程: 下发挑战 -> 钱包签名 -> 服务端恢复地址比对 -> 建立会话
type AuthService struct {
	users    repository.WalletUserRepository
	sessions *cache.SessionStore
	cfg      *config.AuthConfig
}

// NewAuthService 创建钱包登录服务
func NewAuthService(users repository.WalletUserRepository, sessions *cache.SessionStore, cfg *config.AuthConfig) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
	}
}

// Challenge 为地址下发登录挑战
// 地址不存在时自动注册, 新挑战覆盖旧挑战
func (s *AuthService) Challenge(ctx context.Context, address string) (*dto.ChallengeResponse, error) {
	normalized, err := ethsign.NormalizeAddress(address)
	if err != nil {
		return nil, dto.ErrInvalidAddress
	}

	user, err := s.users.FetchOrCreate(ctx, normalized)
	if err != nil {
		logger.WithContext(ctx).Error("fetch or create wallet user failed",
			zap.String("address", normalized), zap.Error(err))
		return nil, dto.ErrInternalError
	}

	nonce, err := generateNonce()
	if err != nil {
		return nil, dto.ErrInternalError
	}

	if err := s.users.SetNonce(ctx, user.ID, nonce, time.Now().UnixMilli()); err != nil {
		logger.WithContext(ctx).Error("set nonce failed",
			zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, dto.ErrInternalError
	}

	return &dto.ChallengeResponse{
		Address: normalized,
		Nonce:   nonce,
		Message: s.loginMessage(nonce),
	}, nil
}

// Verify 校验签名并建立会话
// 失败原因按固定顺序检查, 各自映射到独立错误码
func (s *AuthService) Verify(ctx context.Context, req *dto.VerifyRequest) (*dto.LoginResponse, error) {
	normalized, err := ethsign.NormalizeAddress(req.Address)
	if err != nil {
		return nil, dto.ErrInvalidAddress
	}

	user, err := s.users.GetByAddress(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrWalletUserNotFound) {
			return nil, dto.ErrUnknownIdentity
		}
		return nil, dto.ErrInternalError
	}

	if !user.HasPendingNonce() || s.nonceExpired(user.NonceIssuedAt) {
		return nil, dto.ErrNoPendingChallenge
	}

	// 消息必须与下发的挑战逐字节一致
	if req.Message != s.loginMessage(user.Nonce) {
		return nil, dto.ErrMessageMismatch
	}

	sig, err := ethsign.DecodeSignature(req.Signature)
	if err != nil {
		return nil, dto.ErrBadSignature
	}

	recovered, err := ethsign.RecoverAddress([]byte(req.Message), sig)
	if err != nil {
		return nil, dto.ErrBadSignature
	}
	if recovered != normalized {
		return nil, dto.ErrAddressMismatch
	}

	// 守卫更新消费挑战, 并发验证只有一个请求能通过
	now := time.Now().UnixMilli()
	if err := s.users.ConsumeNonce(ctx, user.ID, user.Nonce, now); err != nil {
		if errors.Is(err, repository.ErrNonceConsumed) {
			return nil, dto.ErrNoPendingChallenge
		}
		logger.WithContext(ctx).Error("consume nonce failed",
			zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, dto.ErrInternalError
	}

	// 挑战已消费后建会话; 此处失败只需重新走一遍挑战流程
	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		logger.WithContext(ctx).Error("create session failed",
			zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, dto.ErrInternalError
	}

	logger.WithContext(ctx).Info("wallet login",
		zap.Int64("user_id", user.ID), zap.String("address", normalized))

	return &dto.LoginResponse{
		Token: token,
		User: dto.UserInfo{
			ID:          user.ID,
			Address:     user.Address,
			DisplayName: user.DisplayName,
		},
	}, nil
}

// Logout 销毁会话
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		logger.WithContext(ctx).Warn("delete session failed", zap.Error(err))
	}
	return nil
}

// ResolveSession 解析会话令牌为用户
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*model.WalletUser, error) {
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, cache.ErrSessionNotFound) {
			return nil, dto.ErrUnauthorized
		}
		return nil, dto.ErrInternalError
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		// 用户被删但会话残留, 视为未登录并顺手清理
		if errors.Is(err, repository.ErrWalletUserNotFound) {
			_ = s.sessions.Delete(ctx, token)
			return nil, dto.ErrUnauthorized
		}
		return nil, dto.ErrInternalError
	}
	return user, nil
}

// loginMessage 按模板构造待签名消息
func (s *AuthService) loginMessage(nonce string) string {
	tpl := s.cfg.LoginMessageTemplate
	if tpl == "" {
		tpl = config.DefaultLoginMessageTemplate
	}
	return fmt.Sprintf(tpl, nonce)
}

// nonceExpired 挑战是否超过有效期
func (s *AuthService) nonceExpired(issuedAt int64) bool {
	if s.cfg.NonceTTLSec <= 0 {
		return false
	}
	return time.Now().UnixMilli()-issuedAt > int64(s.cfg.NonceTTLSec)*1000
}

// generateNonce 生成 base64url 编码的随机挑战
func generateNonce() (string, error) {
	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
