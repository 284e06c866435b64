package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/puzzlecollector/LinkPepper/internal/dto"
	"github.com/puzzlecollector/LinkPepper/internal/model"
	"github.com/puzzlecollector/LinkPepper/internal/repository"
	"github.com/puzzlecollector/LinkPepper/pkg/logger"
)

const (
	// staffMaxLoginAttempts 连续失败次数阈值
	staffMaxLoginAttempts = 5
	// staffLockDuration 失败锁定时长
	staffLockDuration = 15 * time.Minute
)

// StaffAuthService 后台账号认证服务
type StaffAuthService struct {
	admins         repository.AdminRepository
	audits         repository.AuditLogRepository
	jwtSecret      []byte
	jwtExpireHours int
}

// NewStaffAuthService 创建后台认证服务
func NewStaffAuthService(admins repository.AdminRepository, audits repository.AuditLogRepository, jwtSecret string, jwtExpireHours int) *StaffAuthService {
	if jwtExpireHours <= 0 {
		jwtExpireHours = 8
	}
	return &StaffAuthService{
		admins:         admins,
		audits:         audits,
		jwtSecret:      []byte(jwtSecret),
		jwtExpireHours: jwtExpireHours,
	}
}

// StaffClaims 后台 JWT Claims
type StaffClaims struct {
	AdminID     int64      `json:"admin_id"`
	Username    string     `json:"username"`
	Role        model.Role `json:"role"`
	Permissions []string   `json:"permissions"`
	jwt.RegisteredClaims
}

// HasPermission 检查权限
func (c *StaffClaims) HasPermission(perm string) bool {
	for _, p := range c.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// StaffLoginRequest 后台登录请求
type StaffLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StaffLoginResponse 后台登录响应
type StaffLoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expires_at"`
	Admin     *model.Admin `json:"admin"`
}

// Login 后台登录
// 对外统一返回 LOGIN_FAILED, 不区分用户不存在与密码错误
func (s *StaffAuthService) Login(ctx context.Context, req *StaffLoginRequest, ip string) (*StaffLoginResponse, error) {
	admin, err := s.admins.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			s.recordLoginAudit(ctx, 0, req.Username, ip, model.AuditActionLoginFailed, "unknown username")
			return nil, dto.ErrLoginFailed
		}
		return nil, dto.ErrInternalError
	}

	if admin.Status != model.AdminStatusActive {
		s.recordLoginAudit(ctx, admin.ID, admin.Username, ip, model.AuditActionLoginFailed, "account disabled")
		return nil, dto.ErrAccountDisabled
	}

	if admin.LockedUntil != nil && *admin.LockedUntil > time.Now().UnixMilli() {
		s.recordLoginAudit(ctx, admin.ID, admin.Username, ip, model.AuditActionLoginFailed, "account locked")
		return nil, dto.ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		if err := s.admins.UpdateLoginFailed(ctx, admin.ID, staffMaxLoginAttempts, staffLockDuration); err != nil {
			logger.WithContext(ctx).Error("update login failed counter failed",
				zap.Int64("admin_id", admin.ID), zap.Error(err))
		}
		s.recordLoginAudit(ctx, admin.ID, admin.Username, ip, model.AuditActionLoginFailed, "wrong password")
		return nil, dto.ErrLoginFailed
	}

	expiresAt := time.Now().Add(time.Duration(s.jwtExpireHours) * time.Hour)
	token, err := s.generateToken(admin, expiresAt)
	if err != nil {
		return nil, dto.ErrInternalError
	}

	if err := s.admins.UpdateLoginSuccess(ctx, admin.ID, ip); err != nil {
		logger.WithContext(ctx).Error("update login success failed",
			zap.Int64("admin_id", admin.ID), zap.Error(err))
	}
	s.recordLoginAudit(ctx, admin.ID, admin.Username, ip, model.AuditActionLogin, "")

	admin.PasswordHash = ""

	return &StaffLoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UnixMilli(),
		Admin:     admin,
	}, nil
}

// generateToken 生成 JWT Token
func (s *StaffAuthService) generateToken(admin *model.Admin, expiresAt time.Time) (string, error) {
	claims := &StaffClaims{
		AdminID:     admin.ID,
		Username:    admin.Username,
		Role:        admin.Role,
		Permissions: model.RolePermissions[admin.Role],
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "linkpepper-admin",
			Subject:   admin.Username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken 验证 JWT Token
func (s *StaffAuthService) ValidateToken(tokenString string) (*StaffClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &StaffClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*StaffClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// ChangePassword 修改当前账号密码
func (s *StaffAuthService) ChangePassword(ctx context.Context, adminID int64, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return dto.ErrInvalidParams.WithMessage("password must be at least 8 characters")
	}

	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return dto.ErrStaffUnauthorized
		}
		return dto.ErrInternalError
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(oldPassword)); err != nil {
		return dto.ErrInvalidParams.WithMessage("old password incorrect")
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return dto.ErrInternalError
	}
	if err := s.admins.UpdatePassword(ctx, adminID, hash); err != nil {
		logger.WithContext(ctx).Error("update password failed",
			zap.Int64("admin_id", adminID), zap.Error(err))
		return dto.ErrInternalError
	}
	return nil
}

// HashPassword 密码哈希
func (s *StaffAuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// recordLoginAudit 记录登录审计
func (s *StaffAuthService) recordLoginAudit(ctx context.Context, adminID int64, username, ip string, action model.AuditAction, detail string) {
	log := &model.AuditLog{
		AdminID:      adminID,
		Username:     username,
		Action:       action,
		ResourceType: "admin",
		ResourceID:   username,
		Detail:       detail,
		IP:           ip,
	}
	if err := s.audits.Create(ctx, log); err != nil {
		logger.WithContext(ctx).Warn("write audit log failed", zap.Error(err))
	}
}
