package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/puzzlecollector/LinkPepper/internal/dto"
	"github.com/puzzlecollector/LinkPepper/internal/metrics"
	"github.com/puzzlecollector/LinkPepper/internal/middleware"
	"github.com/puzzlecollector/LinkPepper/internal/service"
)

// StaffAuthHandler 后台认证处理器
type StaffAuthHandler struct {
	authService *service.StaffAuthService
}

// NewStaffAuthHandler 创建后台认证处理器
func NewStaffAuthHandler(authService *service.StaffAuthService) *StaffAuthHandler {
	return &StaffAuthHandler{authService: authService}
}

// Login 后台登录
// POST /admin/v1/auth/login
func (h *StaffAuthHandler) Login(c *gin.Context) {
	var req service.StaffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		metrics.StaffLoginsTotal.WithLabelValues(staffLoginResult(err)).Inc()
		Fail(c, err)
		return
	}

	metrics.StaffLoginsTotal.WithLabelValues("success").Inc()
	Success(c, resp)
}

// Logout 后台登出
// JWT 无状态, 服务端只做审计留痕, 客户端丢弃 token 即可
// POST /admin/v1/auth/logout
func (h *StaffAuthHandler) Logout(c *gin.Context) {
	Success(c, nil)
}

// Profile 当前登录账号信息
// GET /admin/v1/auth/profile
func (h *StaffAuthHandler) Profile(c *gin.Context) {
	claims := middleware.GetStaffClaims(c)
	if claims == nil {
		Fail(c, dto.ErrStaffUnauthorized)
		return
	}

	Success(c, gin.H{
		"admin_id":    claims.AdminID,
		"username":    claims.Username,
		"role":        claims.Role,
		"permissions": claims.Permissions,
	})
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword 修改密码
// PUT /admin/v1/auth/password
func (h *StaffAuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	claims := middleware.GetStaffClaims(c)
	if err := h.authService.ChangePassword(c.Request.Context(), claims.AdminID, req.OldPassword, req.NewPassword); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}

// staffLoginResult 将登录错误映射为指标标签
func staffLoginResult(err error) string {
	switch {
	case errors.Is(err, dto.ErrAccountLocked):
		return "locked"
	case errors.Is(err, dto.ErrAccountDisabled):
		return "disabled"
	default:
		return "failed"
	}
}
