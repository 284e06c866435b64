package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/puzzlecollector/LinkPepper/internal/dto"
	"github.com/puzzlecollector/LinkPepper/internal/metrics"
	"github.com/puzzlecollector/LinkPepper/internal/middleware"
	"github.com/puzzlecollector/LinkPepper/internal/service"
)

// AuthHandler 钱包认证处理器
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler 创建钱包认证处理器
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Challenge 签发登录挑战
// GET /api/auth/nonce?address=0x...
// 兼容 POST JSON 提交地址
func (h *AuthHandler) Challenge(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		var req dto.ChallengeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, err)
			return
		}
		address = req.Address
	}

	resp, err := h.authService.Challenge(c.Request.Context(), address)
	if err != nil {
		Fail(c, err)
		return
	}

	metrics.WalletChallengesTotal.Inc()
	Success(c, resp)
}

// Verify 验证签名并建立会话
// POST /api/auth/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	resp, err := h.authService.Verify(c.Request.Context(), &req)
	if err != nil {
		metrics.WalletLoginsTotal.WithLabelValues("failed").Inc()
		Fail(c, err)
		return
	}

	metrics.WalletLoginsTotal.WithLabelValues("success").Inc()
	Success(c, resp)
}

// Logout 退出登录
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.GetSessionToken(c)
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}

// Me 当前登录用户信息
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.GetWalletUser(c)
	if user == nil {
		Fail(c, dto.ErrUnauthorized)
		return
	}

	Success(c, &dto.UserInfo{
		ID:          user.ID,
		Address:     user.Address,
		DisplayName: user.DisplayName,
	})
}
