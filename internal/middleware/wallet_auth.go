// Package middleware 提供 HTTP 中间件
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/puzzlecollector/LinkPepper/internal/dto"
	"github.com/puzzlecollector/LinkPepper/internal/model"
	"github.com/puzzlecollector/LinkPepper/internal/service"
)

const (
	// AuthHeader 认证头
	AuthHeader = "Authorization"
	// BearerPrefix Bearer 前缀
	BearerPrefix = "Bearer "
	// ContextKeyWalletUser 上下文中的钱包用户键
	ContextKeyWalletUser = "wallet_user"
	// ContextKeySessionToken 上下文中的会话令牌键
	ContextKeySessionToken = "session_token"
)

// WalletAuthMiddleware 钱包会话认证中间件
type WalletAuthMiddleware struct {
	authService *service.AuthService
}

// NewWalletAuthMiddleware 创建钱包认证中间件
func NewWalletAuthMiddleware(authService *service.AuthService) *WalletAuthMiddleware {
	return &WalletAuthMiddleware{authService: authService}
}

// Required 返回需要钱包登录的中间件
func (m *WalletAuthMiddleware) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			abortWithBizError(c, dto.ErrUnauthorized)
			return
		}

		user, err := m.authService.ResolveSession(c.Request.Context(), token)
		if err != nil {
			abortWithBizError(c, dto.ErrUnauthorized)
			return
		}

		c.Set(ContextKeyWalletUser, user)
		c.Set(ContextKeySessionToken, token)
		c.Next()
	}
}

// Optional 返回可选登录的中间件: 有合法会话则注入用户, 否则放行
func (m *WalletAuthMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token != "" {
			if user, err := m.authService.ResolveSession(c.Request.Context(), token); err == nil {
				c.Set(ContextKeyWalletUser, user)
				c.Set(ContextKeySessionToken, token)
			}
		}
		c.Next()
	}
}

// GetWalletUser 从上下文获取钱包用户
func GetWalletUser(c *gin.Context) *model.WalletUser {
	if user, exists := c.Get(ContextKeyWalletUser); exists {
		return user.(*model.WalletUser)
	}
	return nil
}

// GetSessionToken 从上下文获取会话令牌
func GetSessionToken(c *gin.Context) string {
	if token, exists := c.Get(ContextKeySessionToken); exists {
		return token.(string)
	}
	return ""
}

// extractBearerToken 解析 Authorization 头中的 Bearer 令牌
func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader(AuthHeader)
	if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(authHeader, BearerPrefix)
}

// abortWithBizError 以统一响应结构终止请求
func abortWithBizError(c *gin.Context, err *dto.BizError) {
	c.AbortWithStatusJSON(err.HTTPStatus, dto.NewErrorResponse(err))
}
