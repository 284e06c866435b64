package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/puzzlecollector/LinkPepper/internal/dto"
	"github.com/puzzlecollector/LinkPepper/internal/service"
)

const (
	// ContextKeyStaffClaims 上下文中的后台 Claims 键
	ContextKeyStaffClaims = "staff_claims"
)

// StaffAuthMiddleware 后台 JWT 认证中间件
type StaffAuthMiddleware struct {
	authService *service.StaffAuthService
}

// NewStaffAuthMiddleware 创建后台认证中间件
func NewStaffAuthMiddleware(authService *service.StaffAuthService) *StaffAuthMiddleware {
	return &StaffAuthMiddleware{authService: authService}
}

// Required 返回需要后台登录的中间件
func (m *StaffAuthMiddleware) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			abortWithBizError(c, dto.ErrStaffUnauthorized)
			return
		}

		claims, err := m.authService.ValidateToken(token)
		if err != nil {
			abortWithBizError(c, dto.ErrStaffUnauthorized)
			return
		}

		c.Set(ContextKeyStaffClaims, claims)
		c.Next()
	}
}

// RequirePermission 权限检查中间件, 任一权限满足即放行
// 需在 Required 之后使用
func RequirePermission(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetStaffClaims(c)
		if claims == nil {
			abortWithBizError(c, dto.ErrStaffUnauthorized)
			return
		}

		for _, perm := range permissions {
			if claims.HasPermission(perm) {
				c.Next()
				return
			}
		}

		abortWithBizError(c, dto.ErrStaffForbidden)
	}
}

// GetStaffClaims 从上下文获取后台 Claims
func GetStaffClaims(c *gin.Context) *service.StaffClaims {
	if claims, exists := c.Get(ContextKeyStaffClaims); exists {
		return claims.(*service.StaffClaims)
	}
	return nil
}
