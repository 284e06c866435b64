package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/puzzlecollector/LinkPepper/pkg/logger"
)

// RequestIDHeader 响应头中的请求标识
const RequestIDHeader = "X-Request-ID"

// Logger 请求日志中间件
// 为每个请求生成 request_id, 注入请求级 logger, 下游日志自动携带
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		requestID := uuid.NewString()
		c.Request = c.Request.WithContext(
			logger.NewContext(c.Request.Context(), zap.String("request_id", requestID)))
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", latency),
		}

		if user := GetWalletUser(c); user != nil {
			fields = append(fields, zap.String("wallet", user.Address))
		}
		if claims := GetStaffClaims(c); claims != nil {
			fields = append(fields, zap.Int64("admin_id", claims.AdminID),
				zap.String("username", claims.Username))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		// 根据状态码选择日志级别
		log := logger.WithContext(c.Request.Context())
		switch {
		case status >= 500:
			log.Error("request completed", fields...)
		case status >= 400:
			log.Warn("request completed", fields...)
		default:
			log.Info("request completed", fields...)
		}
	}
}
