package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/puzzlecollector/LinkPepper/internal/metrics"
)

// Metrics 记录 HTTP 请求指标的中间件
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		// 优先使用路由模板, 避免路径参数撑爆标签基数
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.RecordHTTPRequest(c.Request.Method, path, status, duration)
	}
}
