package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// GinMetricsMiddleware 记录请求数量与耗时，路由使用注册时的模板路径
func (m *MiddlewareManager) GinMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.recorder.RecordRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
