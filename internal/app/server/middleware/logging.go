/**
 * 中间件:日志中间件
 * @author: gang678
 * @date: 2026.10.17
 * @description: 记录访问日志，并把客户端IP写入标准上下文供 service 层使用
 */
package middleware

import (
	"slices"
	"time"

	"github.com/gang678/studentdocument/internal/pkg/logger"
	"github.com/gang678/studentdocument/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GinLoggingMiddleware Gin日志中间件
func (m *MiddlewareManager) GinLoggingMiddleware() gin.HandlerFunc {
	cfg := m.securityConfig.Logging

	return func(c *gin.Context) {
		start := time.Now()

		clientIP := utils.GetClientIP(c)
		c.Request = c.Request.WithContext(utils.WithClientIP(c.Request.Context(), clientIP))

		c.Next()

		if !cfg.EnableRequestLog || slices.Contains(cfg.SkipPaths, c.Request.URL.Path) {
			return
		}

		meta := utils.GetRequestMeta(c)
		logger.LogAccessRequest(c, start, meta.RequestID, meta.UserID)

		if cfg.SlowRequestThreshold > 0 {
			if elapsed := time.Since(start); elapsed > cfg.SlowRequestThreshold {
				logger.LogSystemEvent("http", "slow_request", "请求处理耗时过长", logrus.WarnLevel, map[string]interface{}{
					"path":        meta.Path,
					"method":      meta.Method,
					"duration_ms": elapsed.Milliseconds(),
					"request_id":  meta.RequestID,
				})
			}
		}
	}
}

// GinRecoveryMiddleware panic 恢复，记录错误日志后返回 500
func (m *MiddlewareManager) GinRecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		meta := utils.GetRequestMeta(c)
		logger.LogSystemEvent("http", "panic", "请求处理发生 panic", logrus.ErrorLevel, map[string]interface{}{
			"path":       meta.Path,
			"method":     meta.Method,
			"request_id": meta.RequestID,
			"panic":      recovered,
		})
		abortWith(c, 500, "internal server error", nil)
	})
}
