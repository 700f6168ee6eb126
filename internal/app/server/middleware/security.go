/**
 * 中间件:安全中间件
 * @author: gang678
 * @date: 2026.10.17
 * @func:
 *   - GinCORSMiddleware 跨域(gin-contrib/cors)
 *   - GinSecurityHeadersMiddleware 安全响应头
 *   - GinRequestIDMiddleware 请求ID，优先沿用上游传入的 X-Request-ID
 */
package middleware

import (
	"github.com/gang678/studentdocument/internal/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// GinCORSMiddleware CORS跨域资源共享中间件，未启用时直接放行
func (m *MiddlewareManager) GinCORSMiddleware() gin.HandlerFunc {
	cfg := m.securityConfig.CORS
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	corsConfig := cors.Config{
		AllowAllOrigins:  cfg.AllowAllOrigins,
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	if len(corsConfig.AllowMethods) == 0 {
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(corsConfig.AllowHeaders) == 0 {
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	}
	if !corsConfig.AllowAllOrigins && len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	// 允许所有源时不能携带凭证
	if corsConfig.AllowAllOrigins {
		corsConfig.AllowCredentials = false
	}

	logrus.WithFields(logrus.Fields{
		"operation":     "cors_middleware",
		"allow_all":     corsConfig.AllowAllOrigins,
		"allow_origins": corsConfig.AllowOrigins,
	}).Debug("CORS enabled")

	return cors.New(corsConfig)
}

// GinSecurityHeadersMiddleware 安全头中间件
func (m *MiddlewareManager) GinSecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if c.Request.TLS != nil || c.Request.Header.Get("X-Forwarded-Proto") == "https" {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// GinRequestIDMiddleware 请求ID中间件
func (m *MiddlewareManager) GinRequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}

		c.Set(utils.GinKeyRequestID, requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}
