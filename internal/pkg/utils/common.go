/*
 * @author: gang678
 * @date: 2026.10.17
 * @description: 请求上下文工具，handler 与中间件记录日志时使用
 */

package utils

import (
	"context"

	"github.com/gin-gonic/gin"
)

// ContextKey 标准上下文键类型
type ContextKey string

const (
	// ContextKeyClientIP 标准上下文中存储客户端IP的键
	ContextKeyClientIP ContextKey = "client_ip"

	// Gin 上下文键，由认证与请求ID中间件写入
	GinKeyUserID    = "user_id"
	GinKeyUsername  = "username"
	GinKeyRequestID = "request_id"
	GinKeyClaims    = "claims"
)

// RequestMeta 日志所需的请求元信息
type RequestMeta struct {
	RequestID string
	UserID    uint
	Username  string
	ClientIP  string
	UserAgent string
	Path      string
	Method    string
}

// GetRequestMeta 从 Gin 上下文提取请求元信息，缺失字段为零值
func GetRequestMeta(c *gin.Context) RequestMeta {
	return RequestMeta{
		RequestID: c.GetString(GinKeyRequestID),
		UserID:    GetCurrentUserID(c),
		Username:  c.GetString(GinKeyUsername),
		ClientIP:  GetClientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
		Path:      c.Request.URL.Path,
		Method:    c.Request.Method,
	}
}

// GetCurrentUserID 当前认证用户ID，未认证返回 0
func GetCurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(GinKeyUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// WithClientIP 把客户端IP写入标准上下文
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ContextKeyClientIP, ip)
}

// GetClientIPFromContext 从标准上下文读取客户端IP
func GetClientIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(ContextKeyClientIP).(string); ok {
		return ip
	}
	return ""
}
