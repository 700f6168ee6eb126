package middleware

import (
	"context"
	"sync"

	"github.com/gang678/studentdocument/internal/config"
	"github.com/gang678/studentdocument/internal/pkg/auth"
	"github.com/gang678/studentdocument/internal/pkg/metrics"
)

// TokenValidator 访问令牌校验，由会话服务实现
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*auth.JWTClaims, error)
}

// PermissionChecker 权限校验，由RBAC服务实现
type PermissionChecker interface {
	HasPermission(ctx context.Context, userID uint, permission string) (bool, error)
}

// MiddlewareManager 中间件管理器
// 负责管理所有Gin框架的中间件，提供统一的中间件接口
type MiddlewareManager struct {
	tokenValidator    TokenValidator         // 会话服务，用于JWT令牌验证
	permissionChecker PermissionChecker      // RBAC服务，用于权限验证
	securityConfig    *config.SecurityConfig // 安全配置，用于中间件配置
	recorder          metrics.Recorder

	rateLimiter     *IPRateLimiter
	rateLimiterOnce sync.Once
}

// NewMiddlewareManager 创建中间件管理器
// recorder 为 nil 时不记录指标
func NewMiddlewareManager(tokenValidator TokenValidator, permissionChecker PermissionChecker, securityConfig *config.SecurityConfig, recorder metrics.Recorder) *MiddlewareManager {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if securityConfig == nil {
		securityConfig = &config.SecurityConfig{}
	}
	return &MiddlewareManager{
		tokenValidator:    tokenValidator,
		permissionChecker: permissionChecker,
		securityConfig:    securityConfig,
		recorder:          recorder,
	}
}

// Close 停止后台清理协程
func (m *MiddlewareManager) Close() {
	if m.rateLimiter != nil {
		m.rateLimiter.Stop()
	}
}
