/**
 * 中间件:认证与授权中间件
 * @author: gang678
 * @date: 2026.10.17
 * @description: JWT 认证与按权限标识的授权守卫
 * @func:
 *   - GinJWTAuthMiddleware: 校验访问令牌，写入 user_id / username / claims
 *   - GinRequirePermission: 校验调用者是否拥有指定权限，拒绝时处理函数不会执行
 */
package middleware

import (
	"errors"
	"net/http"

	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/model/system"
	"github.com/gang678/studentdocument/internal/pkg/auth"
	"github.com/gang678/studentdocument/internal/pkg/logger"
	"github.com/gang678/studentdocument/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GinJWTAuthMiddleware Gin JWT认证中间件
// 使用方式: group.Use(middlewareManager.GinJWTAuthMiddleware())
func (m *MiddlewareManager) GinJWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		meta := utils.GetRequestMeta(c)

		accessToken := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if accessToken == "" {
			abortWith(c, http.StatusUnauthorized, "missing or invalid authorization header", nil)
			return
		}

		claims, err := m.tokenValidator.ValidateToken(c.Request.Context(), accessToken)
		if err != nil {
			logger.LogError(err, meta.RequestID, 0, meta.ClientIP, meta.Path, meta.Method, map[string]interface{}{
				"operation":  "token_validation",
				"user_agent": meta.UserAgent,
			})
			status := http.StatusUnauthorized
			message := "invalid or expired token"
			if errors.Is(err, system.ErrDataAccess) {
				status = http.StatusInternalServerError
				message = "failed to validate token"
			}
			abortWith(c, status, message, nil)
			return
		}

		c.Set(utils.GinKeyUserID, claims.UserID)
		c.Set(utils.GinKeyUsername, claims.Username)
		c.Set(utils.GinKeyClaims, claims)

		c.Next()
	}
}

// GinRequirePermission 权限守卫
// 未认证返回 401，缺少权限返回 403，两种情况都不会进入后续处理函数
// 使用方式: group.POST("", m.GinRequirePermission("role:add"), handler)
func (m *MiddlewareManager) GinRequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := utils.GetCurrentUserID(c)
		if userID == 0 {
			abortWith(c, http.StatusUnauthorized, "user not authenticated", nil)
			return
		}

		meta := utils.GetRequestMeta(c)
		allowed, err := m.permissionChecker.HasPermission(c.Request.Context(), userID, permission)
		if err != nil {
			if errors.Is(err, system.ErrUnauthorized) {
				abortWith(c, http.StatusUnauthorized, "user not authenticated", nil)
				return
			}
			logger.LogError(err, meta.RequestID, userID, meta.ClientIP, meta.Path, meta.Method, map[string]interface{}{
				"operation":  "permission_check",
				"permission": permission,
			})
			abortWith(c, http.StatusInternalServerError, "failed to check permission", nil)
			return
		}

		if !allowed {
			m.recorder.RecordPermissionDenied(permission)
			logger.LogAuditOperation(userID, meta.Username, "permission_check", permission, "denied",
				meta.ClientIP, meta.UserAgent, meta.RequestID, map[string]interface{}{
					"path":   meta.Path,
					"method": meta.Method,
				})
			abortWith(c, http.StatusForbidden, "permission denied", system.ErrPermissionDenied)
			return
		}

		c.Next()
	}
}

func abortWith(c *gin.Context, status int, message string, err error) {
	resp := model.APIResponse{
		Code:    status,
		Status:  "failed",
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}
