/**
 * @author: gang678
 * @date: 2026.10.17
 * @description: 登出接口，需经过 JWT 认证中间件
 */
package auth

import (
	"net/http"

	"github.com/gang678/studentdocument/internal/handler/base"
	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/model/system"
	pkgauth "github.com/gang678/studentdocument/internal/pkg/auth"
	"github.com/gang678/studentdocument/internal/pkg/utils"
	"github.com/gang678/studentdocument/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// LogoutHandler 登出接口处理器
type LogoutHandler struct {
	sessionService *auth.SessionService
}

// NewLogoutHandler 创建登出处理器实例
func NewLogoutHandler(sessionService *auth.SessionService) *LogoutHandler {
	return &LogoutHandler{
		sessionService: sessionService,
	}
}

// Logout 注销当前访问令牌
// @Router /api/auth/logout [post]
func (h *LogoutHandler) Logout(c *gin.Context) {
	v, _ := c.Get(utils.GinKeyClaims)
	claims, ok := v.(*pkgauth.JWTClaims)
	if !ok {
		base.RespondError(c, "logout", system.ErrUnauthorized)
		return
	}

	ctx := utils.WithClientIP(c.Request.Context(), utils.GetClientIP(c))
	if err := h.sessionService.Logout(ctx, claims); err != nil {
		base.RespondError(c, "logout", err)
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "logout successful",
	})
}
