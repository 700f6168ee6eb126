/**
 * @author: gang678
 * @date: 2026.10.17
 * @description: 登录接口
 */
package auth

import (
	"net/http"

	"github.com/gang678/studentdocument/internal/handler/base"
	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/pkg/utils"
	"github.com/gang678/studentdocument/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// LoginHandler 登录接口处理器
type LoginHandler struct {
	sessionService *auth.SessionService
}

// NewLoginHandler 创建登录处理器实例
func NewLoginHandler(sessionService *auth.SessionService) *LoginHandler {
	return &LoginHandler{
		sessionService: sessionService,
	}
}

// Login 用户登录接口
// @Router /api/auth/login [post]
func (h *LoginHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		base.BindError(c, "login", err)
		return
	}

	ctx := utils.WithClientIP(c.Request.Context(), utils.GetClientIP(c))
	resp, err := h.sessionService.Login(ctx, &req)
	if err != nil {
		base.RespondError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
