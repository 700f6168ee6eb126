package auth

import (
	"net/http"

	"github.com/gang678/studentdocument/internal/handler/base"
	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// RefreshHandler 令牌刷新接口处理器
type RefreshHandler struct {
	sessionService *auth.SessionService
}

// NewRefreshHandler 创建令牌刷新处理器实例
func NewRefreshHandler(sessionService *auth.SessionService) *RefreshHandler {
	return &RefreshHandler{
		sessionService: sessionService,
	}
}

// RefreshToken 刷新访问令牌接口
func (h *RefreshHandler) RefreshToken(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		base.BindError(c, "refresh_token", err)
		return
	}

	resp, err := h.sessionService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		base.RespondError(c, "refresh_token", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
