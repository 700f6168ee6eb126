/**
 * @author: gang678
 * @date: 2026.10.17
 * @description: 用户管理接口
 * @func:
 * 	1.创建用户
 * 	2.获取单个用户
 * 	3.替换用户角色
 */
package system

import (
	"net/http"

	"github.com/gang678/studentdocument/internal/handler/base"
	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/pkg/logger"
	"github.com/gang678/studentdocument/internal/pkg/utils"
	"github.com/gang678/studentdocument/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户管理处理器
type UserHandler struct {
	userService *auth.UserService
}

// NewUserHandler 创建用户管理处理器
func NewUserHandler(userService *auth.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser 创建用户
// @Router /api/user [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		base.BindError(c, "create_user", err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		base.RespondError(c, "create_user", err)
		return
	}

	meta := utils.GetRequestMeta(c)
	logger.LogAuditOperation(meta.UserID, meta.Username, "create_user", "user", "success",
		meta.ClientIP, meta.UserAgent, meta.RequestID, map[string]interface{}{
			"new_user_id": user.ID,
			"username":    user.Username,
			"role_ids":    req.RoleIDs,
		})
	c.JSON(http.StatusOK, user)
}

// GetUser 获取单个用户
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := base.ParseID[uint](c.Param("id"))
	if err != nil {
		base.RespondError(c, "get_user", err)
		return
	}

	user, err := h.userService.SelectByID(c.Request.Context(), id)
	if err != nil {
		base.RespondError(c, "get_user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// AssignRoles 替换用户角色
// @Router /api/user/:id/roles [put]
func (h *UserHandler) AssignRoles(c *gin.Context) {
	id, err := base.ParseID[uint](c.Param("id"))
	if err != nil {
		base.RespondError(c, "assign_user_roles", err)
		return
	}

	var req model.AssignIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		base.BindError(c, "assign_user_roles", err)
		return
	}

	user, err := h.userService.AssignRoles(c.Request.Context(), id, req.IDs)
	if err != nil {
		base.RespondError(c, "assign_user_roles", err)
		return
	}

	meta := utils.GetRequestMeta(c)
	logger.LogAuditOperation(meta.UserID, meta.Username, "assign_roles", "user", "success",
		meta.ClientIP, meta.UserAgent, meta.RequestID, map[string]interface{}{
			"target_user_id": id,
			"role_ids":       req.IDs,
		})
	c.JSON(http.StatusOK, user)
}
