/**
 * @author: gang678
 * @date: 2026.10.17
 * @description: 角色管理接口
 * @func:
 * 	1.增删改查(基础控制器，路由上挂 role:add / role:update / role:delete 权限)
 * 	2.List              - 面向终端用户的角色列表(医生/用户)
 * 	3.GetPermissions    - 角色权限
 * 	4.AssignPermissions - 替换角色权限
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

// RoleHandler 角色管理处理器
type RoleHandler struct {
	*base.BaseController[model.Role, uint, *model.Role]
	roleService *auth.RoleService
}

// NewRoleHandler 创建角色管理处理器
func NewRoleHandler(roleService *auth.RoleService) *RoleHandler {
	return &RoleHandler{
		BaseController: base.NewBaseController[model.Role, uint, *model.Role](roleService, "role"),
		roleService:    roleService,
	}
}

// List 角色名包含医生或用户的角色
// @Router /api/role/list [get]
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roleService.ListForEndUsers(c.Request.Context())
	if err != nil {
		base.RespondError(c, "list_end_user_roles", err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

// GetPermissions 获取角色及其权限
func (h *RoleHandler) GetPermissions(c *gin.Context) {
	id, err := base.ParseID[uint](c.Param("id"))
	if err != nil {
		base.RespondError(c, "get_role_permissions", err)
		return
	}

	role, err := h.roleService.GetWithPermissions(c.Request.Context(), id)
	if err != nil {
		base.RespondError(c, "get_role_permissions", err)
		return
	}
	c.JSON(http.StatusOK, role)
}

// AssignPermissions 替换角色权限
func (h *RoleHandler) AssignPermissions(c *gin.Context) {
	id, err := base.ParseID[uint](c.Param("id"))
	if err != nil {
		base.RespondError(c, "assign_role_permissions", err)
		return
	}

	var req model.AssignIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		base.BindError(c, "assign_role_permissions", err)
		return
	}

	role, err := h.roleService.AssignPermissions(c.Request.Context(), id, req.IDs)
	if err != nil {
		base.RespondError(c, "assign_role_permissions", err)
		return
	}

	meta := utils.GetRequestMeta(c)
	logger.LogAuditOperation(meta.UserID, meta.Username, "assign_permissions", "role", "success",
		meta.ClientIP, meta.UserAgent, meta.RequestID, map[string]interface{}{
			"role_id":        id,
			"permission_ids": req.IDs,
		})
	c.JSON(http.StatusOK, role)
}
