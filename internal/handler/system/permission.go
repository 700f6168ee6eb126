/**
 * @author: gang678
 * @date: 2026.10.17
 * @description: 权限管理接口(管理员专用)，增删改查全部由基础控制器提供
 */
package system

import (
	"github.com/gang678/studentdocument/internal/handler/base"
	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/service/auth"
)

// PermissionHandler 权限管理处理器
type PermissionHandler struct {
	*base.BaseController[model.Permission, uint, *model.Permission]
}

// NewPermissionHandler 创建权限管理处理器
func NewPermissionHandler(permissionService *auth.PermissionService) *PermissionHandler {
	return &PermissionHandler{
		BaseController: base.NewBaseController[model.Permission, uint, *model.Permission](permissionService, "permission"),
	}
}
