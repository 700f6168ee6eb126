/**
 * 路由:系统管理路由
 * @author: gang678
 * @date: 2026.10.17
 * @description: 角色、权限、用户及登出，全部需要 JWT 认证；写操作按权限标识挂守卫
 */
package router

import (
	"github.com/gang678/studentdocument/internal/model"

	"github.com/gin-gonic/gin"
)

func (r *Router) setupRoleRoutes(authed *gin.RouterGroup) {
	h := r.systemModule.RoleHandler
	require := r.middlewareManager.GinRequirePermission

	authed.POST("/auth/logout", r.authModule.LogoutHandler.Logout)

	role := authed.Group("/role")
	{
		role.GET("", h.FindAll)
		role.GET("/:id", h.FindByID)
		role.POST("", require(model.PermRoleAdd), h.Save)
		role.PUT("", require(model.PermRoleUpdate), h.Update)
		role.DELETE("/:id", require(model.PermRoleDelete), h.Delete)
		role.GET("/:id/permissions", h.GetPermissions)
		role.PUT("/:id/permissions", require(model.PermRoleUpdate), h.AssignPermissions)
	}
}

func (r *Router) setupPermissionRoutes(authed *gin.RouterGroup) {
	h := r.systemModule.PermissionHandler
	require := r.middlewareManager.GinRequirePermission

	permission := authed.Group("/permission")
	{
		permission.GET("", h.FindAll)
		permission.GET("/:id", h.FindByID)
		permission.POST("", require(model.PermPermissionAdd), h.Save)
		permission.PUT("", require(model.PermPermissionUpdate), h.Update)
		permission.DELETE("/:id", require(model.PermPermissionDelete), h.Delete)
	}
}

func (r *Router) setupUserRoutes(authed *gin.RouterGroup) {
	h := r.systemModule.UserHandler
	require := r.middlewareManager.GinRequirePermission

	user := authed.Group("/user")
	{
		user.POST("", require(model.PermUserAdd), h.CreateUser)
		user.GET("/:id", h.GetUser)
		user.PUT("/:id/roles", require(model.PermUserUpdate), h.AssignRoles)
	}
}
