/**
 * 初始化
 * @author: gang678
 * @date: 2026.10.17
 * @description: 各模块装配结果，Handler → Service → Repository 由 setup 层完成依赖注入
 */
package setup

import (
	authHandler "github.com/gang678/studentdocument/internal/handler/auth"
	studentHandler "github.com/gang678/studentdocument/internal/handler/student"
	systemHandler "github.com/gang678/studentdocument/internal/handler/system"
	authService "github.com/gang678/studentdocument/internal/service/auth"
	studentService "github.com/gang678/studentdocument/internal/service/student"
)

// TokenStoreCloser 令牌吊销存储，关闭时释放后台资源
type TokenStoreCloser interface {
	authService.TokenStore
	Close() error
}

// AuthModule 认证模块：登录、登出、刷新，以及中间件依赖的会话与RBAC服务
type AuthModule struct {
	LoginHandler   *authHandler.LoginHandler
	LogoutHandler  *authHandler.LogoutHandler
	RefreshHandler *authHandler.RefreshHandler

	SessionService *authService.SessionService
	RBACService    *authService.RBACService
	TokenStore     TokenStoreCloser
}

// SystemModule 系统管理模块：角色、权限、用户
type SystemModule struct {
	RoleHandler       *systemHandler.RoleHandler
	PermissionHandler *systemHandler.PermissionHandler
	UserHandler       *systemHandler.UserHandler

	RoleService       *authService.RoleService
	PermissionService *authService.PermissionService
	UserService       *authService.UserService
}

// StudentModule 学生档案模块：体检信息
type StudentModule struct {
	CheckInfoHandler *studentHandler.CheckInfoHandler
	CheckInfoService *studentService.CheckInfoService
}
