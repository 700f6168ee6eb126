package setup

import (
	"github.com/gang678/studentdocument/internal/config"
	systemHandler "github.com/gang678/studentdocument/internal/handler/system"
	authPkg "github.com/gang678/studentdocument/internal/pkg/auth"
	"github.com/gang678/studentdocument/internal/pkg/logger"
	"github.com/gang678/studentdocument/internal/repo/mysql"
	authService "github.com/gang678/studentdocument/internal/service/auth"

	"gorm.io/gorm"
)

// BuildSystemModule 构建系统管理模块(角色、权限、用户)
func BuildSystemModule(db *gorm.DB, cfg *config.Config, passwordManager *authPkg.PasswordManager) *SystemModule {
	keywords := cfg.App.RoleListKeywords
	if len(keywords) == 0 {
		keywords = config.DefaultRoleListKeywords
	}

	roleService := authService.NewRoleService(mysql.NewRoleRepository(db), keywords)
	permissionService := authService.NewPermissionService(mysql.NewPermissionRepository(db))
	userService := authService.NewUserService(mysql.NewUserRepository(db), passwordManager)

	logger.WithFields(map[string]interface{}{
		"operation":          "setup",
		"option":             "setup.system.done",
		"func_name":          "setup.system.BuildSystemModule",
		"role_list_keywords": keywords,
	}).Info("系统管理模块构建完成")

	return &SystemModule{
		RoleHandler:       systemHandler.NewRoleHandler(roleService),
		PermissionHandler: systemHandler.NewPermissionHandler(permissionService),
		UserHandler:       systemHandler.NewUserHandler(userService),
		RoleService:       roleService,
		PermissionService: permissionService,
		UserService:       userService,
	}
}
