/**
 * 应用层:表结构迁移与初始数据
 * @author: gang678
 * @date: 2026.10.17
 * @func:
 * 	Migrate - AutoMigrate 全部模型，drop 为真时先删表
 * 	Seed    - 幂等写入内置权限、内置角色与管理员账号
 */

package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/gang678/studentdocument/internal/app/server/setup"
	"github.com/gang678/studentdocument/internal/config"
	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/model/system"
	authPkg "github.com/gang678/studentdocument/internal/pkg/auth"
	"github.com/gang678/studentdocument/internal/pkg/logger"
	"github.com/gang678/studentdocument/internal/pkg/query"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// 内置角色
const (
	RoleAdmin  = "管理员"
	RoleDoctor = "医生"
	RoleUser   = "用户"
)

// DefaultAdminUsername 初始化管理员用户名
const DefaultAdminUsername = "admin"

// Models 需要迁移的模型，关联表放在最后
func Models() []any {
	return []any{
		&model.Permission{},
		&model.Role{},
		&model.User{},
		&model.CheckInfo{},
		&model.RolePermission{},
		&model.UserRole{},
	}
}

// Migrate 迁移表结构
func Migrate(db *gorm.DB, drop bool) error {
	models := Models()
	if drop {
		// 先删关联表
		reversed := make([]any, 0, len(models))
		for i := len(models) - 1; i >= 0; i-- {
			reversed = append(reversed, models[i])
		}
		if err := db.Migrator().DropTable(reversed...); err != nil {
			return fmt.Errorf("drop tables: %w", err)
		}
		logger.LogSystemEvent("migrate", "drop", "tables dropped", logrus.WarnLevel, nil)
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.LogSystemEvent("migrate", "auto_migrate", "tables migrated", logrus.InfoLevel, map[string]interface{}{
		"models": len(models),
	})
	return nil
}

// SeedOptions 初始数据参数
type SeedOptions struct {
	AdminUsername   string
	AdminPassword   string
	PasswordManager *authPkg.PasswordManager
}

// Seed 写入初始数据，已存在的记录保持不变
func Seed(ctx context.Context, db *gorm.DB, cfg *config.Config, opts SeedOptions) error {
	if opts.AdminUsername == "" {
		opts.AdminUsername = DefaultAdminUsername
	}
	if opts.AdminPassword == "" {
		return errors.New("admin password is required for seeding")
	}
	pm := opts.PasswordManager
	if pm == nil {
		pm = authPkg.NewPasswordManager(nil)
	}

	sys := setup.BuildSystemModule(db, cfg, pm)

	permissions, err := sys.PermissionService.EnsureBuiltin(ctx)
	if err != nil {
		return fmt.Errorf("seed permissions: %w", err)
	}
	var allID uint
	for _, p := range permissions {
		if p.Name == model.PermAll {
			allID = p.ID
		}
	}

	roleIDs := make(map[string]uint, 3)
	for _, name := range []string{RoleAdmin, RoleDoctor, RoleUser} {
		found, err := sys.RoleService.SelectByExample(ctx, query.NewCriteria().AndEqualTo("name", name))
		if err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
		if len(found) > 0 {
			roleIDs[name] = found[0].ID
			continue
		}
		role, err := sys.RoleService.Insert(ctx, &model.Role{Name: name, DisplayName: name, Status: model.RoleStatusEnabled})
		if err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
		roleIDs[name] = role.ID
	}

	if _, err := sys.RoleService.AssignPermissions(ctx, roleIDs[RoleAdmin], []uint{allID}); err != nil {
		return fmt.Errorf("seed admin permissions: %w", err)
	}

	_, err = sys.UserService.CreateUser(ctx, &model.CreateUserRequest{
		Username: opts.AdminUsername,
		Password: opts.AdminPassword,
		Nickname: RoleAdmin,
		RoleIDs:  []uint{roleIDs[RoleAdmin]},
	})
	switch {
	case errors.Is(err, system.ErrUsernameExists):
		logger.LogSystemEvent("migrate", "seed", "admin user already exists", logrus.InfoLevel, map[string]interface{}{
			"username": opts.AdminUsername,
		})
	case err != nil:
		return fmt.Errorf("seed admin user: %w", err)
	}

	logger.LogSystemEvent("migrate", "seed", "seed data ready", logrus.InfoLevel, map[string]interface{}{
		"permissions": len(permissions),
		"roles":       len(roleIDs),
	})
	return nil
}
