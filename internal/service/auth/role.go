/*
 * @author: gang678
 * @date: 2026.10.17
 * @description: 角色服务
 * @func:
 * 	1.通用CRUD(继承 crud.Service)
 * 	2.面向终端用户的角色列表(按角色名关键字过滤)
 * 	3.角色权限查询与分配
 */
package auth

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/model/system"
	"github.com/gang678/studentdocument/internal/repo/mysql"
	"github.com/gang678/studentdocument/internal/service/crud"

	"gorm.io/gorm"
)

// RoleService 角色服务
type RoleService struct {
	*crud.Service[model.Role, uint]
	roleRepo *mysql.RoleRepository
	keywords []string
}

// NewRoleService 创建角色服务
// keywords 为角色列表保留的角色名关键字，如 医生、用户
func NewRoleService(roleRepo *mysql.RoleRepository, keywords []string) *RoleService {
	return &RoleService{
		Service:  crud.NewService[model.Role, uint](roleRepo, "role"),
		roleRepo: roleRepo,
		keywords: slices.Clone(keywords),
	}
}

// ListForEndUsers 返回角色名包含任一关键字的角色，保持原有顺序
// 全部角色为空时原样返回空列表
func (s *RoleService) ListForEndUsers(ctx context.Context) ([]*model.Role, error) {
	roles, err := s.SelectAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return roles, nil
	}

	filtered := make([]*model.Role, 0, len(roles))
	for _, role := range roles {
		if role.NameContainsAny(s.keywords) {
			filtered = append(filtered, role)
		}
	}
	return filtered, nil
}

// GetWithPermissions 获取角色及其权限
func (s *RoleService) GetWithPermissions(ctx context.Context, roleID uint) (*model.Role, error) {
	role, err := s.roleRepo.SelectWithPermissions(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("%w: role permissions: %w", system.ErrDataAccess, err)
	}
	if role == nil {
		return nil, system.ErrRoleNotFound
	}
	return role, nil
}

// AssignPermissions 替换角色权限
func (s *RoleService) AssignPermissions(ctx context.Context, roleID uint, permissionIDs []uint) (*model.Role, error) {
	if err := s.roleRepo.ReplacePermissions(ctx, roleID, permissionIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, system.ErrRoleNotFound
		}
		return nil, fmt.Errorf("%w: assign role permissions: %w", system.ErrDataAccess, err)
	}
	return s.GetWithPermissions(ctx, roleID)
}
