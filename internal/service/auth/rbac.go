/*
 * @author: gang678
 * @date: 2026.10.17
 * @description: 基于角色的访问控制，每次校验都从存储解析调用者的权限集合
 * @func:
 * 	1.解析用户权限集合
 * 	2.校验权限标识(支持 resource:* 与 *:* 通配)
 */
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/model/system"
)

// UserPermissionSource 用户及其角色权限的数据来源
type UserPermissionSource interface {
	SelectWithRolePermissions(ctx context.Context, id uint) (*model.User, error)
}

// RBACService 基于角色的访问控制服务
type RBACService struct {
	users UserPermissionSource
}

// NewRBACService 创建RBAC服务实例
func NewRBACService(users UserPermissionSource) *RBACService {
	return &RBACService{users: users}
}

// UserPermissions 获取用户的权限标识集合
// 只统计启用角色下的启用权限；用户不存在返回 ErrUnauthorized，用户禁用返回空集合
func (s *RBACService) UserPermissions(ctx context.Context, userID uint) ([]string, error) {
	if userID == 0 {
		return nil, system.ErrUnauthorized
	}

	user, err := s.users.SelectWithRolePermissions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: load user permissions: %w", system.ErrDataAccess, err)
	}
	if user == nil {
		return nil, system.ErrUnauthorized
	}
	if !user.IsActive() {
		return []string{}, nil
	}

	seen := make(map[string]struct{})
	granted := make([]string, 0)
	for _, role := range user.Roles {
		if !role.IsActive() {
			continue
		}
		for i := range role.Permissions {
			perm := &role.Permissions[i]
			if !perm.IsActive() {
				continue
			}
			for _, name := range []string{perm.Name, perm.FullName()} {
				if _, ok := seen[name]; !ok && name != "" {
					seen[name] = struct{}{}
					granted = append(granted, name)
				}
			}
		}
	}
	return granted, nil
}

// HasPermission 检查用户是否拥有指定权限标识
func (s *RBACService) HasPermission(ctx context.Context, userID uint, required string) (bool, error) {
	if required == "" {
		return false, errors.New("required permission cannot be empty")
	}

	granted, err := s.UserPermissions(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, perm := range granted {
		if MatchPermission(perm, required) {
			return true, nil
		}
	}
	return false, nil
}

// MatchPermission 判断已授予的权限是否覆盖所需权限
// 支持精确匹配、*:*、resource:*、*:action
func MatchPermission(granted, required string) bool {
	if granted == required {
		return true
	}

	gRes, gAct, ok := strings.Cut(granted, ":")
	if !ok {
		return false
	}
	rRes, rAct, ok := strings.Cut(required, ":")
	if !ok {
		return false
	}

	return (gRes == "*" || gRes == rRes) && (gAct == "*" || gAct == rAct)
}
