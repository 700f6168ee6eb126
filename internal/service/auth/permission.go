/*
 * @author: gang678
 * @date: 2026.10.17
 * @description: 权限服务，权限标识唯一
 */
package auth

import (
	"context"
	"strings"

	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/repo/mysql"
	"github.com/gang678/studentdocument/internal/service/crud"
)

// PermissionService 权限服务
type PermissionService struct {
	*crud.Service[model.Permission, uint]
	permRepo *mysql.PermissionRepository
}

// NewPermissionService 创建权限服务
func NewPermissionService(permRepo *mysql.PermissionRepository) *PermissionService {
	return &PermissionService{
		Service:  crud.NewService[model.Permission, uint](permRepo, "permission"),
		permRepo: permRepo,
	}
}

// EnsureBuiltin 补齐缺失的内置权限，返回全部内置权限
func (s *PermissionService) EnsureBuiltin(ctx context.Context) ([]*model.Permission, error) {
	existing, err := s.permRepo.SelectByNames(ctx, model.BuiltinPermissions)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*model.Permission, len(existing))
	for _, p := range existing {
		byName[p.Name] = p
	}

	result := make([]*model.Permission, 0, len(model.BuiltinPermissions))
	for _, name := range model.BuiltinPermissions {
		if p, ok := byName[name]; ok {
			result = append(result, p)
			continue
		}
		resource, action, _ := strings.Cut(name, ":")
		p := &model.Permission{
			Name:        name,
			DisplayName: name,
			Resource:    resource,
			Action:      action,
			Status:      model.PermissionStatusEnabled,
		}
		if _, err := s.Insert(ctx, p); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}
