/*
 * 角色仓库层:角色数据访问
 * @author: gang678
 * @date: 2026.10.17
 * @description: 单纯数据访问，不包含业务逻辑
 * @func:
 * 	通用CRUD    - 继承 CrudRepository
 * 	DeleteByID  - 删除角色并清理用户、权限关联
 * 	SelectWithPermissions - 获取角色及其权限
 * 	ReplacePermissions    - 替换角色权限
 */

package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/pkg/logger"

	"gorm.io/gorm"
)

// RoleRepository 角色仓库
type RoleRepository struct {
	*CrudRepository[model.Role, uint]
}

// NewRoleRepository 创建角色仓库实例
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{CrudRepository: NewCrudRepository[model.Role, uint](db, "role")}
}

// DeleteByID 删除角色，同一事务内删除角色的用户与权限关联
func (r *RoleRepository) DeleteByID(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&model.RolePermission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", id).Delete(&model.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Role{}, id).Error
	})
	if err != nil {
		logger.LogError(err, "", 0, "", "role_delete", "DELETE", map[string]interface{}{
			"operation": "delete_role",
			"role_id":   id,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}
	return nil
}

// SelectWithPermissions 获取角色及其权限，不存在返回 nil, nil
func (r *RoleRepository) SelectWithPermissions(ctx context.Context, id uint) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).Preload("Permissions").First(&role, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// ReplacePermissions 用给定权限集合替换角色权限
// 角色不存在返回 gorm.ErrRecordNotFound，未知权限ID被忽略
func (r *RoleRepository) ReplacePermissions(ctx context.Context, roleID uint, permissionIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role model.Role
		if err := tx.First(&role, roleID).Error; err != nil {
			return err
		}

		permissions := make([]model.Permission, 0, len(permissionIDs))
		if len(permissionIDs) > 0 {
			if err := tx.Where("id IN ?", permissionIDs).Find(&permissions).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&role).Association("Permissions").Replace(permissions); err != nil {
			return fmt.Errorf("replace role permissions: %w", err)
		}
		return nil
	})
}
