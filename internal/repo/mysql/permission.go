/*
 * 权限仓库层:权限数据访问
 * @author: gang678
 * @date: 2026.10.17
 * @func:
 * 	通用CRUD      - 继承 CrudRepository
 * 	DeleteByID    - 删除权限并清理角色关联
 * 	SelectByNames - 按权限标识批量查询
 */

package mysql

import (
	"context"

	"github.com/gang678/studentdocument/internal/model"

	"gorm.io/gorm"
)

// PermissionRepository 权限仓库
type PermissionRepository struct {
	*CrudRepository[model.Permission, uint]
}

// NewPermissionRepository 创建权限仓库实例
func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{CrudRepository: NewCrudRepository[model.Permission, uint](db, "permission")}
}

// DeleteByID 删除权限及其角色关联
func (r *PermissionRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("permission_id = ?", id).Delete(&model.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Permission{}, id).Error
	})
}

// SelectByNames 按权限标识批量查询
func (r *PermissionRepository) SelectByNames(ctx context.Context, names []string) ([]*model.Permission, error) {
	permissions := make([]*model.Permission, 0, len(names))
	if len(names) == 0 {
		return permissions, nil
	}
	err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&permissions).Error
	return permissions, err
}
