/*
 * 用户仓库层:用户数据访问
 * @author: gang678
 * @date: 2026.10.17
 * @func:
 * 	通用CRUD                  - 继承 CrudRepository
 * 	SelectByUsername          - 按用户名查询
 * 	SelectWithRoles           - 按ID查询用户及角色(刷新令牌使用)
 * 	SelectWithRolePermissions - 获取用户、角色及角色权限(鉴权使用)
 * 	ReplaceRoles              - 替换用户角色
 * 	UpdateLastLogin           - 更新最后登录信息
 */

package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/gang678/studentdocument/internal/model"

	"gorm.io/gorm"
)

// UserRepository 用户仓库
type UserRepository struct {
	*CrudRepository[model.User, uint]
}

// NewUserRepository 创建用户仓库实例
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{CrudRepository: NewCrudRepository[model.User, uint](db, "user")}
}

// DeleteByID 删除用户及其角色关联
func (r *UserRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, id).Error
	})
}

// SelectByUsername 按用户名查询，不存在返回 nil, nil
func (r *UserRepository) SelectByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Preload("Roles").Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SelectWithRoles 按ID获取用户及其角色，不存在返回 nil, nil
func (r *UserRepository) SelectWithRoles(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Preload("Roles").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SelectWithRolePermissions 获取用户及其角色、角色权限，不存在返回 nil, nil
func (r *UserRepository) SelectWithRolePermissions(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Preload("Roles.Permissions").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ReplaceRoles 用给定角色集合替换用户角色
// 用户不存在返回 gorm.ErrRecordNotFound，未知角色ID被忽略
func (r *UserRepository) ReplaceRoles(ctx context.Context, userID uint, roleIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		roles := make([]*model.Role, 0, len(roleIDs))
		if len(roleIDs) > 0 {
			if err := tx.Where("id IN ?", roleIDs).Find(&roles).Error; err != nil {
				return err
			}
		}
		return tx.Model(&user).Association("Roles").Replace(roles)
	})
}

// UpdateLastLogin 更新最后登录时间与IP
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uint, ip string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"last_login_at": at, "last_login_ip": ip}).Error
}
