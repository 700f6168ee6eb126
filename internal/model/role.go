/**
 * 模型:角色模型
 * @author: gang678
 * @date: 2026.10.17
 * @description: 角色数据模型，角色名用于面向终端用户的列表过滤(医生/用户)，不要求唯一
 * @func: Role 结构体及相关方法
 */
package model

import (
	"strings"
	"time"
)

// Role 角色模型
type Role struct {
	ID          uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string     `json:"name" gorm:"index;not null;size:50" binding:"required"` // 角色名称
	DisplayName string     `json:"display_name" gorm:"size:100"`
	Description string     `json:"description" gorm:"size:255"`
	Status      RoleStatus `json:"status" gorm:"default:1;comment:角色状态:0-禁用,1-启用"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Users       []User       `json:"-" gorm:"many2many:user_roles;"`
	Permissions []Permission `json:"permissions,omitempty" gorm:"many2many:role_permissions;"`
}

// RoleStatus 角色状态枚举
type RoleStatus int

const (
	RoleStatusDisabled RoleStatus = 0 // 禁用状态
	RoleStatusEnabled  RoleStatus = 1 // 启用状态
)

// RolePermission 角色权限关联表
type RolePermission struct {
	RoleID       uint      `json:"role_id" gorm:"primaryKey"`
	PermissionID uint      `json:"permission_id" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName 指定角色表名
func (Role) TableName() string {
	return "roles"
}

// TableName 指定角色权限关联表名
func (RolePermission) TableName() string {
	return "role_permissions"
}

func (r *Role) GetID() uint   { return r.ID }
func (r *Role) SetID(id uint) { r.ID = id }

// IsActive 检查角色是否处于启用状态
func (r *Role) IsActive() bool {
	return r.Status == RoleStatusEnabled
}

// NameContainsAny 角色名是否包含任一关键字
func (r *Role) NameContainsAny(keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(r.Name, kw) {
			return true
		}
	}
	return false
}
