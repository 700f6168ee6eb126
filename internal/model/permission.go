/**
 * 模型:权限模型
 * @author: gang678
 * @date: 2026.10.17
 * @description: 权限标识(如 role:add)及其角色关联
 * @func: Permission 结构体、内置权限常量
 */
package model

import (
	"time"
)

// 内置权限标识，由 migrate --seed 写入
const (
	PermRoleAdd          = "role:add"
	PermRoleUpdate       = "role:update"
	PermRoleDelete       = "role:delete"
	PermPermissionAdd    = "permission:add"
	PermPermissionUpdate = "permission:update"
	PermPermissionDelete = "permission:delete"
	PermUserAdd          = "user:add"
	PermUserUpdate       = "user:update"
	PermCheckInfoDelete  = "checkInfo:delete"

	// PermAll 超级权限，匹配所有标识
	PermAll = "*:*"
)

// BuiltinPermissions 内置权限列表
var BuiltinPermissions = []string{
	PermRoleAdd, PermRoleUpdate, PermRoleDelete,
	PermPermissionAdd, PermPermissionUpdate, PermPermissionDelete,
	PermUserAdd, PermUserUpdate,
	PermCheckInfoDelete,
	PermAll,
}

// Permission 权限模型
type Permission struct {
	ID          uint             `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string           `json:"name" gorm:"uniqueIndex;not null;size:100" binding:"required"` // 权限标识，如 role:add
	DisplayName string           `json:"display_name" gorm:"size:100;comment:权限显示名称"`
	Description string           `json:"description" gorm:"size:255;comment:权限描述信息"`
	Resource    string           `json:"resource" gorm:"size:100;comment:资源标识"`
	Action      string           `json:"action" gorm:"size:50;comment:操作标识"`
	Status      PermissionStatus `json:"status" gorm:"default:1;comment:状态1启用0禁用"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	Roles []Role `json:"-" gorm:"many2many:role_permissions;"`
}

// PermissionStatus 权限状态枚举
type PermissionStatus int

const (
	PermissionStatusDisabled PermissionStatus = 0 // 禁用状态
	PermissionStatusEnabled  PermissionStatus = 1 // 启用状态
)

// TableName 指定权限表名
func (Permission) TableName() string {
	return "permissions"
}

func (p *Permission) GetID() uint   { return p.ID }
func (p *Permission) SetID(id uint) { p.ID = id }

// FullName 权限的完整标识(资源:操作)，未拆分时使用 Name
func (p *Permission) FullName() string {
	if p.Resource != "" && p.Action != "" {
		return p.Resource + ":" + p.Action
	}
	return p.Name
}

// IsActive 权限是否启用
func (p *Permission) IsActive() bool {
	return p.Status == PermissionStatusEnabled
}
