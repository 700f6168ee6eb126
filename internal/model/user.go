/**
 * 模型:用户模型
 * @author: gang678
 * @date: 2026.10.17
 * @description: 登录用户(医生、学生用户、管理员)及其角色关联
 * @func: User 结构体及相关方法
 */
package model

import (
	"time"
)

// User 用户模型
type User struct {
	ID          uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	Username    string     `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Password    string     `json:"-" gorm:"not null;size:255"` // Argon2id 哈希
	Nickname    string     `json:"nickname" gorm:"size:50"`
	Status      UserStatus `json:"status" gorm:"default:1;comment:用户状态:0-禁用,1-启用"`
	LastLoginAt *time.Time `json:"last_login_at"`
	LastLoginIP string     `json:"last_login_ip" gorm:"size:45"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Roles []*Role `json:"roles,omitempty" gorm:"many2many:user_roles;"`
}

// UserStatus 用户状态枚举
type UserStatus int

const (
	UserStatusDisabled UserStatus = 0 // 禁用状态
	UserStatusEnabled  UserStatus = 1 // 启用状态
)

// UserRole 用户角色关联表
type UserRole struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey"`
	RoleID    uint      `json:"role_id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定用户表名
func (User) TableName() string {
	return "users"
}

// TableName 指定用户角色关联表名
func (UserRole) TableName() string {
	return "user_roles"
}

func (u *User) GetID() uint   { return u.ID }
func (u *User) SetID(id uint) { u.ID = id }

// IsActive 检查用户是否启用
func (u *User) IsActive() bool {
	return u.Status == UserStatusEnabled
}

// RoleNames 用户角色名称列表
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}
