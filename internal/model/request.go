/**
 * 模型:请求模型
 * @author: gang678
 * @date: 2026.10.17
 * @description: 非实体请求体
 */
package model

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Nickname string `json:"nickname" binding:"max=50"`
	RoleIDs  []uint `json:"role_ids"`
}

// AssignIDsRequest 关联分配请求(用户角色、角色权限)
type AssignIDsRequest struct {
	IDs []uint `json:"ids"`
}

// RefreshTokenRequest 刷新令牌请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
