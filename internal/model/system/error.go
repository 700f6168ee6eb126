/**
 * 模型:错误定义
 * @author: gang678
 * @date: 2026.10.17
 * @description: 业务错误常量，handler 按错误类型映射 HTTP 状态码
 * @func: 错误常量、ValidationError
 */
package system

import "errors"

// 数据访问错误：连接失败、约束冲突等，统一包装后返回
var ErrDataAccess = errors.New("数据访问失败")

// 业务错误
var (
	ErrNotFound        = errors.New("记录不存在")
	ErrCheckInfoExists = errors.New("该用户该年度体检记录已存在")
	ErrUserNotFound    = errors.New("用户不存在")
	ErrRoleNotFound    = errors.New("角色不存在")
	ErrUsernameExists  = errors.New("用户名已存在")
)

// 认证错误
var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserDisabled       = errors.New("用户已被禁用")
	ErrTokenInvalid       = errors.New("令牌无效")
	ErrTokenRevoked       = errors.New("令牌已注销")
)

// 权限错误
var (
	ErrPermissionDenied = errors.New("权限不足")
	ErrUnauthorized     = errors.New("未授权访问")
)

// ValidationError 验证错误结构体
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationError 创建验证错误
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error 实现error接口
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// IsValidationError 检查是否为验证错误
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
