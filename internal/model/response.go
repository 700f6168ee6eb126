/**
 * 模型:响应模型
 * @author: gang678
 * @date: 2026.10.17
 * @description: 错误响应信封与登录响应；成功时实体、列表、布尔值直接序列化
 */
package model

import "github.com/gang678/studentdocument/internal/model/system"

// APIResponse 通用API响应结构
type APIResponse struct {
	Code    int                      `json:"code,omitempty"`
	Status  string                   `json:"status"` // "success" 或 "failed"
	Message string                   `json:"message"`
	Data    interface{}              `json:"data,omitempty"`
	Error   string                   `json:"error,omitempty"`
	Errors  []system.ValidationError `json:"errors,omitempty"`
}

// LoginResponse 登录响应结构
type LoginResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}
