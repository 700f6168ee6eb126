/*
 * @author: gang678
 * @date: 2026.10.17
 * @description: 错误到 HTTP 状态码的映射与错误响应
 */
package base

import (
	"errors"
	"net/http"

	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/model/system"
	"github.com/gang678/studentdocument/internal/pkg/logger"
	"github.com/gang678/studentdocument/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StatusCode 根据错误类型获取HTTP状态码
func StatusCode(err error) int {
	var ve *system.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, system.ErrUnauthorized),
		errors.Is(err, system.ErrInvalidCredentials),
		errors.Is(err, system.ErrTokenInvalid),
		errors.Is(err, system.ErrTokenRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, system.ErrPermissionDenied),
		errors.Is(err, system.ErrUserDisabled):
		return http.StatusForbidden
	case errors.Is(err, system.ErrNotFound),
		errors.Is(err, system.ErrUserNotFound),
		errors.Is(err, system.ErrRoleNotFound):
		return http.StatusNotFound
	case errors.Is(err, system.ErrCheckInfoExists),
		errors.Is(err, system.ErrUsernameExists),
		errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError 记录错误日志并写入错误响应
// 5xx 不向客户端暴露内部错误信息
func RespondError(c *gin.Context, operation string, err error) {
	status := StatusCode(err)
	meta := utils.GetRequestMeta(c)

	logger.LogError(err, meta.RequestID, meta.UserID, meta.ClientIP, meta.Path, meta.Method, map[string]interface{}{
		"operation":   operation,
		"status_code": status,
		"user_agent":  meta.UserAgent,
	})

	resp := model.APIResponse{
		Code:    status,
		Status:  "failed",
		Message: http.StatusText(status),
	}
	var ve *system.ValidationError
	switch {
	case errors.As(err, &ve):
		resp.Message = "validation failed"
		resp.Errors = []system.ValidationError{*ve}
	case status < http.StatusInternalServerError:
		resp.Error = err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}

// BindError 请求体解析失败
func BindError(c *gin.Context, operation string, err error) {
	RespondError(c, operation, system.NewValidationError("body", err.Error()))
}
