// 分类日志记录方法
package logger

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LogType 日志类型，FileHook 按类型分文件
type LogType string

const (
	defaultLog LogType = "default"
	// AccessLog 访问日志 - 记录HTTP请求
	AccessLog LogType = "access"
	// BusinessLog 业务日志 - 记录角色、体检记录等业务操作
	BusinessLog LogType = "business"
	// ErrorLog 错误日志
	ErrorLog LogType = "error"
	// SystemLog 系统日志 - 启动、关闭、组件状态
	SystemLog LogType = "system"
	// AuditLog 审计日志 - 登录、鉴权拒绝等安全相关操作
	AuditLog LogType = "audit"
)

// FormatTimestamp 格式化时间戳为统一的毫秒精度格式
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampFormat)
}

// NowFormatted 返回当前时间的格式化字符串
func NowFormatted() string {
	return FormatTimestamp(time.Now())
}

func withExtra(fields logrus.Fields, extraFields map[string]interface{}) logrus.Fields {
	for k, v := range extraFields {
		if _, reserved := fields[k]; !reserved {
			fields[k] = v
		}
	}
	return fields
}

// LogAccessRequest 记录HTTP访问日志
func LogAccessRequest(c *gin.Context, startTime time.Time, requestID string, userID uint) {
	if LoggerInstance == nil {
		return
	}

	LoggerInstance.logger.WithFields(logrus.Fields{
		"type":          AccessLog,
		"method":        c.Request.Method,
		"path":          c.Request.URL.Path,
		"query":         c.Request.URL.RawQuery,
		"status_code":   c.Writer.Status(),
		"response_time": time.Since(startTime).Milliseconds(),
		"client_ip":     c.ClientIP(),
		"user_agent":    c.Request.UserAgent(),
		"user_id":       userID,
		"request_id":    requestID,
		"request_size":  c.Request.ContentLength,
		"response_size": c.Writer.Size(),
	}).Info("HTTP request processed")
}

// LogBusinessOperation 记录业务操作日志
// result 为 success 时记 info，否则记 warn
func LogBusinessOperation(operation string, userID uint, username, clientIP, requestID, result, message string, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	entry := LoggerInstance.logger.WithFields(withExtra(logrus.Fields{
		"type":       BusinessLog,
		"operation":  operation,
		"user_id":    userID,
		"username":   username,
		"client_ip":  clientIP,
		"result":     result,
		"detail":     message,
		"request_id": requestID,
	}, extraFields))

	if result == "success" {
		entry.Info(fmt.Sprintf("Business operation: %s", operation))
	} else {
		entry.Warn(fmt.Sprintf("Business operation failed: %s", operation))
	}
}

// LogError 记录错误日志
func LogError(err error, requestID string, userID uint, clientIP, path, method string, extraFields map[string]interface{}) {
	if LoggerInstance == nil || err == nil {
		return
	}

	LoggerInstance.logger.WithFields(withExtra(logrus.Fields{
		"type":       ErrorLog,
		"error":      err.Error(),
		"request_id": requestID,
		"user_id":    userID,
		"client_ip":  clientIP,
		"path":       path,
		"method":     method,
	}, extraFields)).Errorf("System error occurred: %s", err.Error())
}

// LogSystemEvent 记录系统事件日志
func LogSystemEvent(component, event, message string, level logrus.Level, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	LoggerInstance.logger.WithFields(withExtra(logrus.Fields{
		"type":      SystemLog,
		"component": component,
		"event":     event,
		"detail":    message,
	}, extraFields)).Log(level, fmt.Sprintf("System event: %s - %s", component, event))
}

// LogAuditOperation 记录审计日志
func LogAuditOperation(userID uint, username, action, resource, result, clientIP, userAgent, requestID string, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	LoggerInstance.logger.WithFields(withExtra(logrus.Fields{
		"type":       AuditLog,
		"user_id":    userID,
		"username":   username,
		"action":     action,
		"resource":   resource,
		"result":     result,
		"client_ip":  clientIP,
		"user_agent": userAgent,
		"request_id": requestID,
	}, extraFields)).Info(fmt.Sprintf("Audit: %s performed %s on %s", username, action, resource))
}
