// 日志管理器
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gang678/studentdocument/internal/config"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// LoggerManager 日志管理器
type LoggerManager struct {
	logger *logrus.Logger
	config *config.LogConfig
	mu     sync.Mutex
}

// LoggerInstance 全局日志实例，未初始化时所有便捷方法都是空操作
var LoggerInstance *LoggerManager

// InitLogger 初始化日志管理器
// 控制台输出由 output 决定，output=file 时按日志类型分文件写入(见 hooks.go)
func InitLogger(cfg *config.LogConfig) (*LoggerManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("log config cannot be nil")
	}

	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
		logger.Warnf("Invalid log level '%s', using 'info' as default", cfg.Level)
	}
	logger.SetLevel(level)

	if err := setLogFormatter(logger, cfg); err != nil {
		return nil, fmt.Errorf("failed to set log formatter: %w", err)
	}

	logger.SetOutput(outputWriter(cfg))
	if cfg.Output == "file" {
		logger.AddHook(NewFileHook(cfg))
	}
	logger.SetReportCaller(cfg.Caller)

	lm := &LoggerManager{
		logger: logger,
		config: cfg,
	}
	LoggerInstance = lm

	return lm, nil
}

// setLogFormatter 设置日志格式化器
func setLogFormatter(logger *logrus.Logger, cfg *config.LogConfig) error {
	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "function",
				logrus.FieldKeyFile:  "file",
			},
		})
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: timestampFormat,
			FullTimestamp:   true,
		})
	default:
		return fmt.Errorf("unsupported log format: %s", cfg.Format)
	}
	return nil
}

// outputWriter 控制台输出目标
// 文件模式下主输出丢弃，由 FileHook 负责落盘；debug 级别仍然回显到控制台
func outputWriter(cfg *config.LogConfig) io.Writer {
	switch cfg.Output {
	case "stderr":
		return os.Stderr
	case "file":
		if strings.EqualFold(cfg.Level, "debug") {
			return os.Stdout
		}
		return io.Discard
	default:
		return os.Stdout
	}
}

// GetLogger 获取logrus实例
func (lm *LoggerManager) GetLogger() *logrus.Logger {
	return lm.logger
}

// UpdateConfig 运行时更新日志级别和格式
func (lm *LoggerManager) UpdateConfig(newCfg *config.LogConfig) error {
	if newCfg == nil {
		return fmt.Errorf("new config cannot be nil")
	}

	lm.mu.Lock()
	defer lm.mu.Unlock()

	if newCfg.Level != lm.config.Level {
		level, err := logrus.ParseLevel(newCfg.Level)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		lm.logger.SetLevel(level)
		lm.logger.Infof("Log level updated from %s to %s", lm.config.Level, newCfg.Level)
	}

	if newCfg.Format != lm.config.Format {
		if err := setLogFormatter(lm.logger, newCfg); err != nil {
			return fmt.Errorf("failed to update log formatter: %w", err)
		}
	}

	if newCfg.Caller != lm.config.Caller {
		lm.logger.SetReportCaller(newCfg.Caller)
	}

	// 输出目标和文件路径的变化需要重启生效
	updated := *lm.config
	updated.Level = newCfg.Level
	updated.Format = newCfg.Format
	updated.Caller = newCfg.Caller
	lm.config = &updated

	return nil
}

// ReloadCallback 配置热加载回调，注册到 config.ConfigWatcher
func ReloadCallback(_, newConfig *config.Config) error {
	if LoggerInstance == nil || newConfig == nil {
		return nil
	}
	return LoggerInstance.UpdateConfig(&newConfig.Log)
}

// WithFields 添加多个字段
func WithFields(fields logrus.Fields) *logrus.Entry {
	if LoggerInstance != nil {
		return LoggerInstance.logger.WithFields(fields)
	}
	return logrus.NewEntry(logrus.StandardLogger()).WithFields(fields)
}
