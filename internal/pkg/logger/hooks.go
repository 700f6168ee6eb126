package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gang678/studentdocument/internal/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileHook 按 type 字段把日志写入不同文件，未标注类型的日志写入 file_path
type FileHook struct {
	logConfig *config.LogConfig
	writers   map[LogType]io.Writer
	formatter logrus.Formatter
	mutex     sync.Mutex
}

// NewFileHook 创建一个新的FileHook实例
func NewFileHook(logConfig *config.LogConfig) *FileHook {
	hook := &FileHook{
		logConfig: logConfig,
		writers:   make(map[LogType]io.Writer),
		formatter: &logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		},
	}
	if logConfig.FilePath != "" {
		hook.writers[defaultLog] = hook.newRotatingWriter(logConfig.FilePath)
	}
	return hook
}

// Levels 返回此Hook关心的所有日志级别
func (hook *FileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire 在日志触发时执行
func (hook *FileHook) Fire(entry *logrus.Entry) error {
	logType := defaultLog
	switch t := entry.Data["type"].(type) {
	case LogType:
		logType = t
	case string:
		logType = LogType(t)
	}

	formatted, err := hook.formatter.Format(entry)
	if err != nil {
		return err
	}

	hook.mutex.Lock()
	defer hook.mutex.Unlock()

	writer := hook.writerFor(logType)
	if writer == nil {
		return nil
	}
	_, err = writer.Write(formatted)
	return err
}

// writerFor 获取指定类型的writer，不存在时按类型创建，调用方持有锁
func (hook *FileHook) writerFor(logType LogType) io.Writer {
	if writer, ok := hook.writers[logType]; ok {
		return writer
	}

	switch logType {
	case AccessLog, BusinessLog, ErrorLog, SystemLog, AuditLog:
	default:
		return hook.writers[defaultLog]
	}

	filename := filepath.Join(filepath.Dir(hook.logConfig.FilePath), string(logType)+".log")
	writer := hook.newRotatingWriter(filename)
	hook.writers[logType] = writer
	return writer
}

func (hook *FileHook) newRotatingWriter(filename string) io.Writer {
	_ = os.MkdirAll(filepath.Dir(filename), 0o755)
	return &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    hook.logConfig.MaxSize,
		MaxBackups: hook.logConfig.MaxBackups,
		MaxAge:     hook.logConfig.MaxAge,
		Compress:   hook.logConfig.Compress,
	}
}
