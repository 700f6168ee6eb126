package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gang678/studentdocument/internal/config"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// poolConfig 连接池参数
type poolConfig struct {
	maxIdleConns    int
	maxOpenConns    int
	connMaxLifetime time.Duration
	connMaxIdleTime time.Duration
}

// NewConnection 根据 database.driver 创建关系型数据库连接
func NewConnection(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "", "mysql":
		return NewMySQLConnection(&cfg.MySQL)
	case "postgres":
		return NewPostgresConnection(&cfg.Postgres)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// gormConfig 公共 GORM 配置
// TranslateError 打开后唯一键冲突统一返回 gorm.ErrDuplicatedKey，便于业务层识别
func gormConfig(level string) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel(level)),
		TranslateError: true,
	}
}

// gormLogLevel 配置GORM日志级别
func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	default:
		return logger.Info
	}
}

// configurePool 配置连接池并测试连接
func configurePool(db *gorm.DB, pool poolConfig) (*sql.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if pool.maxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.maxIdleConns)
	}
	if pool.maxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.maxOpenConns)
	}
	sqlDB.SetConnMaxLifetime(pool.connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(pool.connMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return sqlDB, nil
}
