package database

import (
	"fmt"

	"github.com/gang678/studentdocument/internal/config"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQLConnection 创建MySQL数据库连接
func NewMySQLConnection(cfg *config.MySQLConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.GetMySQLDSN()), gormConfig(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	if _, err := configurePool(db, poolConfig{
		maxIdleConns:    cfg.MaxIdleConns,
		maxOpenConns:    cfg.MaxOpenConns,
		connMaxLifetime: cfg.ConnMaxLifetime,
		connMaxIdleTime: cfg.ConnMaxIdleTime,
	}); err != nil {
		return nil, fmt.Errorf("mysql: %w", err)
	}

	return db, nil
}
