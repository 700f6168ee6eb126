package database

import (
	"fmt"

	"github.com/gang678/studentdocument/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgresConnection 创建PostgreSQL数据库连接
func NewPostgresConnection(cfg *config.PostgresConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetPostgresDSN()), gormConfig(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if _, err := configurePool(db, poolConfig{
		maxIdleConns:    cfg.MaxIdleConns,
		maxOpenConns:    cfg.MaxOpenConns,
		connMaxLifetime: cfg.ConnMaxLifetime,
		connMaxIdleTime: cfg.ConnMaxIdleTime,
	}); err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return db, nil
}
