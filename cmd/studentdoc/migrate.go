/*
 * @author: gang678
 * @date: 2026.10.17
 * @description: migrate 子命令，建表并可选写入初始数据
 * @usage:
 *   studentdoc migrate                 # 仅迁移表结构
 *   studentdoc migrate --seed          # 迁移并写入内置权限、角色与管理员
 *   studentdoc migrate --drop --seed   # 先删表(危险操作)
 */

package main

import (
	"fmt"
	"os"

	"github.com/gang678/studentdocument/internal/app/server"
	"github.com/gang678/studentdocument/internal/config"
	"github.com/gang678/studentdocument/internal/pkg/database"
	"github.com/gang678/studentdocument/internal/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	seedData      bool
	dropFirst     bool
	adminUsername string
	adminPassword string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "迁移数据库表结构",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if _, err := logger.InitLogger(&cfg.Log); err != nil {
			return fmt.Errorf("日志初始化失败: %w", err)
		}

		db, err := database.NewConnection(&cfg.Database)
		if err != nil {
			return fmt.Errorf("数据库连接失败: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		if err := server.Migrate(db, dropFirst); err != nil {
			return err
		}
		if !seedData {
			return nil
		}

		password := adminPassword
		if password == "" {
			password = os.Getenv(config.EnvPrefix + "_ADMIN_PASSWORD")
		}
		return server.Seed(cmd.Context(), db, cfg, server.SeedOptions{
			AdminUsername: adminUsername,
			AdminPassword: password,
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().BoolVar(&seedData, "seed", false, "写入内置权限、角色与管理员账号")
	migrateCmd.Flags().BoolVar(&dropFirst, "drop", false, "迁移前删除全部表(危险操作)")
	migrateCmd.Flags().StringVar(&adminUsername, "admin-username", server.DefaultAdminUsername, "初始化管理员用户名")
	migrateCmd.Flags().StringVar(&adminPassword, "admin-password", "", "初始化管理员密码 (默认读取 STUDENTDOC_ADMIN_PASSWORD)")
}
