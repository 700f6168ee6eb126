/*
 * @author: gang678
 * @date: 2026.10.17
 * @description: Cobra Root Command 定义
 */

package main

import (
	"fmt"
	"os"

	"github.com/gang678/studentdocument/internal/config"

	"github.com/spf13/cobra"
)

var (
	configPath string
	envName    string
)

var rootCmd = &cobra.Command{
	Use:   "studentdoc",
	Short: "学生档案管理服务",
	Long: `studentdoc 提供学生档案的角色权限管理与年度体检信息管理接口。

示例:
  studentdoc migrate --seed          # 建表并写入内置权限、角色与管理员
  studentdoc serve --env production  # 使用 configs/config.prod.yaml 启动服务`,
	SilenceUsage: true,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "配置文件目录 (默认: ./configs)")
	rootCmd.PersistentFlags().StringVar(&envName, "env", "", "运行环境: development, test, production")
}

// loadConfig 加载命令行指定的配置
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath, envName)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	return cfg, nil
}
