/*
 * @author: gang678
 * @date: 2026.10.17
 * @description: serve 子命令，启动 HTTP 服务并在收到信号后优雅关闭
 */

package main

import (
	"os/signal"
	"syscall"

	"github.com/gang678/studentdocument/internal/app/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		app, err := server.NewApp(cfg, configPath, envName)
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return app.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
