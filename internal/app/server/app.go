/**
 * 应用层:服务进程生命周期
 * @author: gang678
 * @date: 2026.10.17
 * @description: 组装日志、数据库、Redis、路由与配置热加载，负责 HTTP 服务启动与优雅关闭
 * @func:
 * 	NewApp - 按配置初始化全部依赖
 * 	Run    - 启动 HTTP 服务，ctx 取消后在 5 秒内优雅关闭
 * 	Close  - 释放路由、Redis、数据库与配置监听器
 */

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gang678/studentdocument/internal/app/server/router"
	"github.com/gang678/studentdocument/internal/config"
	"github.com/gang678/studentdocument/internal/pkg/database"
	"github.com/gang678/studentdocument/internal/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ShutdownTimeout 优雅关闭等待时间
const ShutdownTimeout = 5 * time.Second

// App 应用程序
type App struct {
	config      *config.Config
	db          *gorm.DB
	redisClient *redis.Client
	router      *router.Router
	watcher     *config.ConfigWatcher
}

// NewApp 创建应用实例
// configPath/env 同时交给配置监听器，日志级别可运行时热更新
func NewApp(cfg *config.Config, configPath, env string) (*App, error) {
	if _, err := logger.InitLogger(&cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	app := &App{config: cfg, db: db}

	if cfg.Session.Store == "redis" {
		client, err := database.NewRedisConnection(&cfg.Database.Redis)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		app.redisClient = client
	}

	app.router = router.NewRouter(router.Dependencies{
		DB:          db,
		RedisClient: app.redisClient,
		Config:      cfg,
	})
	app.router.SetupRoutes()

	watcher, err := config.NewConfigWatcher(configPath, env)
	if err == nil {
		watcher.AddCallback(logger.ReloadCallback)
		err = watcher.Start()
	}
	if err != nil {
		logger.LogSystemEvent("app", "config_watch", "config watcher disabled: "+err.Error(), logrus.WarnLevel, nil)
	} else {
		app.watcher = watcher
	}

	return app, nil
}

// Router 路由管理器
func (a *App) Router() *router.Router {
	return a.router
}

// Run 启动 HTTP 服务并阻塞，直到 ctx 取消或监听失败
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:           a.config.Server.GetAddress(),
		Handler:        a.router.GetEngine(),
		ReadTimeout:    a.config.Server.ReadTimeout,
		WriteTimeout:   a.config.Server.WriteTimeout,
		IdleTimeout:    a.config.Server.IdleTimeout,
		MaxHeaderBytes: a.config.Server.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.LogSystemEvent("app", "server_start", "starting server on "+srv.Addr, logrus.InfoLevel, map[string]interface{}{
			"mode": a.config.Server.Mode,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.LogSystemEvent("app", "server_shutdown", "shutting down server", logrus.InfoLevel, nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// Close 释放资源，可重复调用
func (a *App) Close() {
	if a.watcher != nil {
		_ = a.watcher.Stop()
		a.watcher = nil
	}
	if a.router != nil {
		if err := a.router.Close(); err != nil {
			logger.LogSystemEvent("app", "close", "token store close failed: "+err.Error(), logrus.WarnLevel, nil)
		}
		a.router = nil
	}
	if a.redisClient != nil {
		_ = a.redisClient.Close()
		a.redisClient = nil
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		a.db = nil
	}
}
