/**
 * 路由:路由管理器
 * @author: gang678
 * @date: 2026.10.17
 * @description: 装配模块、注册全局中间件与各模块路由
 */
package router

import (
	"github.com/gang678/studentdocument/internal/app/server/middleware"
	"github.com/gang678/studentdocument/internal/app/server/setup"
	"github.com/gang678/studentdocument/internal/config"
	authPkg "github.com/gang678/studentdocument/internal/pkg/auth"
	"github.com/gang678/studentdocument/internal/pkg/logger"
	"github.com/gang678/studentdocument/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// Dependencies 路由装配所需的外部依赖
type Dependencies struct {
	DB          *gorm.DB
	RedisClient *redis.Client // session.store=redis 时使用，可为空
	Config      *config.Config
	// PasswordManager 为空时使用默认 Argon2id 参数
	PasswordManager *authPkg.PasswordManager
	// Registry 为空且启用指标时使用独立 registry
	Registry *prometheus.Registry
}

// Router 路由管理器
type Router struct {
	config            *config.Config
	db                *gorm.DB
	engine            *gin.Engine
	middlewareManager *middleware.MiddlewareManager
	registry          *prometheus.Registry

	authModule    *setup.AuthModule
	systemModule  *setup.SystemModule
	studentModule *setup.StudentModule
}

// NewRouter 创建路由管理器实例
func NewRouter(deps Dependencies) *Router {
	cfg := deps.Config

	passwordManager := deps.PasswordManager
	if passwordManager == nil {
		passwordManager = authPkg.NewPasswordManager(nil)
	}

	authModule := setup.BuildAuthModule(deps.DB, deps.RedisClient, cfg, passwordManager)
	systemModule := setup.BuildSystemModule(deps.DB, cfg, passwordManager)
	studentModule := setup.BuildStudentModule(deps.DB)

	var recorder metrics.Recorder = metrics.Nop{}
	registry := deps.Registry
	if cfg.Monitor.Metrics.Enabled {
		if registry == nil {
			registry = prometheus.NewRegistry()
		}
		recorder = metrics.NewCollector(registry)
	}

	middlewareManager := middleware.NewMiddlewareManager(
		authModule.SessionService,
		authModule.RBACService,
		&cfg.Security,
		recorder,
	)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	engine := gin.New()

	return &Router{
		config:            cfg,
		db:                deps.DB,
		engine:            engine,
		middlewareManager: middlewareManager,
		registry:          registry,
		authModule:        authModule,
		systemModule:      systemModule,
		studentModule:     studentModule,
	}
}

// SetupRoutes 先注册全局中间件，再注册各模块路由
func (r *Router) SetupRoutes() {
	r.registerGlobalMiddleware()
	r.registerRoutes()
}

// GetEngine 获取Gin引擎实例
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Close 释放中间件与会话存储的后台资源
func (r *Router) Close() error {
	r.middlewareManager.Close()
	return r.authModule.TokenStore.Close()
}

func (r *Router) registerGlobalMiddleware() {
	r.engine.Use(r.middlewareManager.GinRecoveryMiddleware())
	r.engine.Use(r.middlewareManager.GinRequestIDMiddleware())
	r.engine.Use(r.middlewareManager.GinCORSMiddleware())
	r.engine.Use(r.middlewareManager.GinSecurityHeadersMiddleware())
	r.engine.Use(r.middlewareManager.GinLoggingMiddleware())
	r.engine.Use(r.middlewareManager.GinMetricsMiddleware())
	r.engine.Use(r.middlewareManager.GinRateLimitMiddleware())
}

func (r *Router) registerRoutes() {
	api := r.engine.Group("/api")

	// 公共路由（不需要认证）
	r.setupPublicRoutes(api)
	r.setupHealthRoutes(api)

	// 需要 JWT 认证的路由
	authed := api.Group("", r.middlewareManager.GinJWTAuthMiddleware())
	r.setupRoleRoutes(authed)
	r.setupPermissionRoutes(authed)
	r.setupUserRoutes(authed)
	r.setupCheckInfoRoutes(authed)

	if r.config.Monitor.Metrics.Enabled {
		path := r.config.Monitor.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.engine.GET(path, gin.WrapH(metrics.Handler(r.registry)))
	}

	logger.WithFields(map[string]interface{}{
		"operation": "register_routes",
		"func_name": "router.registerRoutes",
		"routes":    len(r.engine.Routes()),
	}).Info("路由注册完成")
}
