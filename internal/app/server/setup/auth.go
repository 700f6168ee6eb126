package setup

import (
	"time"

	"github.com/gang678/studentdocument/internal/config"
	authHandler "github.com/gang678/studentdocument/internal/handler/auth"
	authPkg "github.com/gang678/studentdocument/internal/pkg/auth"
	"github.com/gang678/studentdocument/internal/pkg/logger"
	"github.com/gang678/studentdocument/internal/repo/memory"
	"github.com/gang678/studentdocument/internal/repo/mysql"
	redisRepo "github.com/gang678/studentdocument/internal/repo/redis"
	authService "github.com/gang678/studentdocument/internal/service/auth"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// BuildAuthModule 构建认证模块
// session.store=redis 时 redisClient 不能为空，否则使用内存存储
func BuildAuthModule(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, passwordManager *authPkg.PasswordManager) *AuthModule {
	jwtCfg := cfg.Security.JWT
	jwtManager := authPkg.NewJWTManager(jwtCfg.Secret, jwtCfg.Issuer, jwtCfg.AccessTokenExpire, jwtCfg.RefreshTokenExpire)

	var tokenStore TokenStoreCloser
	if cfg.Session.Store == "redis" && redisClient != nil {
		tokenStore = redisRepo.NewSessionRepository(redisClient)
	} else {
		tokenStore = memory.NewSessionRepository(10 * time.Minute)
	}
	logger.WithFields(map[string]interface{}{
		"operation": "setup",
		"option":    "setup.auth.session_store",
		"func_name": "setup.auth.BuildAuthModule",
		"store":     cfg.Session.Store,
	}).Info("会话存储初始化完成")

	userRepo := mysql.NewUserRepository(db)
	rbacService := authService.NewRBACService(userRepo)
	sessionService := authService.NewSessionService(userRepo, tokenStore, jwtManager, passwordManager)

	return &AuthModule{
		LoginHandler:   authHandler.NewLoginHandler(sessionService),
		LogoutHandler:  authHandler.NewLogoutHandler(sessionService),
		RefreshHandler: authHandler.NewRefreshHandler(sessionService),
		SessionService: sessionService,
		RBACService:    rbacService,
		TokenStore:     tokenStore,
	}
}
