/*
 * @author: gang678
 * @date: 2026.10.17
 * @description: 会话服务，负责登录、登出与访问令牌校验
 * @func:
 * 	1.Login        - 校验密码并签发令牌对
 * 	2.Logout       - 注销访问令牌
 * 	3.ValidateToken - 校验访问令牌(签名、受众、注销状态)
 * 	4.Refresh      - 使用刷新令牌换取新令牌对，旧刷新令牌作废
 */
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/model/system"
	"github.com/gang678/studentdocument/internal/pkg/auth"
	"github.com/gang678/studentdocument/internal/pkg/logger"
	"github.com/gang678/studentdocument/internal/pkg/utils"
)

// TokenStore 已注销令牌存储，内存实现与 Redis 实现均满足
type TokenStore interface {
	RevokeToken(ctx context.Context, token *system.RevokedToken) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// UserLookup 登录所需的用户查询能力
type UserLookup interface {
	SelectByUsername(ctx context.Context, username string) (*model.User, error)
	SelectWithRoles(ctx context.Context, id uint) (*model.User, error)
	UpdateLastLogin(ctx context.Context, userID uint, ip string, at time.Time) error
}

// SessionService 会话服务
type SessionService struct {
	users           UserLookup
	tokens          TokenStore
	jwtManager      *auth.JWTManager
	passwordManager *auth.PasswordManager
}

// NewSessionService 创建会话服务
func NewSessionService(users UserLookup, tokens TokenStore, jwtManager *auth.JWTManager, passwordManager *auth.PasswordManager) *SessionService {
	return &SessionService{
		users:           users,
		tokens:          tokens,
		jwtManager:      jwtManager,
		passwordManager: passwordManager,
	}
}

// Login 用户登录
func (s *SessionService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	clientIP := utils.GetClientIPFromContext(ctx)

	user, err := s.users.SelectByUsername(ctx, req.Username)
	if err != nil {
		logger.LogError(err, "", 0, clientIP, "/api/auth/login", "POST", map[string]interface{}{
			"operation": "login",
			"username":  req.Username,
		})
		return nil, fmt.Errorf("%w: user select by username: %w", system.ErrDataAccess, err)
	}
	if user == nil {
		logger.LogAuditOperation(0, req.Username, "login", "session", "failed", clientIP, "", "",
			map[string]interface{}{"reason": "user_not_found"})
		return nil, system.ErrInvalidCredentials
	}

	ok, err := s.passwordManager.VerifyPassword(req.Password, user.Password)
	if err != nil || !ok {
		logger.LogAuditOperation(user.ID, user.Username, "login", "session", "failed", clientIP, "", "",
			map[string]interface{}{"reason": "invalid_password"})
		return nil, system.ErrInvalidCredentials
	}

	if !user.IsActive() {
		logger.LogAuditOperation(user.ID, user.Username, "login", "session", "failed", clientIP, "", "",
			map[string]interface{}{"reason": "user_disabled"})
		return nil, system.ErrUserDisabled
	}

	pair, err := s.jwtManager.GenerateTokenPair(user.ID, user.Username, user.RoleNames())
	if err != nil {
		return nil, fmt.Errorf("generate token pair: %w", err)
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, clientIP, now); err != nil {
		// 登录信息更新失败不影响登录
		logger.LogError(err, "", user.ID, clientIP, "/api/auth/login", "POST", map[string]interface{}{
			"operation": "update_last_login",
		})
	} else {
		user.LastLoginAt = &now
		user.LastLoginIP = clientIP
	}

	logger.LogAuditOperation(user.ID, user.Username, "login", "session", "success", clientIP, "", "", nil)

	return &model.LoginResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		TokenType:    "Bearer",
	}, nil
}

// ValidateToken 校验访问令牌，已注销的令牌视为无效
func (s *SessionService) ValidateToken(ctx context.Context, tokenString string) (*auth.JWTClaims, error) {
	claims, err := s.jwtManager.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", system.ErrTokenInvalid, err)
	}

	revoked, err := s.tokens.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: token revocation lookup: %w", system.ErrDataAccess, err)
	}
	if revoked {
		return nil, system.ErrTokenRevoked
	}
	return claims, nil
}

// Logout 注销访问令牌直至其自然过期
func (s *SessionService) Logout(ctx context.Context, claims *auth.JWTClaims) error {
	if claims == nil || claims.ID == "" {
		return system.ErrTokenInvalid
	}

	expiresAt := time.Now()
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.tokens.RevokeToken(ctx, &system.RevokedToken{
		TokenID:   claims.ID,
		UserID:    claims.UserID,
		ExpiresAt: expiresAt,
	}); err != nil {
		return fmt.Errorf("%w: revoke token: %w", system.ErrDataAccess, err)
	}

	logger.LogAuditOperation(claims.UserID, claims.Username, "logout", "session", "success",
		utils.GetClientIPFromContext(ctx), "", "", nil)
	return nil
}

// Refresh 刷新令牌对
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*model.LoginResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", system.ErrTokenInvalid, err)
	}

	revoked, err := s.tokens.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: token revocation lookup: %w", system.ErrDataAccess, err)
	}
	if revoked {
		return nil, system.ErrTokenRevoked
	}

	// 用户被删除后同名重建，旧刷新令牌不能登录新用户
	user, err := s.users.SelectWithRoles(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user select by id: %w", system.ErrDataAccess, err)
	}
	if user == nil || user.Username != claims.Subject {
		return nil, system.ErrTokenInvalid
	}
	if !user.IsActive() {
		return nil, system.ErrUserDisabled
	}

	pair, err := s.jwtManager.GenerateTokenPair(user.ID, user.Username, user.RoleNames())
	if err != nil {
		return nil, fmt.Errorf("generate token pair: %w", err)
	}

	if err := s.tokens.RevokeToken(ctx, &system.RevokedToken{
		TokenID:   claims.ID,
		UserID:    user.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}); err != nil {
		return nil, fmt.Errorf("%w: revoke refresh token: %w", system.ErrDataAccess, err)
	}

	return &model.LoginResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		TokenType:    "Bearer",
	}, nil
}

// IsAuthError 是否为认证类错误(映射为401)
func IsAuthError(err error) bool {
	return errors.Is(err, system.ErrInvalidCredentials) ||
		errors.Is(err, system.ErrTokenInvalid) ||
		errors.Is(err, system.ErrTokenRevoked) ||
		errors.Is(err, system.ErrUnauthorized)
}
