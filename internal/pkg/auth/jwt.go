/**
 * 工具类:JWT工具
 * @author: gang678
 * @date: 2026.10.17
 * @description: 访问令牌/刷新令牌的签发与校验
 * @func:
 * 	1.签发令牌对
 * 	2.校验访问令牌
 * 	3.校验刷新令牌
 */

package auth

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessAudience  = "studentdoc-web"
	refreshAudience = "studentdoc-refresh"
)

var (
	// ErrInvalidToken 令牌签名、格式或受众不合法
	ErrInvalidToken = errors.New("invalid token")
)

// JWTClaims 访问令牌声明
type JWTClaims struct {
	UserID   uint     `json:"user_id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// RefreshClaims 刷新令牌声明，按用户ID而非用户名定位用户
type RefreshClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTManager JWT管理器
type JWTManager struct {
	secretKey       []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// TokenPair 令牌对
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// NewJWTManager 创建JWT管理器
func NewJWTManager(secretKey, issuer string, accessTokenTTL, refreshTokenTTL time.Duration) *JWTManager {
	if issuer == "" {
		issuer = "studentdoc"
	}
	return &JWTManager{
		secretKey:       []byte(secretKey),
		issuer:          issuer,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

func (j *JWTManager) registered(subject, audience string, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Issuer:    j.issuer,
		Subject:   subject,
		Audience:  []string{audience},
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}
}

// GenerateAccessToken 生成访问令牌
func (j *JWTManager) GenerateAccessToken(userID uint, username string, roles []string) (string, error) {
	claims := &JWTClaims{
		UserID:           userID,
		Username:         username,
		Roles:            roles,
		RegisteredClaims: j.registered(username, accessAudience, j.accessTokenTTL),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
}

// GenerateRefreshToken 生成刷新令牌
func (j *JWTManager) GenerateRefreshToken(userID uint, username string) (string, error) {
	claims := &RefreshClaims{
		UserID:           userID,
		RegisteredClaims: j.registered(username, refreshAudience, j.refreshTokenTTL),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
}

// GenerateTokenPair 生成令牌对
func (j *JWTManager) GenerateTokenPair(userID uint, username string, roles []string) (*TokenPair, error) {
	accessToken, err := j.GenerateAccessToken(userID, username, roles)
	if err != nil {
		return nil, err
	}
	refreshToken, err := j.GenerateRefreshToken(userID, username)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(j.accessTokenTTL.Seconds()),
	}, nil
}

func (j *JWTManager) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return j.secretKey, nil
}

// ValidateAccessToken 验证访问令牌，exp 必须存在，过期由 jwt 库校验
func (j *JWTManager) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, j.keyFunc,
		jwt.WithIssuer(j.issuer), jwt.WithAudience(accessAudience), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateRefreshToken 验证刷新令牌，exp 与 user_id 必须存在
func (j *JWTManager) ValidateRefreshToken(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, j.keyFunc,
		jwt.WithIssuer(j.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 || !slices.Contains(claims.Audience, refreshAudience) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractTokenFromHeader 从Authorization头中提取令牌
func ExtractTokenFromHeader(authHeader string) string {
	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}
