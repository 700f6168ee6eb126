/**
 * 会话仓库层:令牌吊销存储
 * @author: gang678
 * @date: 2026.10.17
 * @description: Redis 存储，适合多实例部署；session.store=redis 时启用
 * @func:单纯数据访问，不包含业务逻辑
 */
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/gang678/studentdocument/internal/model/system"

	"github.com/go-redis/redis/v8"
)

const revokedKeyPrefix = "studentdoc:revoked:"

// SessionRepository Redis 令牌吊销存储
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository 创建Redis存储实例
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func revokedKey(tokenID string) string {
	return revokedKeyPrefix + tokenID
}

// RevokeToken 吊销令牌，键随令牌过期自动删除
func (r *SessionRepository) RevokeToken(ctx context.Context, token *system.RevokedToken) error {
	ttl := token.TTL(time.Now())
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedKey(token.TokenID), token.UserID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsTokenRevoked 令牌是否已吊销
func (r *SessionRepository) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return n > 0, nil
}

// Close 关闭Redis连接
func (r *SessionRepository) Close() error {
	return r.client.Close()
}
