/**
 * 会话仓库层:令牌吊销存储
 * @author: gang678
 * @date: 2026.10.17
 * @description: 内存存储，适合单实例部署；session.store=memory 时启用
 * @func:单纯数据访问，不包含业务逻辑
 */
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gang678/studentdocument/internal/model/system"
)

// SessionRepository 内存令牌吊销存储
type SessionRepository struct {
	revoked map[string]time.Time // jti -> 过期时间
	mutex   sync.RWMutex
	stop    chan struct{}
	once    sync.Once
}

// NewSessionRepository 创建内存存储并启动过期清理
func NewSessionRepository(cleanupInterval time.Duration) *SessionRepository {
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	repo := &SessionRepository{
		revoked: make(map[string]time.Time),
		stop:    make(chan struct{}),
	}
	go repo.cleanupExpired(cleanupInterval)
	return repo
}

func (r *SessionRepository) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case now := <-ticker.C:
			r.mutex.Lock()
			for tokenID, expiresAt := range r.revoked {
				if now.After(expiresAt) {
					delete(r.revoked, tokenID)
				}
			}
			r.mutex.Unlock()
		}
	}
}

// RevokeToken 吊销令牌直到其过期
func (r *SessionRepository) RevokeToken(_ context.Context, token *system.RevokedToken) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.revoked[token.TokenID] = token.ExpiresAt
	return nil
}

// IsTokenRevoked 令牌是否已吊销
func (r *SessionRepository) IsTokenRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	expiresAt, ok := r.revoked[tokenID]
	return ok && time.Now().Before(expiresAt), nil
}

// Close 停止清理协程
func (r *SessionRepository) Close() error {
	r.once.Do(func() { close(r.stop) })
	return nil
}
