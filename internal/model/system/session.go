/**
 * 模型:会话模型
 * @author: gang678
 * @date: 2026.10.17
 * @description: 已注销令牌记录，登出后令牌在过期前不可再用
 */
package system

import (
	"time"
)

// RevokedToken 已注销的访问令牌
type RevokedToken struct {
	TokenID   string    `json:"token_id"` // JWT jti
	UserID    uint      `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TTL 剩余有效期，已过期返回 0
func (t *RevokedToken) TTL(now time.Time) time.Duration {
	if d := t.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
