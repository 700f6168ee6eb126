package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gang678/studentdocument/internal/model/system"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevokedKey(t *testing.T) {
	assert.Equal(t, "studentdoc:revoked:abc", revokedKey("abc"))
}

func TestRevokeExpiredTokenIsNoop(t *testing.T) {
	// 过期令牌不会访问 Redis
	repo := NewSessionRepository(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}))
	defer repo.Close()

	err := repo.RevokeToken(context.Background(), &system.RevokedToken{TokenID: "x", ExpiresAt: time.Now().Add(-time.Minute)})
	assert.NoError(t, err)
}

// 需要真实 Redis：STUDENTDOC_TEST_REDIS_ADDR=127.0.0.1:6379
func TestRevokeTokenAgainstRedis(t *testing.T) {
	addr := os.Getenv("STUDENTDOC_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("STUDENTDOC_TEST_REDIS_ADDR not set")
	}

	repo := NewSessionRepository(redis.NewClient(&redis.Options{Addr: addr}))
	defer repo.Close()
	ctx := context.Background()
	tokenID := uuid.NewString()

	revoked, err := repo.IsTokenRevoked(ctx, tokenID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.RevokeToken(ctx, &system.RevokedToken{TokenID: tokenID, UserID: 1, ExpiresAt: time.Now().Add(time.Minute)}))
	revoked, err = repo.IsTokenRevoked(ctx, tokenID)
	require.NoError(t, err)
	assert.True(t, revoked)
}
