/**
 * 中间件:限流器中间件
 * @author: gang678
 * @date: 2026.10.17
 * @description: 按客户端IP的令牌桶限流
 * @func:
 *   - IPRateLimiter 每个IP一个 rate.Limiter，定期清理长时间未访问的条目
 *   - GinRateLimitMiddleware 按配置限流，支持跳过路径与IP
 */
package middleware

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gang678/studentdocument/internal/pkg/logger"
	"github.com/gang678/studentdocument/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type ipLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// IPRateLimiter 按IP的令牌桶限流器
type IPRateLimiter struct {
	limit   rate.Limit
	burst   int
	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]*ipLimiter
	stopCh  chan struct{}
	once    sync.Once
}

// NewIPRateLimiter 创建限流器并启动清理协程
// ttl 为条目最长闲置时间
func NewIPRateLimiter(rps float64, burst int, ttl time.Duration) *IPRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	l := &IPRateLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		ttl:     ttl,
		entries: make(map[string]*ipLimiter),
		stopCh:  make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow 检查该IP是否还有令牌
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	entry, ok := l.entries[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[ip] = entry
	}
	entry.lastAccess = time.Now()
	l.mu.Unlock()

	return entry.limiter.Allow()
}

// Len 当前跟踪的IP数量
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Stop 停止清理协程
func (l *IPRateLimiter) Stop() {
	l.once.Do(func() { close(l.stopCh) })
}

func (l *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup(time.Now())
		case <-l.stopCh:
			return
		}
	}
}

func (l *IPRateLimiter) cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, entry := range l.entries {
		if now.Sub(entry.lastAccess) > l.ttl {
			delete(l.entries, ip)
		}
	}
}

// GinRateLimitMiddleware 默认限流中间件，使用配置文件中的限流参数
func (m *MiddlewareManager) GinRateLimitMiddleware() gin.HandlerFunc {
	cfg := m.securityConfig.RateLimit
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	m.rateLimiterOnce.Do(func() {
		m.rateLimiter = NewIPRateLimiter(cfg.RequestsPerSecond, cfg.BurstSize, 10*time.Minute)
	})
	limiter := m.rateLimiter

	return func(c *gin.Context) {
		clientIP := utils.GetClientIP(c)
		if slices.Contains(cfg.SkipPaths, c.Request.URL.Path) || slices.Contains(cfg.SkipIPs, clientIP) {
			c.Next()
			return
		}

		if !limiter.Allow(clientIP) {
			m.recorder.RecordRateLimited()
			logger.LogSystemEvent("http", "rate_limit_exceeded", "Rate limit exceeded for client", logrus.WarnLevel, map[string]interface{}{
				"client_ip": clientIP,
				"path":      c.Request.URL.Path,
				"method":    c.Request.Method,
			})
			c.Header("Retry-After", "1")
			abortWith(c, http.StatusTooManyRequests, "too many requests, please try again later", nil)
			return
		}

		c.Next()
	}
}
