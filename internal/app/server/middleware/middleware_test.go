package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gang678/studentdocument/internal/config"
	"github.com/gang678/studentdocument/internal/model/system"
	"github.com/gang678/studentdocument/internal/pkg/auth"
	"github.com/gang678/studentdocument/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeValidator struct {
	claims *auth.JWTClaims
	err    error
}

func (f fakeValidator) ValidateToken(context.Context, string) (*auth.JWTClaims, error) {
	return f.claims, f.err
}

type fakeChecker struct {
	granted map[string]bool
	err     error
	calls   int
}

func (f *fakeChecker) HasPermission(_ context.Context, _ uint, permission string) (bool, error) {
	f.calls++
	return f.granted[permission], f.err
}

type countingRecorder struct {
	denied      []string
	rateLimited int
	requests    int
}

func (r *countingRecorder) RecordRequest(string, string, int, time.Duration) { r.requests++ }
func (r *countingRecorder) RecordPermissionDenied(p string)                  { r.denied = append(r.denied, p) }
func (r *countingRecorder) RecordRateLimited()                               { r.rateLimited++ }

func guardedEngine(m *MiddlewareManager, handlerRan *bool) *gin.Engine {
	r := gin.New()
	api := r.Group("/api", m.GinJWTAuthMiddleware())
	api.POST("/role", m.GinRequirePermission("role:add"), func(c *gin.Context) {
		*handlerRan = true
		c.JSON(http.StatusOK, true)
	})
	return r
}

func request(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGinJWTAuthMiddleware(t *testing.T) {
	claims := &auth.JWTClaims{UserID: 3, Username: "doctor01", RegisteredClaims: jwt.RegisteredClaims{ID: "jti"}}

	ran := false
	checker := &fakeChecker{granted: map[string]bool{"role:add": true}}
	m := NewMiddlewareManager(fakeValidator{claims: claims}, checker, nil, nil)
	r := guardedEngine(m, &ran)

	w := request(r, http.MethodPost, "/api/role", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, ran)
	assert.Zero(t, checker.calls)

	w = request(r, http.MethodPost, "/api/role", "token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, ran)

	ran = false
	m = NewMiddlewareManager(fakeValidator{err: system.ErrTokenRevoked}, checker, nil, nil)
	w = request(guardedEngine(m, &ran), http.MethodPost, "/api/role", "token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, ran)
}

func TestGinRequirePermissionDenied(t *testing.T) {
	claims := &auth.JWTClaims{UserID: 3, Username: "doctor01"}
	rec := &countingRecorder{}
	ran := false
	m := NewMiddlewareManager(fakeValidator{claims: claims}, &fakeChecker{granted: map[string]bool{}}, nil, rec)

	w := request(guardedEngine(m, &ran), http.MethodPost, "/api/role", "token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, ran)
	assert.Equal(t, []string{"role:add"}, rec.denied)
}

func TestGinRequirePermissionWithoutAuthentication(t *testing.T) {
	checker := &fakeChecker{}
	m := NewMiddlewareManager(nil, checker, nil, nil)

	ran := false
	r := gin.New()
	r.DELETE("/api/role/:id", m.GinRequirePermission("role:delete"), func(c *gin.Context) { ran = true })

	w := request(r, http.MethodDelete, "/api/role/1", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, ran)
	assert.Zero(t, checker.calls)
}

func TestGinRequirePermissionErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"deleted user", system.ErrUnauthorized, http.StatusUnauthorized},
		{"storage failure", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ran := false
			claims := &auth.JWTClaims{UserID: 3}
			m := NewMiddlewareManager(fakeValidator{claims: claims}, &fakeChecker{err: tt.err}, nil, nil)
			w := request(guardedEngine(m, &ran), http.MethodPost, "/api/role", "token")
			assert.Equal(t, tt.want, w.Code)
			assert.False(t, ran)
		})
	}
}

func TestGinRequestIDMiddleware(t *testing.T) {
	m := NewMiddlewareManager(nil, nil, nil, nil)
	r := gin.New()
	r.Use(m.GinRequestIDMiddleware())
	r.GET("/id", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(utils.GinKeyRequestID)) })

	w := request(r, http.MethodGet, "/id", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "upstream-id", w.Body.String())
}

func TestGinRateLimitMiddleware(t *testing.T) {
	rec := &countingRecorder{}
	m := NewMiddlewareManager(nil, nil, &config.SecurityConfig{
		RateLimit: config.RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 0.001,
			BurstSize:         2,
			SkipPaths:         []string{"/api/health"},
		},
	}, rec)
	t.Cleanup(m.Close)

	r := gin.New()
	r.Use(m.GinRateLimitMiddleware())
	r.GET("/api/role/list", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/role/list", "").Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/role/list", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, request(r, http.MethodGet, "/api/role/list", "").Code)
	assert.Equal(t, 1, rec.rateLimited)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/health", "").Code)
	}
}

func TestIPRateLimiterCleanup(t *testing.T) {
	l := NewIPRateLimiter(1, 1, time.Minute)
	t.Cleanup(l.Stop)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))
	assert.Equal(t, 2, l.Len())

	l.cleanup(time.Now().Add(2 * time.Minute))
	assert.Zero(t, l.Len())
}

func TestGinMetricsMiddleware(t *testing.T) {
	rec := &countingRecorder{}
	m := NewMiddlewareManager(nil, nil, nil, rec)
	r := gin.New()
	r.Use(m.GinMetricsMiddleware())
	r.GET("/api/live", func(c *gin.Context) { c.Status(http.StatusOK) })

	request(r, http.MethodGet, "/api/live", "")
	request(r, http.MethodGet, "/missing", "")
	assert.Equal(t, 2, rec.requests)
}
