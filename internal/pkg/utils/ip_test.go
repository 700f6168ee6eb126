package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeIP(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain_ipv4", "192.168.1.10", "192.168.1.10"},
		{"ipv4_with_port", "192.168.1.10:8080", "192.168.1.10"},
		{"forwarded_list", "10.0.0.1, 10.0.0.2", "10.0.0.1"},
		{"mapped_ipv6", "::ffff:192.0.2.1", "192.0.2.1"},
		{"ipv6_with_port", "[2001:db8::1]:443", "2001:db8::1"},
		{"not_an_ip", "localhost", "localhost"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeIP(tt.input))
		})
	}
}

func TestGetRequestMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/role", nil)
	c.Request.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	c.Request.Header.Set("User-Agent", "unit")
	c.Set(GinKeyUserID, uint(5))
	c.Set(GinKeyRequestID, "req-1")

	meta := GetRequestMeta(c)
	assert.Equal(t, uint(5), meta.UserID)
	assert.Equal(t, "req-1", meta.RequestID)
	assert.Equal(t, "203.0.113.9", meta.ClientIP)
	assert.Equal(t, "unit", meta.UserAgent)
	assert.Equal(t, "/api/role", meta.Path)
	assert.Equal(t, http.MethodPost, meta.Method)
}

func TestGetCurrentUserIDWrongType(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(GinKeyUserID, "5")
	assert.Zero(t, GetCurrentUserID(c))
}

func TestClientIPContext(t *testing.T) {
	ctx := WithClientIP(context.Background(), "1.2.3.4")
	assert.Equal(t, "1.2.3.4", GetClientIPFromContext(ctx))
	assert.Empty(t, GetClientIPFromContext(context.Background()))
}
