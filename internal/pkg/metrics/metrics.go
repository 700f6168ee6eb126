// Prometheus 指标收集
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder 指标记录接口，中间件与鉴权守卫使用
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordPermissionDenied(permission string)
	RecordRateLimited()
}

// Collector Prometheus 实现
type Collector struct {
	requests        *prometheus.CounterVec
	latency         *prometheus.HistogramVec
	permissionDeny  *prometheus.CounterVec
	rateLimitedHits prometheus.Counter
}

// NewCollector 创建Collector并注册到指定registry
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studentdoc_http_requests_total",
			Help: "HTTP请求数，按方法、路由、状态码统计",
		}, []string{"method", "route", "status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "studentdoc_http_request_duration_seconds",
			Help:    "HTTP请求耗时(秒)",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		permissionDeny: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studentdoc_permission_denied_total",
			Help: "权限校验拒绝次数，按权限标识统计",
		}, []string{"permission"}),
		rateLimitedHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "studentdoc_rate_limited_total",
			Help: "被限流拒绝的请求数",
		}),
	}

	reg.MustRegister(c.requests, c.latency, c.permissionDeny, c.rateLimitedHits)
	return c
}

// RecordRequest 记录一次HTTP请求
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordPermissionDenied 记录一次权限拒绝
func (c *Collector) RecordPermissionDenied(permission string) {
	c.permissionDeny.WithLabelValues(permission).Inc()
}

// RecordRateLimited 记录一次限流拒绝
func (c *Collector) RecordRateLimited() {
	c.rateLimitedHits.Inc()
}

// Handler 返回指标暴露接口
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop 不记录任何指标，指标关闭或测试时使用
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordPermissionDenied(string)                   {}
func (Nop) RecordRateLimited()                              {}
