// Package metrics 提供基于Prometheus的指标收集
//
// 指标分三类:
// - HTTP层:请求数、耗时、并发数(由gin中间件打点)
// - 业务层:下单、支付完成、支付意向失败
// - 熔断器:支付网关熔断器的状态与请求结果
//
// 命名规范:
// - Counter以_total结尾; Histogram以单位结尾(_seconds)
// - 标签只用低基数维度(method/path/status),不用email等高基数值
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化(防止重复注册)
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数(Counter)
	// 标签:method(GET/POST)、path(/orders)、status(200/500)
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时(Histogram)
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数(Gauge)
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// OrdersPlacedTotal 下单总数(Counter)
	OrdersPlacedTotal prometheus.Counter

	// OrdersRejectedTotal 下单被拒总数(并发冲突、图书不可用)
	OrdersRejectedTotal prometheus.Counter

	// PaymentsCompletedTotal 支付完成总数(Counter)
	PaymentsCompletedTotal prometheus.Counter

	// PaymentIntentFailuresTotal 支付意向创建失败总数(Counter)
	PaymentIntentFailuresTotal prometheus.Counter

	// 熔断器指标

	// CircuitBreakerState 熔断器状态(Gauge)
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数(Counter)
	// 标签:name(熔断器名称)、result(success/failure/rejected)
	CircuitBreakerRequests *prometheus.CounterVec
)

// Init 初始化所有Prometheus指标
// 必须在程序启动时调用一次,使用promauto自动注册到默认Registry
func Init() {
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "Number of HTTP requests currently being served",
		},
	)

	OrdersPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of orders placed",
		},
	)

	OrdersRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "Total number of order attempts rejected (book not available)",
		},
	)

	PaymentsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_completed_total",
			Help: "Total number of completed payments",
		},
	)

	PaymentIntentFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_intent_failures_total",
			Help: "Total number of failed payment intent creations",
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests seen by the circuit breaker",
		},
		[]string{"name", "result"},
	)
}
