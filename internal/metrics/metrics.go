// Package metrics 提供 linkpepper 服务的 Prometheus 监控指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "linkpepper"

// HTTP 请求指标
var (
	// HTTPRequestsTotal HTTP 请求总数
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP 请求总数",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP 请求耗时
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP 请求耗时(秒)",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)
)

// 钱包认证指标
var (
	// WalletChallengesTotal 钱包挑战签发总数
	WalletChallengesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_challenges_total",
			Help:      "钱包登录挑战签发总数",
		},
	)

	// WalletLoginsTotal 钱包登录验签总数
	WalletLoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_logins_total",
			Help:      "钱包登录验签总数",
		},
		[]string{"result"}, // success, failed
	)

	// StaffLoginsTotal 后台登录总数
	StaffLoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "staff_logins_total",
			Help:      "后台登录总数",
		},
		[]string{"result"}, // success, failed, locked, disabled
	)
)

// 任务提交与打款指标
var (
	// SubmissionsTotal 任务提交总数
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "任务提交总数",
		},
		[]string{"task_type", "result"}, // task_type: LINK/VISIT, result: accepted, rejected
	)

	// ReviewsTotal 人工审核操作总数
	ReviewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_total",
			Help:      "人工审核操作总数",
		},
		[]string{"action"}, // approve, reject
	)

	// PayoutsTotal 打款登记总数
	PayoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payouts_total",
			Help:      "打款登记总数",
		},
	)

	// PayoutAmountTotal 累计打款金额 (USDT)
	PayoutAmountTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payout_amount_usdt_total",
			Help:      "累计打款金额 (USDT)",
		},
	)

	// ApplicationsTotal 客户申请总数
	ApplicationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "applications_total",
			Help:      "客户活动申请总数",
		},
	)
)

// RecordHTTPRequest 记录 HTTP 请求指标
func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}
