// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層とハンドラー層から利用する。
type MetricsCollector interface {
	RecordEntryLogged()
	RecordValidationReject(reason string)
	RecordHTTPStatus(statusCode int)
	RecordReflectionLatency(duration time.Duration)
	RecordReportSent(success bool)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	entriesLogged     prometheus.Counter
	validationRejects *prometheus.CounterVec
	httpStatus        *prometheus.CounterVec
	reflectionLatency prometheus.Histogram
	reportsSent       *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		entriesLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timejoy_entries_logged_total",
			Help: "記録されたタイムエントリーの合計数",
		}),
		validationRejects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timejoy_validation_rejects_total",
			Help: "バリデーション拒否の理由別合計数",
		}, []string{"reason"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timejoy_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		reflectionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "timejoy_reflection_latency_seconds",
			Help:    "振り返り生成のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		reportsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timejoy_reports_sent_total",
			Help: "送信されたレポートの結果別合計数",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.entriesLogged,
		c.validationRejects,
		c.httpStatus,
		c.reflectionLatency,
		c.reportsSent,
	)

	return c
}

// RecordEntryLogged はタイムエントリーの記録を記録する。
func (c *Collector) RecordEntryLogged() {
	c.entriesLogged.Inc()
}

// RecordValidationReject はバリデーション拒否を理由つきで記録する。
func (c *Collector) RecordValidationReject(reason string) {
	c.validationRejects.WithLabelValues(reason).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordReflectionLatency は振り返り生成のレイテンシを記録する。
func (c *Collector) RecordReflectionLatency(duration time.Duration) {
	c.reflectionLatency.Observe(duration.Seconds())
}

// RecordReportSent はレポート送信の結果を記録する。
func (c *Collector) RecordReportSent(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	c.reportsSent.WithLabelValues(result).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
