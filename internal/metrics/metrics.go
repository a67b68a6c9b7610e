// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーやワーカーから利用する。
type MetricsCollector interface {
	RecordSignIn(success bool)
	RecordSignUp(role string)
	RecordAreaWrite(operation string)
	RecordEnquiryReceived()
	RecordHTTPStatus(statusCode int)
	RecordSessionsPurged(count int64)
	RecordEnquiriesPurged(count int64)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	signInSuccess   prometheus.Counter
	signInFail      prometheus.Counter
	signUps         *prometheus.CounterVec
	areaWrites      *prometheus.CounterVec
	enquiries       prometheus.Counter
	httpStatus      *prometheus.CounterVec
	sessionsPurged  prometheus.Counter
	enquiriesPurged prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signInSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "caremate_signin_success_total",
			Help: "サインイン成功の合計数",
		}),
		signInFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "caremate_signin_fail_total",
			Help: "サインイン失敗の合計数",
		}),
		signUps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "caremate_signups_total",
			Help: "ロール別の新規アカウント作成数",
		}, []string{"role"}),
		areaWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "caremate_area_writes_total",
			Help: "操作種別ごとのサービスエリア書き込み数",
		}, []string{"operation"}),
		enquiries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "caremate_enquiries_received_total",
			Help: "受け付けた問い合わせの合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "caremate_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		sessionsPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "caremate_sessions_purged_total",
			Help: "クリーンアップで削除された期限切れセッション数",
		}),
		enquiriesPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "caremate_enquiries_purged_total",
			Help: "保持期間を超えて削除された問い合わせ数",
		}),
	}

	reg.MustRegister(
		c.signInSuccess,
		c.signInFail,
		c.signUps,
		c.areaWrites,
		c.enquiries,
		c.httpStatus,
		c.sessionsPurged,
		c.enquiriesPurged,
	)

	return c
}

// RecordSignIn はサインインの成否を記録する。
func (c *Collector) RecordSignIn(success bool) {
	if success {
		c.signInSuccess.Inc()
	} else {
		c.signInFail.Inc()
	}
}

// RecordSignUp は新規アカウント作成をロール別に記録する。
func (c *Collector) RecordSignUp(role string) {
	c.signUps.WithLabelValues(role).Inc()
}

// RecordAreaWrite はサービスエリアの書き込み操作を記録する。
// operationはupsert、delete、clearのいずれか。
func (c *Collector) RecordAreaWrite(operation string) {
	c.areaWrites.WithLabelValues(operation).Inc()
}

// RecordEnquiryReceived は問い合わせの受付を記録する。
func (c *Collector) RecordEnquiryReceived() {
	c.enquiries.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordSessionsPurged はクリーンアップで削除されたセッション数を記録する。
func (c *Collector) RecordSessionsPurged(count int64) {
	c.sessionsPurged.Add(float64(count))
}

// RecordEnquiriesPurged は削除された問い合わせ数を記録する。
func (c *Collector) RecordEnquiriesPurged(count int64) {
	c.enquiriesPurged.Add(float64(count))
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
