// Package cleanup は期限切れデータの自動削除ジョブを提供する。
// 期限切れセッションと、保持期間（デフォルト90日）を超過した問い合わせを
// 定期バッチで削除する。
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/karthik/caremate/internal/metrics"
	"github.com/karthik/caremate/internal/repository"
)

// Job は期限切れセッションと古い問い合わせの自動削除ジョブ。
// 定期実行のバッチジョブとして設計されており、冪等な削除処理を保証する。
type Job struct {
	sessionRepo          repository.SessionRepository
	enquiryRepo          repository.EnquiryRepository
	collector            metrics.MetricsCollector
	logger               *slog.Logger
	EnquiryRetentionDays int // 問い合わせの保持日数（デフォルト: 90）
}

// NewJob は新しいJobを生成する。collectorはnilでもよい。
// デフォルトの問い合わせ保持日数は90日。
func NewJob(
	sessionRepo repository.SessionRepository,
	enquiryRepo repository.EnquiryRepository,
	collector metrics.MetricsCollector,
	logger *slog.Logger,
) *Job {
	return &Job{
		sessionRepo:          sessionRepo,
		enquiryRepo:          enquiryRepo,
		collector:            collector,
		logger:               logger,
		EnquiryRetentionDays: 90,
	}
}

// Run は期限切れセッションと保持期間超過の問い合わせを削除する。
// 冪等: 削除対象がない場合でもエラーにならない。
func (j *Job) Run(ctx context.Context) error {
	start := time.Now()

	sessionsDeleted, err := j.sessionRepo.DeleteExpired(ctx)
	if err != nil {
		j.logger.Error("期限切れセッションの削除に失敗しました",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("期限切れセッションの削除に失敗: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -j.EnquiryRetentionDays)
	enquiriesDeleted, err := j.enquiryRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("古い問い合わせの削除に失敗しました",
			slog.String("error", err.Error()),
			slog.Int("retention_days", j.EnquiryRetentionDays),
		)
		return fmt.Errorf("古い問い合わせの削除に失敗: %w", err)
	}

	if j.collector != nil {
		j.collector.RecordSessionsPurged(sessionsDeleted)
		j.collector.RecordEnquiriesPurged(enquiriesDeleted)
	}

	duration := time.Since(start)
	j.logger.Info("クリーンアップジョブが完了しました",
		slog.Int64("sessions_deleted", sessionsDeleted),
		slog.Int64("enquiries_deleted", enquiriesDeleted),
		slog.Int("retention_days", j.EnquiryRetentionDays),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return nil
}

// RunLoop は指定間隔でRunを繰り返し実行する。
// 起動直後に1回実行し、以降はティッカーで周期実行する。
// コンテキストのキャンセルで停止する。
func (j *Job) RunLoop(ctx context.Context, interval time.Duration) {
	if err := j.Run(ctx); err != nil {
		j.logger.Error("クリーンアップの初回実行に失敗しました", slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Error("クリーンアップの定期実行に失敗しました", slog.String("error", err.Error()))
			}
		case <-ctx.Done():
			j.logger.Info("クリーンアップループを停止します")
			return
		}
	}
}
