// Package contact は問い合わせフォームの受付とWebhook通知を提供する。
package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/karthik/caremate/internal/model"
)

// WebhookNotifier は新規問い合わせを外部のWebhook URLへ通知する。
// 送信先URLは設定から与えられ、起動時にSSRF検証済みであること。
// HTTPクライアントにはSSRF防止機能付きクライアントを渡す。
type WebhookNotifier struct {
	httpClient *http.Client
	logger     *slog.Logger
	webhookURL string
}

// NewWebhookNotifier はWebhookNotifierを生成する。
// webhookURLが空の場合、Notifyは何もしない。
func NewWebhookNotifier(httpClient *http.Client, logger *slog.Logger, webhookURL string) *WebhookNotifier {
	return &WebhookNotifier{
		httpClient: httpClient,
		logger:     logger,
		webhookURL: webhookURL,
	}
}

// webhookPayload はWebhook送信のリクエストボディ。
type webhookPayload struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	ServiceID string `json:"service_id,omitempty"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// Notify は問い合わせ内容をWebhookへPOSTする。
// 通知の失敗は問い合わせの受付自体を失敗させないため、エラーはログに記録して返す。
func (n *WebhookNotifier) Notify(ctx context.Context, enquiry *model.Enquiry) error {
	if n.webhookURL == "" {
		return nil
	}

	payload := webhookPayload{
		Name:      enquiry.Name,
		Phone:     enquiry.Phone,
		ServiceID: enquiry.ServiceID,
		Message:   enquiry.Message,
		CreatedAt: enquiry.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "CareMate/1.0 Enquiry Notifier")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.logger.Error("failed to deliver enquiry webhook",
			slog.String("error", err.Error()),
			slog.String("enquiry_id", enquiry.ID),
		)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.logger.Error("enquiry webhook returned error status",
			slog.Int("http_status", resp.StatusCode),
			slog.String("enquiry_id", enquiry.ID),
		)
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
