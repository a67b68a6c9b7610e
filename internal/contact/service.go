package contact

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/karthik/caremate/internal/catalog"
	"github.com/karthik/caremate/internal/model"
	"github.com/karthik/caremate/internal/repository"
	"github.com/karthik/caremate/internal/security"
)

// phonePattern はインドの10桁携帯番号の形式。
var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// maxMessageLength はメッセージの最大長。
const maxMessageLength = 2000

// Notifier は問い合わせの通知インターフェース。
type Notifier interface {
	Notify(ctx context.Context, enquiry *model.Enquiry) error
}

// SubmitInput は問い合わせフォームの入力を表す。
type SubmitInput struct {
	Name      string
	Phone     string
	ServiceID string
	Message   string
}

// Service は問い合わせ受付のサービス層。
type Service struct {
	enquiryRepo repository.EnquiryRepository
	sanitizer   security.TextSanitizerService
	notifier    Notifier
}

// NewService はServiceを生成する。notifierはnilでもよい。
func NewService(
	enquiryRepo repository.EnquiryRepository,
	sanitizer security.TextSanitizerService,
	notifier Notifier,
) *Service {
	return &Service{
		enquiryRepo: enquiryRepo,
		sanitizer:   sanitizer,
		notifier:    notifier,
	}
}

// Submit は問い合わせを受け付ける。
// 氏名とメッセージはサニタイズされ、サービスIDはカタログに対して検証される。
// Webhook通知の失敗は受付自体を失敗させない。
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*model.Enquiry, error) {
	name := s.sanitizer.Sanitize(input.Name)
	if name == "" {
		return nil, model.NewInvalidEnquiryError("name is required")
	}
	if !phonePattern.MatchString(input.Phone) {
		return nil, model.NewInvalidEnquiryError("valid 10-digit phone number is required")
	}
	if input.ServiceID != "" && !catalog.IsKnown(input.ServiceID) {
		return nil, model.NewUnknownServiceError(input.ServiceID)
	}

	message := s.sanitizer.Sanitize(input.Message)
	if message == "" {
		return nil, model.NewInvalidEnquiryError("message is required")
	}
	if len(message) > maxMessageLength {
		return nil, model.NewInvalidEnquiryError("message is too long")
	}

	enquiry := &model.Enquiry{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     input.Phone,
		ServiceID: input.ServiceID,
		Message:   message,
		CreatedAt: time.Now(),
	}

	if err := s.enquiryRepo.Create(ctx, enquiry); err != nil {
		return nil, fmt.Errorf("failed to save enquiry: %w", err)
	}

	slog.Info("enquiry received",
		slog.String("enquiry_id", enquiry.ID),
		slog.String("service_id", enquiry.ServiceID),
	)

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, enquiry); err != nil {
			// 通知失敗でも受付は成功扱い
			slog.Warn("enquiry webhook notification failed",
				slog.String("enquiry_id", enquiry.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return enquiry, nil
}
