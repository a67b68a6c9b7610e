// Package profile はプロフィール登録のドメインロジックを提供する。
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/karthik/caremate/internal/model"
	"github.com/karthik/caremate/internal/repository"
	"github.com/karthik/caremate/internal/security"
)

// phonePattern はインドの10桁携帯番号の形式。
var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// RegisterInput は登録フォームの入力を表す。
type RegisterInput struct {
	Name    string
	Phone   string
	Address string
}

// Service はプロフィール登録のサービス層。
// プロフィールはユーザーごとに1回だけ作成され、以後削除されない。
type Service struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	sanitizer   security.TextSanitizerService
}

// NewService はServiceを生成する。
func NewService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	sanitizer security.TextSanitizerService,
) *Service {
	return &Service{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		sanitizer:   sanitizer,
	}
}

// Register は登録フォームの入力からプロフィールを作成する。
// ロールとメールアドレスはサインアップ時にusersへ保存された値を引き継ぐ。
// 氏名と住所は保存前にサニタイズされる。
func (s *Service) Register(ctx context.Context, userID string, input RegisterInput) (*model.Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	existing, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}
	if existing != nil {
		return nil, model.NewProfileExistsError()
	}

	name := s.sanitizer.Sanitize(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	// 電話番号は任意。入力がある場合のみ形式を検証する。
	if input.Phone != "" && !phonePattern.MatchString(input.Phone) {
		return nil, fmt.Errorf("phone number must be 10 digits")
	}

	now := time.Now()
	profile := &model.Profile{
		ID:        user.ID,
		Role:      user.Role,
		Name:      name,
		Email:     user.Email,
		Phone:     input.Phone,
		Address:   s.sanitizer.Sanitize(input.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	slog.Info("profile registered",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return profile, nil
}

// GetByUserID は指定ユーザーのプロフィールを取得する。
// 存在しない場合はnilを返す。
func (s *Service) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return profile, nil
}
