// Package auth はパスワード認証、セッション管理、認証イベント配信を提供する。
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/karthik/caremate/internal/model"
	"github.com/karthik/caremate/internal/repository"
)

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	SessionMaxAge int // セッション有効期間（秒）
	BcryptCost    int // bcryptのコストパラメータ
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	sessionRepo repository.SessionRepository
	bus         *Bus
	config      ServiceConfig
}

// NewService はServiceを生成する。
func NewService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	sessionRepo repository.SessionRepository,
	bus *Bus,
	config ServiceConfig,
) *Service {
	return &Service{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		bus:         bus,
		config:      config,
	}
}

// Bus は認証イベントバスを返す。
func (s *Service) Bus() *Bus {
	return s.bus
}

// SignUp は新規アカウントを作成し、セッションを発行する。
// 資格情報を作成する前にprofilesテーブルとusersテーブルの両方を
// メールアドレスで照会し、既存アカウントがあればDUPLICATE_ACCOUNTを返す。
// 氏名はメールアドレスのローカル部を仮の値として設定し、
// 登録フォーム完了時にプロフィールへ正式な氏名が保存される。
func (s *Service) SignUp(ctx context.Context, email, password string, role model.Role) (*model.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("valid email is required")
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}
	if !role.Valid() {
		return nil, model.NewInvalidRoleError(string(role))
	}

	// 資格情報を作成する前に重複アカウントを検出する
	existingProfile, err := s.profileRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}
	if existingProfile != nil {
		return nil, model.NewDuplicateAccountError()
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, model.NewDuplicateAccountError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         emailLocalPart(email),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	seq := s.bus.Publish(EventSignedIn, user.ID, session.ID)
	slog.Info("new account created",
		slog.String("user_id", user.ID),
		slog.String("role", string(role)),
		slog.Uint64("event_seq", seq),
	)

	return session, nil
}

// SignIn はメールアドレスとパスワードで認証し、セッションを発行する。
// ユーザーが存在しない場合とパスワード不一致の場合は
// 区別せずINVALID_CREDENTIALSを返す。
func (s *Service) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	seq := s.bus.Publish(EventSignedIn, user.ID, session.ID)
	slog.Info("user signed in",
		slog.String("user_id", user.ID),
		slog.Uint64("event_seq", seq),
	)

	return session, nil
}

// SignOut はセッションを破棄する。
// セッションの削除に失敗してもSIGNED_OUTイベントは必ず配信される。
// 購読側は削除の成否に関わらずローカル状態を未認証にリセットする。
func (s *Service) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		slog.Warn("failed to look up session during sign-out", slog.String("error", err.Error()))
	}

	var userID string
	if session != nil {
		userID = session.UserID
	}

	deleteErr := s.sessionRepo.DeleteByID(ctx, sessionID)

	seq := s.bus.Publish(EventSignedOut, userID, sessionID)
	slog.Info("user signed out",
		slog.String("session_id", sessionID),
		slog.Uint64("event_seq", seq),
	)

	if deleteErr != nil {
		return fmt.Errorf("failed to delete session: %w", deleteErr)
	}
	return nil
}

// GetSession はセッションIDから有効なセッションを取得する。
// 存在しないか期限切れの場合はnilを返す。
func (s *Service) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	if sessionID == "" {
		return nil, nil
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return session, nil
}

// GetCurrentUser はセッションから現在のユーザーを取得する。
func (s *Service) GetCurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("session not found or expired")
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	return user, nil
}

// CurrentProfile は指定ユーザーのプロフィールを取得する。
// プロフィールが存在しない場合は不整合な状態とみなし、そのユーザーの
// 全セッションを破棄した上でPROFILE_NOT_FOUNDを返す（強制サインアウト）。
func (s *Service) CurrentProfile(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	if profile == nil {
		if err := s.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
			slog.Warn("failed to delete sessions during forced sign-out",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
		seq := s.bus.Publish(EventSignedOut, userID, "")
		slog.Warn("profile missing for authenticated user, forcing sign-out",
			slog.String("user_id", userID),
			slog.Uint64("event_seq", seq),
		)
		return nil, model.NewProfileNotFoundError()
	}

	return profile, nil
}

// createSession はセッションを作成し永続化する。
func (s *Service) createSession(ctx context.Context, userID string) (*model.Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	session := &model.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// generateSessionID は暗号的に安全なセッションIDを生成する。
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// emailLocalPart はメールアドレスの@より前の部分を返す。
func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
