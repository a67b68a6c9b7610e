// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/karthik/caremate/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error
}

// ProfileRepository はプロフィールデータの永続化インターフェース。
// プロフィールは登録フォーム完了時に1回だけ作成され、以後削除されない。
type ProfileRepository interface {
	// FindByUserID は指定ユーザーのプロフィールを取得する。見つからない場合はnilを返す。
	FindByUserID(ctx context.Context, userID string) (*model.Profile, error)

	// FindByEmail はメールアドレスでプロフィールを検索する。見つからない場合はnilを返す。
	// サインアップ時の重複アカウント検出に使用する。
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)

	// Create はプロフィールを作成する。
	Create(ctx context.Context, profile *model.Profile) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
	// DeleteExpired は期限切れセッションを削除し、削除件数を返す。
	DeleteExpired(ctx context.Context) (int64, error)
}

// ServiceAreaRepository はサービスエリアデータの永続化インターフェース。
type ServiceAreaRepository interface {
	// ListAll は全サービスエリアをcreated_at降順で取得する。
	ListAll(ctx context.Context) ([]*model.ServiceArea, error)

	// Upsert は(pincode, service_id)をキーにサービスエリアを冪等にUPSERTする。
	// 既存行がある場合はis_availableとupdated_atのみ更新する。
	Upsert(ctx context.Context, area *model.ServiceArea) error

	// Delete は指定(pincode, service_id)のサービスエリアを削除する。
	// 該当行が存在しない場合もエラーにしない。
	Delete(ctx context.Context, pincode, serviceID string) error

	// DeleteAll は全サービスエリアを削除し、削除件数を返す。
	DeleteAll(ctx context.Context) (int64, error)
}

// EnquiryRepository は問い合わせデータの永続化インターフェース。
type EnquiryRepository interface {
	// Create は問い合わせを作成する。
	Create(ctx context.Context, enquiry *model.Enquiry) error

	// DeleteOlderThan は指定日時より古い問い合わせを削除し、削除件数を返す。
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// TxBeginner はトランザクション開始用のインターフェース。
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}
