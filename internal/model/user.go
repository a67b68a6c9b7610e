// Package model はドメインモデルを定義する。
package model

import "time"

// User は認証基盤に登録された利用者アカウントを表す。
// パスワード資格情報と、サインアップ時に選択されたロールを保持する。
// Nameはサインアップ直後はメールアドレスのローカル部を仮の名前として設定し、
// 登録フォーム完了時にProfileへ正式な氏名が保存される。
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session はユーザーのログインセッションを表す。
// IDは外部に公開される不透明なトークンであり、ブラウザタブの寿命の間
// クライアント側にキャッシュされる。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
