package model

import (
	"fmt"
	"time"
)

// Role は利用者の種別を表す閉じた列挙型。
// patientとnurseの2値のみが有効であり、ロールで挙動が分岐する箇所では
// 必ずswitchで両方のケースを網羅すること。
type Role string

const (
	// RolePatient は在宅ケアを受ける患者を示す。
	RolePatient Role = "patient"
	// RoleNurse はサービス提供エリアを管理する看護師を示す。
	RoleNurse Role = "nurse"
)

// ParseRole は文字列をRoleに変換する。patient/nurse以外はエラーを返す。
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePatient:
		return RolePatient, nil
	case RoleNurse:
		return RoleNurse, nil
	default:
		return "", fmt.Errorf("invalid role: %q", s)
	}
}

// Valid はRoleが定義済みの値かどうかを返す。
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleNurse:
		return true
	default:
		return false
	}
}

// Profile はユーザーIDと1:1で紐付くアプリケーション所有のレコードを表す。
// サインアップとは別の登録ステップで1回だけ作成され、
// セッション変化のたびに読み取られる。本コードからは削除されない。
// PhoneとAddressは任意項目。
type Profile struct {
	ID        string // users.idと同一
	Role      Role
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
