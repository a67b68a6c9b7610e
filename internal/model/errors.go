// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, area, contact, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeDuplicateAccount    = "DUPLICATE_ACCOUNT"
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeProfileNotFound     = "PROFILE_NOT_FOUND"
	ErrCodeProfileExists       = "PROFILE_EXISTS"
	ErrCodeInvalidRole         = "INVALID_ROLE"
	ErrCodeInvalidPincode      = "INVALID_PINCODE"
	ErrCodeUnknownService      = "UNKNOWN_SERVICE"
	ErrCodeAreaLoadFailed      = "AREA_LOAD_FAILED"
	ErrCodeAreaUpdateFailed    = "AREA_UPDATE_FAILED"
	ErrCodeAreaDeleteFailed    = "AREA_DELETE_FAILED"
	ErrCodeAreaClearFailed     = "AREA_CLEAR_FAILED"
	ErrCodeInvalidEnquiry      = "INVALID_ENQUIRY"
	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodeForbidden           = "FORBIDDEN"
)

// NewDuplicateAccountError は同一メールアドレスのアカウントが既に存在する場合のエラーを生成する。
// 認証基盤へ資格情報を作成する前に検出される。
func NewDuplicateAccountError() *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateAccount,
		Message:  "An account with this email already exists",
		Category: "auth",
		Action:   "Sign in with the existing account, or use a different email.",
	}
}

// NewInvalidCredentialsError はメールアドレスまたはパスワードが一致しない場合のエラーを生成する。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "Invalid email or password",
		Category: "auth",
		Action:   "Check your email and password and try again.",
	}
}

// NewProfileNotFoundError は有効なセッションに対応するプロフィール行が存在しない場合の
// エラーを生成する。このエラーはそのセッションにとって致命的であり、強制サインアウトを伴う。
func NewProfileNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeProfileNotFound,
		Message:  "Profile not found. Please sign in again.",
		Category: "auth",
		Action:   "Sign in again and complete the registration form.",
	}
}

// NewProfileExistsError は登録ステップが二重に実行された場合のエラーを生成する。
func NewProfileExistsError() *APIError {
	return &APIError{
		Code:     ErrCodeProfileExists,
		Message:  "Profile has already been registered",
		Category: "validation",
		Action:   "Sign in to view your dashboard.",
	}
}

// NewInvalidRoleError はロールがpatient/nurse以外の場合のエラーを生成する。
func NewInvalidRoleError(role string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRole,
		Message:  fmt.Sprintf("Invalid role: %s", role),
		Category: "validation",
		Action:   "Choose either patient or nurse.",
	}
}

// NewInvalidPincodeError は郵便番号が6桁の数字でない場合のエラーを生成する。
func NewInvalidPincodeError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidPincode,
		Message:  "Please enter a valid 6-digit pincode",
		Category: "validation",
		Action:   "Enter the 6-digit postal code of the service area.",
	}
}

// NewUnknownServiceError はサービスカタログに存在しないサービスIDが指定された場合の
// エラーを生成する。
func NewUnknownServiceError(serviceID string) *APIError {
	return &APIError{
		Code:     ErrCodeUnknownService,
		Message:  fmt.Sprintf("Unknown service: %s", serviceID),
		Category: "validation",
		Action:   "Please select a service from the catalog.",
	}
}

// エリア管理の4つの定型エラー。リモート呼び出しの失敗は原因を区別せず
// この4種類の静的メッセージに縮約される（詳細はログにのみ記録する）。

// NewAreaLoadError はサービスエリア一覧の取得失敗エラーを生成する。
func NewAreaLoadError() *APIError {
	return &APIError{
		Code:     ErrCodeAreaLoadFailed,
		Message:  "Error loading service areas",
		Category: "area",
		Action:   "Please try again later.",
	}
}

// NewAreaUpdateError はサービスエリアの更新失敗エラーを生成する。
func NewAreaUpdateError() *APIError {
	return &APIError{
		Code:     ErrCodeAreaUpdateFailed,
		Message:  "Error updating service area",
		Category: "area",
		Action:   "Please try again later.",
	}
}

// NewAreaDeleteError はサービスエリアの削除失敗エラーを生成する。
func NewAreaDeleteError() *APIError {
	return &APIError{
		Code:     ErrCodeAreaDeleteFailed,
		Message:  "Error deleting service area",
		Category: "area",
		Action:   "Please try again later.",
	}
}

// NewAreaClearError はサービスエリアの全件削除失敗エラーを生成する。
func NewAreaClearError() *APIError {
	return &APIError{
		Code:     ErrCodeAreaClearFailed,
		Message:  "Error clearing service areas",
		Category: "area",
		Action:   "Please try again later.",
	}
}

// NewInvalidEnquiryError は問い合わせフォームの入力不備エラーを生成する。
func NewInvalidEnquiryError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidEnquiry,
		Message:  fmt.Sprintf("Invalid enquiry: %s", reason),
		Category: "contact",
		Action:   "Fill in your name, phone number and message.",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "User not found",
		Category: "auth",
		Action:   "Sign in again.",
	}
}

// NewForbiddenError はロールが要求される操作を他ロールが実行した場合のエラーを生成する。
func NewForbiddenError(required Role) *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  fmt.Sprintf("This operation requires the %s role", required),
		Category: "auth",
		Action:   "Sign in with an account that has the required role.",
	}
}
