package model

import "time"

// Enquiry はマーケティングページの問い合わせフォームから送信された
// 連絡リクエストを表す。Messageは保存前にサニタイズされる。
type Enquiry struct {
	ID        string
	Name      string
	Phone     string
	ServiceID string
	Message   string
	CreatedAt time.Time
}
