package model

import "time"

// ServiceArea は(郵便番号, サービスID)の組に対する提供可否を表す。
// 同一の組に対して行は最大1件であり、(pincode, service_id)を
// キーとしたUPSERTで一意性を担保する。
type ServiceArea struct {
	Pincode     string
	ServiceID   string
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
