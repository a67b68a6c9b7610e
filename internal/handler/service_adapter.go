package handler

import (
	"github.com/karthik/caremate/internal/auth"
	"github.com/karthik/caremate/internal/contact"
	"github.com/karthik/caremate/internal/profile"
	"github.com/karthik/caremate/internal/servicearea"
)

// 各ドメインサービスがハンドラーのインターフェースを満たすことをコンパイル時に保証する。
// ハンドラー側のインターフェースはサービス実装の部分集合として定義されており、
// 変換アダプタを介さずそのまま注入できる。
var (
	_ AuthServiceInterface        = (*auth.Service)(nil)
	_ ProfileServiceInterface     = (*profile.Service)(nil)
	_ ServiceAreaServiceInterface = (*servicearea.Service)(nil)
	_ ContactServiceInterface     = (*contact.Service)(nil)
)
