package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/karthik/caremate/internal/model"
)

// roleContextKey はリクエストコンテキストにロールを格納するためのキー。
var roleContextKey = contextKey("role")

// UserFinder はロール判定に必要なユーザー検索のインターフェース。
// repository.UserRepositoryの部分集合として定義する。
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// NewRequireRoleMiddleware は認証済みユーザーのロールを検証するミドルウェアを返す。
// SessionMiddlewareの後に配置すること。ロールが一致しない場合は403を返す。
// 検証済みロールはリクエストコンテキストに注入される。
func NewRequireRoleMiddleware(userFinder UserFinder, required model.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := UserIDFromContext(r.Context())
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := userFinder.FindByID(r.Context(), userID)
			if err != nil {
				slog.Error("failed to find user for role check",
					slog.String("user_id", userID),
					slog.String("error", err.Error()),
				)
				WriteInternalServerError(w)
				return
			}
			if user == nil {
				WriteErrorResponse(w, http.StatusNotFound, model.NewUserNotFoundError())
				return
			}

			if user.Role != required {
				slog.Warn("role check failed",
					slog.String("user_id", userID),
					slog.String("role", string(user.Role)),
					slog.String("required", string(required)),
				)
				WriteErrorResponse(w, http.StatusForbidden, model.NewForbiddenError(required))
				return
			}

			ctx := context.WithValue(r.Context(), roleContextKey, user.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleFromContext はリクエストコンテキストから検証済みロールを取得する。
// RequireRoleMiddlewareを通過したリクエストでのみ有効。
func RoleFromContext(ctx context.Context) (model.Role, error) {
	role, ok := ctx.Value(roleContextKey).(model.Role)
	if !ok || !role.Valid() {
		return "", fmt.Errorf("role not found in context")
	}
	return role, nil
}
