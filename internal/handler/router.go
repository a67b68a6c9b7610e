package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karthik/caremate/internal/middleware"
	"github.com/karthik/caremate/internal/model"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionFinder     middleware.SessionFinder
	UserFinder        middleware.UserFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	CSRFConfig        middleware.CSRFConfig

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// プロフィール
	ProfileService ProfileServiceInterface

	// サービスエリア
	AreaService ServiceAreaServiceInterface

	// 問い合わせ
	ContactService ContactServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → CSRF → (Session → RateLimit → RequireRole)
//
// 認証エンドポイント（/auth/signup, /auth/signin）にはIP単位のレート制限を適用する。
// サービスエリアの書き込み系ルートは看護師ロールに限定する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	profileHandler := NewProfileHandler(deps.ProfileService)
	areaHandler := NewServiceAreaHandler(deps.AreaService)
	catalogHandler := NewCatalogHandler()
	contactHandler := NewContactHandler(deps.ContactService)

	// --- 認証不要のルート ---

	r.Get("/health", healthHandler)
	r.Method(http.MethodGet, "/api/csrf-token", middleware.NewCSRFTokenHandler(deps.CSRFConfig))

	// マーケティングページ向けの公開API
	r.Get("/api/content", catalogHandler.Content)
	r.Get("/api/catalog", catalogHandler.Catalog)
	r.Get("/api/availability", areaHandler.Availability)
	r.Post("/api/contact", contactHandler.Submit)

	// 認証ルート。資格情報を扱うエンドポイントにはIP単位のレート制限を追加する。
	r.Route("/auth", func(r chi.Router) {
		r.With(deps.RateLimiter.AuthMiddleware()).Post("/signup", authHandler.SignUp)
		r.With(deps.RateLimiter.AuthMiddleware()).Post("/signin", authHandler.SignIn)
		r.Post("/signout", authHandler.SignOut)
		r.Get("/session", authHandler.Session)
	})

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// プロフィール管理
		r.Route("/api/profiles", func(r chi.Router) {
			r.Post("/", profileHandler.Register)
			r.Get("/me", profileHandler.Me)
		})

		// サービスエリア管理（看護師のみ）
		r.Route("/api/service-areas", func(r chi.Router) {
			r.Use(middleware.NewRequireRoleMiddleware(deps.UserFinder, model.RoleNurse))

			r.Get("/", areaHandler.List)
			r.Put("/", areaHandler.Upsert)
			r.Delete("/", areaHandler.ClearAll)
			r.Delete("/{pincode}/{serviceID}", areaHandler.Delete)
		})
	})

	return r
}

// healthHandler はヘルスチェックエンドポイント。
// GET /health
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
