package handler

import (
	"net/http"

	"github.com/karthik/caremate/internal/catalog"
	"github.com/karthik/caremate/internal/content"
)

// CatalogHandler はサービスカタログとページ文言の公開ハンドラー。
// どちらも静的データを返すだけで認証を要求しない。
type CatalogHandler struct{}

// NewCatalogHandler はCatalogHandlerを生成する。
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// Catalog は指定言語のサービスカタログを返す。
// 未対応の言語には英語を返す。
// GET /api/catalog?lang=ta
func (h *CatalogHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")

	writeJSON(w, http.StatusOK, map[string]any{
		"services": catalog.ForLanguage(lang),
	})
}

// Content は指定言語のマーケティングページ文言を返す。
// GET /api/content?lang=ta
func (h *CatalogHandler) Content(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")

	writeJSON(w, http.StatusOK, content.ForLanguage(lang))
}
