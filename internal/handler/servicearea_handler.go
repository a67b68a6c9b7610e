package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/karthik/caremate/internal/model"
)

// ServiceAreaServiceInterface はエリアハンドラーが必要とするサービスインターフェース。
type ServiceAreaServiceInterface interface {
	// Load は全サービスエリアを新しい順に返す。
	Load(ctx context.Context) ([]*model.ServiceArea, error)
	// Upsert は(郵便番号, サービスID)の組の提供可否を登録または更新し、
	// 更新後の全エリア一覧を返す。
	Upsert(ctx context.Context, pincode, serviceID string, isAvailable bool) ([]*model.ServiceArea, error)
	// Delete は1件のエリアを削除し、削除後の全エリア一覧を返す。
	Delete(ctx context.Context, pincode, serviceID string) ([]*model.ServiceArea, error)
	// ClearAll は全エリアを削除し、削除件数を返す。confirmがfalseの場合は失敗する。
	ClearAll(ctx context.Context, confirm bool) (int64, error)
	// Availability は指定郵便番号で提供可能なサービスIDの一覧を返す。
	Availability(ctx context.Context, pincode string) ([]string, error)
}

// ServiceAreaHandler はサービスエリア管理のHTTPハンドラー。
// 書き込み系のルートは看護師ロールに限定される。
type ServiceAreaHandler struct {
	service ServiceAreaServiceInterface
}

// NewServiceAreaHandler はServiceAreaHandlerを生成する。
func NewServiceAreaHandler(service ServiceAreaServiceInterface) *ServiceAreaHandler {
	return &ServiceAreaHandler{service: service}
}

// upsertAreaRequest はエリア登録・更新リクエストのボディ。
type upsertAreaRequest struct {
	Pincode     string `json:"pincode"`
	ServiceID   string `json:"service_id"`
	IsAvailable *bool  `json:"is_available"`
}

// areaResponse はサービスエリア1件のAPIレスポンス。
type areaResponse struct {
	Pincode     string    `json:"pincode"`
	ServiceID   string    `json:"service_id"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// areaListResponse はサービスエリア一覧のAPIレスポンス。
type areaListResponse struct {
	Areas []areaResponse `json:"areas"`
}

// List は全サービスエリアを返す。
// GET /api/service-areas
func (h *ServiceAreaHandler) List(w http.ResponseWriter, r *http.Request) {
	areas, err := h.service.Load(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAreaListResponse(areas))
}

// Upsert はエリアの登録または提供可否の更新を処理する。
// 同一の(郵便番号, サービスID)には行が1件だけ維持される。
// PUT /api/service-areas
func (h *ServiceAreaHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertAreaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	// is_available省略時は提供可能として登録する
	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	areas, err := h.service.Upsert(r.Context(), req.Pincode, req.ServiceID, isAvailable)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAreaListResponse(areas))
}

// Delete は1件のエリアを削除する。
// DELETE /api/service-areas/{pincode}/{serviceID}
func (h *ServiceAreaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	pincode := chi.URLParam(r, "pincode")
	serviceID := chi.URLParam(r, "serviceID")

	areas, err := h.service.Delete(r.Context(), pincode, serviceID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAreaListResponse(areas))
}

// ClearAll は全エリアを削除する。confirm=trueクエリパラメータが必須。
// DELETE /api/service-areas?confirm=true
func (h *ServiceAreaHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	confirm := r.URL.Query().Get("confirm") == "true"

	deleted, err := h.service.ClearAll(r.Context(), confirm)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// Availability は指定郵便番号で提供可能なサービスIDの一覧を返す。
// 未認証でも利用できる公開エンドポイント。
// GET /api/availability?pincode=600001
func (h *ServiceAreaHandler) Availability(w http.ResponseWriter, r *http.Request) {
	pincode := r.URL.Query().Get("pincode")

	serviceIDs, err := h.service.Availability(r.Context(), pincode)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"pincode":  pincode,
		"services": serviceIDs,
	})
}

// toAreaListResponse はmodel.ServiceAreaのスライスからAPIレスポンスに変換する。
func toAreaListResponse(areas []*model.ServiceArea) areaListResponse {
	results := make([]areaResponse, len(areas))
	for i, area := range areas {
		results[i] = areaResponse{
			Pincode:     area.Pincode,
			ServiceID:   area.ServiceID,
			IsAvailable: area.IsAvailable,
			CreatedAt:   area.CreatedAt,
			UpdatedAt:   area.UpdatedAt,
		}
	}
	return areaListResponse{Areas: results}
}
