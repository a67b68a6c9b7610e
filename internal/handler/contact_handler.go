package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/karthik/caremate/internal/contact"
	"github.com/karthik/caremate/internal/model"
)

// ContactServiceInterface は問い合わせハンドラーが必要とするサービスインターフェース。
type ContactServiceInterface interface {
	Submit(ctx context.Context, input contact.SubmitInput) (*model.Enquiry, error)
}

// ContactHandler は問い合わせフォームのHTTPハンドラー。
type ContactHandler struct {
	service ContactServiceInterface
}

// NewContactHandler はContactHandlerを生成する。
func NewContactHandler(service ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// submitEnquiryRequest は問い合わせリクエストのボディ。
type submitEnquiryRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	ServiceID string `json:"service_id"`
	Message   string `json:"message"`
}

// enquiryResponse は問い合わせ受付のAPIレスポンス。
type enquiryResponse struct {
	ID string `json:"id"`
}

// Submit は問い合わせフォームの送信を処理する。
// 未認証でも利用できる公開エンドポイント。
// POST /api/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitEnquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	enquiry, err := h.service.Submit(r.Context(), contact.SubmitInput{
		Name:      req.Name,
		Phone:     req.Phone,
		ServiceID: req.ServiceID,
		Message:   req.Message,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, enquiryResponse{ID: enquiry.ID})
}
