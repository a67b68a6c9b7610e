package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/karthik/caremate/internal/contact"
	"github.com/karthik/caremate/internal/model"
)

type mockContactService struct {
	submitFn func(ctx context.Context, input contact.SubmitInput) (*model.Enquiry, error)
}

func (m *mockContactService) Submit(ctx context.Context, input contact.SubmitInput) (*model.Enquiry, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, input)
	}
	return &model.Enquiry{ID: "enq-1"}, nil
}

var _ ContactServiceInterface = (*mockContactService)(nil)

func TestContactSubmit_Returns201WithID(t *testing.T) {
	var gotInput contact.SubmitInput
	svc := &mockContactService{
		submitFn: func(ctx context.Context, input contact.SubmitInput) (*model.Enquiry, error) {
			gotInput = input
			return &model.Enquiry{ID: "enq-42"}, nil
		},
	}
	h := NewContactHandler(svc)

	body := `{"name":"Karthik","phone":"9876543210","service_id":"home-care","message":"Need help"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Submit(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if gotInput.ServiceID != "home-care" {
		t.Errorf("service_id = %q, want home-care", gotInput.ServiceID)
	}

	var resp enquiryResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.ID != "enq-42" {
		t.Errorf("id = %q, want enq-42", resp.ID)
	}
}

func TestContactSubmit_InvalidBody_Returns400(t *testing.T) {
	h := NewContactHandler(&mockContactService{})

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.Submit(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestContactSubmit_ValidationError_Returns400(t *testing.T) {
	svc := &mockContactService{
		submitFn: func(ctx context.Context, input contact.SubmitInput) (*model.Enquiry, error) {
			return nil, model.NewInvalidEnquiryError("name is required")
		},
	}
	h := NewContactHandler(svc)

	body := `{"phone":"9876543210","message":"Need help"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Submit(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var errResp apiErrorResponse
	json.NewDecoder(w.Body).Decode(&errResp)
	if errResp.Code != model.ErrCodeInvalidEnquiry {
		t.Errorf("error code = %q, want %q", errResp.Code, model.ErrCodeInvalidEnquiry)
	}
}
