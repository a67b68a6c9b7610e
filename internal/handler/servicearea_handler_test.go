package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/karthik/caremate/internal/model"
)

// --- モック定義 ---

type mockAreaService struct {
	loadFn         func(ctx context.Context) ([]*model.ServiceArea, error)
	upsertFn       func(ctx context.Context, pincode, serviceID string, isAvailable bool) ([]*model.ServiceArea, error)
	deleteFn       func(ctx context.Context, pincode, serviceID string) ([]*model.ServiceArea, error)
	clearAllFn     func(ctx context.Context, confirm bool) (int64, error)
	availabilityFn func(ctx context.Context, pincode string) ([]string, error)
}

func (m *mockAreaService) Load(ctx context.Context) ([]*model.ServiceArea, error) {
	if m.loadFn != nil {
		return m.loadFn(ctx)
	}
	return nil, nil
}

func (m *mockAreaService) Upsert(ctx context.Context, pincode, serviceID string, isAvailable bool) ([]*model.ServiceArea, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, pincode, serviceID, isAvailable)
	}
	return nil, nil
}

func (m *mockAreaService) Delete(ctx context.Context, pincode, serviceID string) ([]*model.ServiceArea, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, pincode, serviceID)
	}
	return nil, nil
}

func (m *mockAreaService) ClearAll(ctx context.Context, confirm bool) (int64, error) {
	if m.clearAllFn != nil {
		return m.clearAllFn(ctx, confirm)
	}
	return 0, nil
}

func (m *mockAreaService) Availability(ctx context.Context, pincode string) ([]string, error) {
	if m.availabilityFn != nil {
		return m.availabilityFn(ctx, pincode)
	}
	return nil, nil
}

var _ ServiceAreaServiceInterface = (*mockAreaService)(nil)

func testArea(pincode, serviceID string, available bool) *model.ServiceArea {
	return &model.ServiceArea{
		Pincode:     pincode,
		ServiceID:   serviceID,
		IsAvailable: available,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// areaTestRouter はURLパラメータの解決も含めてハンドラーを検証するためのルーター。
func areaTestRouter(svc ServiceAreaServiceInterface) http.Handler {
	h := NewServiceAreaHandler(svc)
	r := chi.NewRouter()
	r.Get("/api/service-areas", h.List)
	r.Put("/api/service-areas", h.Upsert)
	r.Delete("/api/service-areas", h.ClearAll)
	r.Delete("/api/service-areas/{pincode}/{serviceID}", h.Delete)
	r.Get("/api/availability", h.Availability)
	return r
}

// --- テスト ---

func TestAreaList_ReturnsAreas(t *testing.T) {
	svc := &mockAreaService{
		loadFn: func(ctx context.Context) ([]*model.ServiceArea, error) {
			return []*model.ServiceArea{
				testArea("600002", "rehabilitation", true),
				testArea("600001", "home-care", false),
			}, nil
		},
	}
	router := areaTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/service-areas", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp areaListResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp.Areas) != 2 {
		t.Fatalf("len(areas) = %d, want 2", len(resp.Areas))
	}
	if resp.Areas[0].Pincode != "600002" {
		t.Errorf("areas[0].Pincode = %q, want 600002", resp.Areas[0].Pincode)
	}
}

func TestAreaList_LoadFailure_ReturnsStaticMessage(t *testing.T) {
	svc := &mockAreaService{
		loadFn: func(ctx context.Context) ([]*model.ServiceArea, error) {
			return nil, model.NewAreaLoadError()
		},
	}
	router := areaTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/service-areas", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}

	var errResp apiErrorResponse
	json.NewDecoder(w.Body).Decode(&errResp)
	if errResp.Message != "Error loading service areas" {
		t.Errorf("message = %q, want the static load error message", errResp.Message)
	}
}

func TestAreaUpsert_PassesRequestFields(t *testing.T) {
	var gotPincode, gotServiceID string
	var gotAvailable bool
	svc := &mockAreaService{
		upsertFn: func(ctx context.Context, pincode, serviceID string, isAvailable bool) ([]*model.ServiceArea, error) {
			gotPincode, gotServiceID, gotAvailable = pincode, serviceID, isAvailable
			return []*model.ServiceArea{testArea(pincode, serviceID, isAvailable)}, nil
		},
	}
	router := areaTestRouter(svc)

	body := `{"pincode":"600001","service_id":"home-care","is_available":false}`
	req := httptest.NewRequest(http.MethodPut, "/api/service-areas", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotPincode != "600001" || gotServiceID != "home-care" {
		t.Errorf("got (%q, %q), want (600001, home-care)", gotPincode, gotServiceID)
	}
	if gotAvailable {
		t.Error("is_available=false should be passed through")
	}
}

func TestAreaUpsert_OmittedAvailability_DefaultsToTrue(t *testing.T) {
	var gotAvailable bool
	svc := &mockAreaService{
		upsertFn: func(ctx context.Context, pincode, serviceID string, isAvailable bool) ([]*model.ServiceArea, error) {
			gotAvailable = isAvailable
			return nil, nil
		},
	}
	router := areaTestRouter(svc)

	body := `{"pincode":"600001","service_id":"home-care"}`
	req := httptest.NewRequest(http.MethodPut, "/api/service-areas", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if !gotAvailable {
		t.Error("omitted is_available should default to true")
	}
}

func TestAreaUpsert_InvalidPincode_Returns400(t *testing.T) {
	svc := &mockAreaService{
		upsertFn: func(ctx context.Context, pincode, serviceID string, isAvailable bool) ([]*model.ServiceArea, error) {
			return nil, model.NewInvalidPincodeError()
		},
	}
	router := areaTestRouter(svc)

	body := `{"pincode":"12345","service_id":"home-care"}`
	req := httptest.NewRequest(http.MethodPut, "/api/service-areas", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAreaDelete_ResolvesURLParams(t *testing.T) {
	var gotPincode, gotServiceID string
	svc := &mockAreaService{
		deleteFn: func(ctx context.Context, pincode, serviceID string) ([]*model.ServiceArea, error) {
			gotPincode, gotServiceID = pincode, serviceID
			return nil, nil
		},
	}
	router := areaTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/service-areas/600001/home-care", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotPincode != "600001" || gotServiceID != "home-care" {
		t.Errorf("got (%q, %q), want (600001, home-care)", gotPincode, gotServiceID)
	}
}

func TestAreaClearAll_RequiresConfirmParam(t *testing.T) {
	var gotConfirm bool
	svc := &mockAreaService{
		clearAllFn: func(ctx context.Context, confirm bool) (int64, error) {
			gotConfirm = confirm
			if !confirm {
				return 0, model.NewAreaClearError()
			}
			return 7, nil
		},
	}
	router := areaTestRouter(svc)

	// confirmなしは失敗する
	req := httptest.NewRequest(http.MethodDelete, "/api/service-areas", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if gotConfirm {
		t.Error("missing confirm param should be passed as false")
	}
	if w.Code != http.StatusBadGateway {
		t.Errorf("status without confirm = %d, want %d", w.Code, http.StatusBadGateway)
	}

	// confirm=trueは削除件数を返す
	req = httptest.NewRequest(http.MethodDelete, "/api/service-areas?confirm=true", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status with confirm = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]int64
	json.NewDecoder(w.Body).Decode(&resp)
	if resp["deleted"] != 7 {
		t.Errorf("deleted = %d, want 7", resp["deleted"])
	}
}

func TestAvailability_ReturnsServiceIDs(t *testing.T) {
	svc := &mockAreaService{
		availabilityFn: func(ctx context.Context, pincode string) ([]string, error) {
			return []string{"home-care", "rehabilitation"}, nil
		},
	}
	router := areaTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/availability?pincode=600001", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Pincode  string   `json:"pincode"`
		Services []string `json:"services"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Pincode != "600001" {
		t.Errorf("pincode = %q, want 600001", resp.Pincode)
	}
	if len(resp.Services) != 2 {
		t.Errorf("len(services) = %d, want 2", len(resp.Services))
	}
}
