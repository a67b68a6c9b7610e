package repository

import (
	"testing"
	"time"

	"github.com/karthik/caremate/internal/model"
)

// PostgresServiceAreaRepoはServiceAreaRepositoryインターフェースを満たすことを検証
func TestPostgresServiceAreaRepo_ImplementsInterface(t *testing.T) {
	var _ ServiceAreaRepository = (*PostgresServiceAreaRepo)(nil)
}

// PostgresEnquiryRepoはEnquiryRepositoryインターフェースを満たすことを検証
func TestPostgresEnquiryRepo_ImplementsInterface(t *testing.T) {
	var _ EnquiryRepository = (*PostgresEnquiryRepo)(nil)
}

// NewPostgresServiceAreaRepoが正しく初期化されることを検証
func TestNewPostgresServiceAreaRepo_Initializes(t *testing.T) {
	repo := NewPostgresServiceAreaRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewPostgresEnquiryRepoが正しく初期化されることを検証
func TestNewPostgresEnquiryRepo_Initializes(t *testing.T) {
	repo := NewPostgresEnquiryRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// ServiceAreaモデルのフィールドが正しく構築されることを検証
func TestServiceAreaModel_Fields(t *testing.T) {
	now := time.Now()
	area := &model.ServiceArea{
		Pincode:     "600001",
		ServiceID:   "home-care",
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if area.Pincode != "600001" {
		t.Errorf("area.Pincode = %q, want %q", area.Pincode, "600001")
	}
	if area.ServiceID != "home-care" {
		t.Errorf("area.ServiceID = %q, want %q", area.ServiceID, "home-care")
	}
	if !area.IsAvailable {
		t.Error("area.IsAvailable = false, want true")
	}
}
