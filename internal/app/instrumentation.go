package app

import (
	"context"

	"github.com/karthik/caremate/internal/contact"
	"github.com/karthik/caremate/internal/handler"
	"github.com/karthik/caremate/internal/metrics"
	"github.com/karthik/caremate/internal/model"
)

// instrumentedAuthService は認証サービスをラップし、
// サインイン・サインアップのメトリクスを記録する。
type instrumentedAuthService struct {
	handler.AuthServiceInterface
	collector metrics.MetricsCollector
}

var _ handler.AuthServiceInterface = (*instrumentedAuthService)(nil)

func (s *instrumentedAuthService) SignUp(ctx context.Context, email, password string, role model.Role) (*model.Session, error) {
	session, err := s.AuthServiceInterface.SignUp(ctx, email, password, role)
	if err == nil {
		s.collector.RecordSignUp(string(role))
	}
	return session, err
}

func (s *instrumentedAuthService) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	session, err := s.AuthServiceInterface.SignIn(ctx, email, password)
	s.collector.RecordSignIn(err == nil)
	return session, err
}

// instrumentedAreaService はサービスエリアサービスをラップし、
// 書き込み操作の種別をメトリクスに記録する。
type instrumentedAreaService struct {
	handler.ServiceAreaServiceInterface
	collector metrics.MetricsCollector
}

var _ handler.ServiceAreaServiceInterface = (*instrumentedAreaService)(nil)

func (s *instrumentedAreaService) Upsert(ctx context.Context, pincode, serviceID string, isAvailable bool) ([]*model.ServiceArea, error) {
	areas, err := s.ServiceAreaServiceInterface.Upsert(ctx, pincode, serviceID, isAvailable)
	if err == nil {
		s.collector.RecordAreaWrite("upsert")
	}
	return areas, err
}

func (s *instrumentedAreaService) Delete(ctx context.Context, pincode, serviceID string) ([]*model.ServiceArea, error) {
	areas, err := s.ServiceAreaServiceInterface.Delete(ctx, pincode, serviceID)
	if err == nil {
		s.collector.RecordAreaWrite("delete")
	}
	return areas, err
}

func (s *instrumentedAreaService) ClearAll(ctx context.Context, confirm bool) (int64, error) {
	deleted, err := s.ServiceAreaServiceInterface.ClearAll(ctx, confirm)
	if err == nil {
		s.collector.RecordAreaWrite("clear")
	}
	return deleted, err
}

// instrumentedContactService は問い合わせサービスをラップし、
// 受付件数をメトリクスに記録する。
type instrumentedContactService struct {
	handler.ContactServiceInterface
	collector metrics.MetricsCollector
}

var _ handler.ContactServiceInterface = (*instrumentedContactService)(nil)

func (s *instrumentedContactService) Submit(ctx context.Context, input contact.SubmitInput) (*model.Enquiry, error) {
	enquiry, err := s.ContactServiceInterface.Submit(ctx, input)
	if err == nil {
		s.collector.RecordEnquiryReceived()
	}
	return enquiry, err
}
