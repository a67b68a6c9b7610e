// Package servicearea はサービス提供エリアの管理ロジックを提供する。
//
// エリアは(郵便番号, サービスID)の組で識別され、ナースロールの
// ユーザーのみが変更できる。永続化の失敗は原因を区別せず
// 4種類の定型エラーに縮約し、詳細はログにのみ記録する。
package servicearea

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/karthik/caremate/internal/catalog"
	"github.com/karthik/caremate/internal/model"
	"github.com/karthik/caremate/internal/repository"
)

// pincodePattern はインドの6桁郵便番号の形式。
var pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// Service はサービスエリア管理のサービス層。
type Service struct {
	areaRepo repository.ServiceAreaRepository
}

// NewService はServiceを生成する。
func NewService(areaRepo repository.ServiceAreaRepository) *Service {
	return &Service{areaRepo: areaRepo}
}

// Load は全サービスエリアをcreated_at降順で取得する。
func (s *Service) Load(ctx context.Context) ([]*model.ServiceArea, error) {
	areas, err := s.areaRepo.ListAll(ctx)
	if err != nil {
		slog.Error("failed to load service areas", slog.String("error", err.Error()))
		return nil, model.NewAreaLoadError()
	}
	return areas, nil
}

// Upsert はサービスエリアを追加または更新し、更新後の全エリアを返す。
// 同一(pincode, serviceID)への再実行は行を増やさず、is_availableのみ更新する。
func (s *Service) Upsert(ctx context.Context, pincode, serviceID string, isAvailable bool) ([]*model.ServiceArea, error) {
	if !pincodePattern.MatchString(pincode) {
		return nil, model.NewInvalidPincodeError()
	}
	if !catalog.IsKnown(serviceID) {
		return nil, model.NewUnknownServiceError(serviceID)
	}

	area := &model.ServiceArea{
		Pincode:     pincode,
		ServiceID:   serviceID,
		IsAvailable: isAvailable,
	}
	if err := s.areaRepo.Upsert(ctx, area); err != nil {
		slog.Error("failed to upsert service area",
			slog.String("pincode", pincode),
			slog.String("service_id", serviceID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewAreaUpdateError()
	}

	slog.Info("service area updated",
		slog.String("pincode", pincode),
		slog.String("service_id", serviceID),
		slog.Bool("is_available", isAvailable),
	)

	// 書き込み後に一覧を読み直して返す
	return s.Load(ctx)
}

// Delete は指定(pincode, serviceID)のエリアを削除し、更新後の全エリアを返す。
// 該当行が存在しない場合も成功として扱う。
func (s *Service) Delete(ctx context.Context, pincode, serviceID string) ([]*model.ServiceArea, error) {
	if !pincodePattern.MatchString(pincode) {
		return nil, model.NewInvalidPincodeError()
	}
	if !catalog.IsKnown(serviceID) {
		return nil, model.NewUnknownServiceError(serviceID)
	}

	if err := s.areaRepo.Delete(ctx, pincode, serviceID); err != nil {
		slog.Error("failed to delete service area",
			slog.String("pincode", pincode),
			slog.String("service_id", serviceID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewAreaDeleteError()
	}

	slog.Info("service area deleted",
		slog.String("pincode", pincode),
		slog.String("service_id", serviceID),
	)

	return s.Load(ctx)
}

// ClearAll は全サービスエリアを削除し、削除件数を返す。
// confirmがfalseの場合は何も削除せずエラーを返す。
func (s *Service) ClearAll(ctx context.Context, confirm bool) (int64, error) {
	if !confirm {
		return 0, model.NewAreaClearError()
	}

	count, err := s.areaRepo.DeleteAll(ctx)
	if err != nil {
		slog.Error("failed to clear service areas", slog.String("error", err.Error()))
		return 0, model.NewAreaClearError()
	}

	slog.Info("all service areas cleared", slog.Int64("count", count))
	return count, nil
}

// Availability は指定郵便番号で利用可能なサービスID一覧を返す。
// 郵便番号の形式が不正な場合はINVALID_PINCODEを返す。
func (s *Service) Availability(ctx context.Context, pincode string) ([]string, error) {
	if !pincodePattern.MatchString(pincode) {
		return nil, model.NewInvalidPincodeError()
	}

	areas, err := s.areaRepo.ListAll(ctx)
	if err != nil {
		slog.Error("failed to load service areas", slog.String("error", err.Error()))
		return nil, model.NewAreaLoadError()
	}

	var available []string
	for _, area := range areas {
		if area.Pincode == pincode && area.IsAvailable {
			available = append(available, area.ServiceID)
		}
	}
	return available, nil
}
