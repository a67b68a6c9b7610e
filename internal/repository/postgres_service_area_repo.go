package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/karthik/caremate/internal/model"
)

// PostgresServiceAreaRepo はPostgreSQLを使用したサービスエリアリポジトリ。
type PostgresServiceAreaRepo struct {
	db *sql.DB
}

// NewPostgresServiceAreaRepo はPostgresServiceAreaRepoを生成する。
func NewPostgresServiceAreaRepo(db *sql.DB) *PostgresServiceAreaRepo {
	return &PostgresServiceAreaRepo{db: db}
}

// ListAll は全サービスエリアをcreated_at降順で取得する。
func (r *PostgresServiceAreaRepo) ListAll(ctx context.Context) ([]*model.ServiceArea, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT pincode, service_id, is_available, created_at, updated_at
		 FROM service_areas
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list service areas: %w", err)
	}
	defer rows.Close()

	var areas []*model.ServiceArea
	for rows.Next() {
		area := &model.ServiceArea{}
		if err := rows.Scan(&area.Pincode, &area.ServiceID, &area.IsAvailable, &area.CreatedAt, &area.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan service area: %w", err)
		}
		areas = append(areas, area)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate service areas: %w", err)
	}

	return areas, nil
}

// Upsert は(pincode, service_id)をキーにサービスエリアを冪等にUPSERTする。
// 既存行がある場合はis_availableとupdated_atのみ更新し、created_atは維持する。
func (r *PostgresServiceAreaRepo) Upsert(ctx context.Context, area *model.ServiceArea) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO service_areas (pincode, service_id, is_available, created_at, updated_at)
		 VALUES ($1, $2, $3, now(), now())
		 ON CONFLICT (pincode, service_id)
		 DO UPDATE SET is_available = EXCLUDED.is_available, updated_at = now()`,
		area.Pincode, area.ServiceID, area.IsAvailable,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert service area: %w", err)
	}
	return nil
}

// Delete は指定(pincode, service_id)のサービスエリアを削除する。
// 該当行が存在しない場合もエラーにしない。
func (r *PostgresServiceAreaRepo) Delete(ctx context.Context, pincode, serviceID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM service_areas WHERE pincode = $1 AND service_id = $2`,
		pincode, serviceID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete service area: %w", err)
	}
	return nil
}

// DeleteAll は全サービスエリアを削除し、削除件数を返す。
func (r *PostgresServiceAreaRepo) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM service_areas`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete all service areas: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return count, nil
}

// compile-time interface check
var _ ServiceAreaRepository = (*PostgresServiceAreaRepo)(nil)
