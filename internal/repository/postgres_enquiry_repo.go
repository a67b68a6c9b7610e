package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/karthik/caremate/internal/model"
)

// PostgresEnquiryRepo はPostgreSQLを使用した問い合わせリポジトリ。
type PostgresEnquiryRepo struct {
	db *sql.DB
}

// NewPostgresEnquiryRepo はPostgresEnquiryRepoを生成する。
func NewPostgresEnquiryRepo(db *sql.DB) *PostgresEnquiryRepo {
	return &PostgresEnquiryRepo{db: db}
}

// Create は問い合わせを作成する。
func (r *PostgresEnquiryRepo) Create(ctx context.Context, enquiry *model.Enquiry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO enquiries (id, name, phone, service_id, message, created_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`,
		enquiry.ID, enquiry.Name, enquiry.Phone, enquiry.ServiceID, enquiry.Message, enquiry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert enquiry: %w", err)
	}
	return nil
}

// DeleteOlderThan は指定日時より古い問い合わせを削除し、削除件数を返す。
func (r *PostgresEnquiryRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM enquiries WHERE created_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old enquiries: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return count, nil
}

// compile-time interface check
var _ EnquiryRepository = (*PostgresEnquiryRepo)(nil)
