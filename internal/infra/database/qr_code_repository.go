package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/qrleads/internal/entity"
)

type QRCodeRepository struct {
	DB *sql.DB
}

func NewQRCodeRepository(db *sql.DB) *QRCodeRepository {
	return &QRCodeRepository{DB: db}
}

func (r *QRCodeRepository) Create(ctx context.Context, q *entity.QRCode) error {
	query := `
		INSERT INTO qr_codes (id, campaign_id, name, target_url, landing_page_slug, vehicle_id, image_data_url, scans, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		q.ID, q.CampaignID, q.Name, q.TargetURL, nullString(q.LandingPageSlug), q.VehicleID,
		q.ImageDataURL, q.Scans, q.CreatedAt)
	return mapError(err, entity.ErrDuplicate)
}

func (r *QRCodeRepository) ListByCampaign(ctx context.Context, campaignID string) ([]entity.QRCode, error) {
	query := `
		SELECT id, campaign_id, name, target_url, COALESCE(landing_page_slug, ''), vehicle_id,
			image_data_url, scans, created_at
		FROM qr_codes`
	args := []any{}
	if campaignID != "" {
		query += ` WHERE campaign_id = $1`
		args = append(args, campaignID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, entity.ErrDuplicate)
	}
	defer rows.Close()

	out := []entity.QRCode{}
	for rows.Next() {
		var (
			q         entity.QRCode
			vehicleID sql.NullString
		)
		if err := rows.Scan(&q.ID, &q.CampaignID, &q.Name, &q.TargetURL, &q.LandingPageSlug, &vehicleID,
			&q.ImageDataURL, &q.Scans, &q.CreatedAt); err != nil {
			return nil, err
		}
		q.VehicleID = fromNull(vehicleID)
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *QRCodeRepository) IncrementScans(ctx context.Context, id string) (int, error) {
	var scans int
	err := r.DB.QueryRowContext(ctx, `UPDATE qr_codes SET scans = scans + 1 WHERE id = $1 RETURNING scans`, id).Scan(&scans)
	if err != nil {
		return 0, mapError(err, entity.ErrDuplicate)
	}
	return scans, nil
}
