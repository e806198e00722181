package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/qrleads/internal/entity"
)

type CampaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

func (r *CampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	query := `
		INSERT INTO campaigns (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.DB.ExecContext(ctx, query, c.ID, c.Name, nullString(c.Description), c.CreatedAt, c.UpdatedAt)
	return mapError(err, entity.ErrDuplicate)
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), created_at, updated_at
		FROM campaigns
		WHERE id = $1
	`
	var c entity.Campaign
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapError(err, entity.ErrDuplicate)
	}
	return &c, nil
}

func (r *CampaignRepository) List(ctx context.Context) ([]entity.CampaignSummary, error) {
	query := `
		SELECT c.id, c.name, COALESCE(c.description, ''), c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM qr_codes q WHERE q.campaign_id = c.id),
			(SELECT COUNT(*) FROM landing_pages p WHERE p.campaign_id = c.id),
			(SELECT COUNT(*) FROM leads l WHERE l.campaign_id = c.id)
		FROM campaigns c
		ORDER BY c.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.CampaignSummary{}
	for rows.Next() {
		var s entity.CampaignSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt,
			&s.QRCodes, &s.LandingPages, &s.Leads); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
