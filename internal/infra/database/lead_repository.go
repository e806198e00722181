package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xavierca1/qrleads/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, campaign_id, landing_page_id, vehicle_id, email,
	COALESCE(name, ''), COALESCE(phone, ''), COALESCE(address, ''), COALESCE(message, ''),
	source, metadata, notification_queued_at, created_at`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	metadata, err := json.Marshal(lead.Metadata)
	if err != nil {
		return fmt.Errorf("encoding lead metadata: %w", err)
	}
	query := `
		INSERT INTO leads (id, campaign_id, landing_page_id, vehicle_id, email, name, phone, address, message, source, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.CampaignID,
		lead.LandingPageID,
		lead.VehicleID,
		lead.Email,
		nullString(lead.Name),
		nullString(lead.Phone),
		nullString(lead.Address),
		nullString(lead.Message),
		lead.Source,
		string(metadata),
		lead.CreatedAt,
	)
	return mapError(err, entity.ErrDuplicate)
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	return scanLead(r.DB.QueryRowContext(ctx, query, id))
}

func (r *LeadRepository) List(ctx context.Context, campaignID string) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads`
	args := []any{}
	if campaignID != "" {
		query += ` WHERE campaign_id = $1`
		args = append(args, campaignID)
	}
	query += ` ORDER BY created_at DESC`
	return r.query(ctx, query, args...)
}

func (r *LeadRepository) MarkNotificationQueued(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE leads SET notification_queued_at = $2 WHERE id = $1`
	return mapError(rowsAffected(r.DB.ExecContext(ctx, query, id, at)), entity.ErrDuplicate)
}

func (r *LeadRepository) ListUnnotified(ctx context.Context, olderThan time.Time, limit int) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + `
		FROM leads
		WHERE notification_queued_at IS NULL AND created_at < $1
		ORDER BY created_at
		LIMIT $2`
	return r.query(ctx, query, olderThan, limit)
}

func (r *LeadRepository) query(ctx context.Context, query string, args ...any) ([]entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, entity.ErrDuplicate)
	}
	defer rows.Close()

	out := []entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *lead)
	}
	return out, rows.Err()
}

func scanLead(row scanner) (*entity.Lead, error) {
	var (
		l                             entity.Lead
		campaignID, pageID, vehicleID sql.NullString
		metadata                      []byte
		queuedAt                      sql.NullTime
	)
	err := row.Scan(&l.ID, &campaignID, &pageID, &vehicleID, &l.Email,
		&l.Name, &l.Phone, &l.Address, &l.Message,
		&l.Source, &metadata, &queuedAt, &l.CreatedAt)
	if err != nil {
		return nil, mapError(err, entity.ErrDuplicate)
	}
	l.CampaignID = fromNull(campaignID)
	l.LandingPageID = fromNull(pageID)
	l.VehicleID = fromNull(vehicleID)
	if queuedAt.Valid {
		t := queuedAt.Time
		l.NotificationQueuedAt = &t
	}
	l.Metadata = map[string]string{}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &l.Metadata); err != nil {
			return nil, fmt.Errorf("lead %s metadata: %w", l.ID, err)
		}
	}
	return &l, nil
}

func fromNull(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
