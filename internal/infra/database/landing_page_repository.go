package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/landing"
)

type LandingPageRepository struct {
	DB *sql.DB
}

func NewLandingPageRepository(db *sql.DB) *LandingPageRepository {
	return &LandingPageRepository{DB: db}
}

const landingPageColumns = `id, campaign_id, name, slug, content, is_published, created_at, updated_at`

func (r *LandingPageRepository) Create(ctx context.Context, p *entity.LandingPage) error {
	content, err := json.Marshal(p.Content)
	if err != nil {
		return fmt.Errorf("encoding landing page content: %w", err)
	}
	query := `
		INSERT INTO landing_pages (` + landingPageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.DB.ExecContext(ctx, query,
		p.ID, p.CampaignID, p.Name, p.Slug, string(content), p.IsPublished, p.CreatedAt, p.UpdatedAt)
	return mapError(err, entity.ErrSlugTaken)
}

func (r *LandingPageRepository) FindByID(ctx context.Context, id string) (*entity.LandingPage, error) {
	query := `SELECT ` + landingPageColumns + ` FROM landing_pages WHERE id = $1`
	return scanLandingPage(r.DB.QueryRowContext(ctx, query, id))
}

func (r *LandingPageRepository) FindBySlug(ctx context.Context, slug string) (*entity.LandingPage, error) {
	query := `SELECT ` + landingPageColumns + ` FROM landing_pages WHERE slug = $1`
	return scanLandingPage(r.DB.QueryRowContext(ctx, query, slug))
}

func (r *LandingPageRepository) ListByCampaign(ctx context.Context, campaignID string) ([]entity.LandingPage, error) {
	query := `SELECT ` + landingPageColumns + ` FROM landing_pages`
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

	out := []entity.LandingPage{}
	for rows.Next() {
		p, err := scanLandingPage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *LandingPageRepository) Update(ctx context.Context, p *entity.LandingPage) error {
	content, err := json.Marshal(p.Content)
	if err != nil {
		return fmt.Errorf("encoding landing page content: %w", err)
	}
	query := `
		UPDATE landing_pages
		SET name = $2, content = $3, is_published = $4, updated_at = NOW()
		WHERE id = $1
	`
	return mapError(rowsAffected(r.DB.ExecContext(ctx, query, p.ID, p.Name, string(content), p.IsPublished)), entity.ErrSlugTaken)
}

func (r *LandingPageRepository) SaveContent(ctx context.Context, id string, content landing.Content, isPublished bool) error {
	body, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("encoding landing page content: %w", err)
	}
	query := `
		UPDATE landing_pages
		SET content = $2, is_published = $3, updated_at = NOW()
		WHERE id = $1
	`
	return mapError(rowsAffected(r.DB.ExecContext(ctx, query, id, string(body), isPublished)), entity.ErrDuplicate)
}

func (r *LandingPageRepository) Delete(ctx context.Context, id string) error {
	return mapError(rowsAffected(r.DB.ExecContext(ctx, `DELETE FROM landing_pages WHERE id = $1`, id)), entity.ErrDuplicate)
}

func scanLandingPage(row scanner) (*entity.LandingPage, error) {
	var (
		p   entity.LandingPage
		raw []byte
	)
	if err := row.Scan(&p.ID, &p.CampaignID, &p.Name, &p.Slug, &raw, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapError(err, entity.ErrDuplicate)
	}
	content, err := landing.ParseContent(raw)
	if err != nil {
		return nil, fmt.Errorf("landing page %s: %w", p.ID, err)
	}
	p.Content = content
	return &p, nil
}
