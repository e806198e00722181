package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/qrleads/internal/entity"
)

type ConsultantRepository struct {
	DB *sql.DB
}

func NewConsultantRepository(db *sql.DB) *ConsultantRepository {
	return &ConsultantRepository{DB: db}
}

const consultantColumns = `id, name, email, COALESCE(phone, ''), created_at, updated_at`

func (r *ConsultantRepository) Create(ctx context.Context, c *entity.Consultant) error {
	query := `
		INSERT INTO consultants (id, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query, c.ID, c.Name, c.Email, nullString(c.Phone), c.CreatedAt, c.UpdatedAt)
	return mapError(err, entity.ErrDuplicate)
}

func (r *ConsultantRepository) FindByID(ctx context.Context, id string) (*entity.Consultant, error) {
	var c entity.Consultant
	err := r.DB.QueryRowContext(ctx, `SELECT `+consultantColumns+` FROM consultants WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapError(err, entity.ErrDuplicate)
	}
	return &c, nil
}

func (r *ConsultantRepository) List(ctx context.Context) ([]entity.Consultant, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+consultantColumns+` FROM consultants ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Consultant{}
	for rows.Next() {
		var c entity.Consultant
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ConsultantRepository) Update(ctx context.Context, c *entity.Consultant) error {
	query := `
		UPDATE consultants
		SET name = $2, email = $3, phone = $4, updated_at = NOW()
		WHERE id = $1
	`
	return mapError(rowsAffected(r.DB.ExecContext(ctx, query, c.ID, c.Name, c.Email, nullString(c.Phone))), entity.ErrDuplicate)
}

// Delete fails with entity.ErrInUse while vehicles still point at the consultant.
func (r *ConsultantRepository) Delete(ctx context.Context, id string) error {
	return mapError(rowsAffected(r.DB.ExecContext(ctx, `DELETE FROM consultants WHERE id = $1`, id)), entity.ErrDuplicate)
}
