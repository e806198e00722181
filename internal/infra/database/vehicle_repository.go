package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/qrleads/internal/entity"
)

type VehicleRepository struct {
	DB *sql.DB
}

func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{DB: db}
}

const vehicleSelect = `
	SELECT v.id, v.year, v.make, v.model, COALESCE(v.vehicle_number, ''), v.consultant_id,
		COALESCE(v.qr_code_url, ''), v.created_at, v.updated_at,
		c.id, c.name, c.email, COALESCE(c.phone, ''), c.created_at, c.updated_at
	FROM vehicles v
	JOIN consultants c ON c.id = v.consultant_id
`

func (r *VehicleRepository) Create(ctx context.Context, v *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, year, make, model, vehicle_number, consultant_id, qr_code_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		v.ID, v.Year, v.Make, v.Model, nullString(v.VehicleNumber), v.ConsultantID,
		nullString(v.QRCodeURL), v.CreatedAt, v.UpdatedAt)
	return mapError(err, entity.ErrDuplicate)
}

func (r *VehicleRepository) FindByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	return scanVehicle(r.DB.QueryRowContext(ctx, vehicleSelect+` WHERE v.id = $1`, id))
}

func (r *VehicleRepository) List(ctx context.Context) ([]entity.Vehicle, error) {
	rows, err := r.DB.QueryContext(ctx, vehicleSelect+` ORDER BY v.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (r *VehicleRepository) Update(ctx context.Context, v *entity.Vehicle) error {
	query := `
		UPDATE vehicles
		SET year = $2, make = $3, model = $4, vehicle_number = $5, consultant_id = $6, updated_at = NOW()
		WHERE id = $1
	`
	return mapError(rowsAffected(r.DB.ExecContext(ctx, query,
		v.ID, v.Year, v.Make, v.Model, nullString(v.VehicleNumber), v.ConsultantID)), entity.ErrDuplicate)
}

func (r *VehicleRepository) SetQRCode(ctx context.Context, id, dataURL string) error {
	query := `UPDATE vehicles SET qr_code_url = $2, updated_at = NOW() WHERE id = $1`
	return mapError(rowsAffected(r.DB.ExecContext(ctx, query, id, dataURL)), entity.ErrDuplicate)
}

func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	return mapError(rowsAffected(r.DB.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)), entity.ErrDuplicate)
}

func scanVehicle(row scanner) (*entity.Vehicle, error) {
	var (
		v entity.Vehicle
		c entity.Consultant
	)
	err := row.Scan(&v.ID, &v.Year, &v.Make, &v.Model, &v.VehicleNumber, &v.ConsultantID,
		&v.QRCodeURL, &v.CreatedAt, &v.UpdatedAt,
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapError(err, entity.ErrDuplicate)
	}
	v.Consultant = &c
	return &v, nil
}
