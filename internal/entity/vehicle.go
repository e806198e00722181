package entity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinVehicleYear = 1900
	MaxVehicleYear = 2100
)

type Vehicle struct {
	ID            string      `json:"id"`
	Year          int         `json:"year"`
	Make          string      `json:"make"`
	Model         string      `json:"model"`
	VehicleNumber string      `json:"vehicleNumber,omitempty"`
	ConsultantID  string      `json:"consultantId"`
	Consultant    *Consultant `json:"consultant,omitempty"`
	QRCodeURL     string      `json:"qrCodeUrl,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// DisplayName is the "2021 Ford Transit" label used in e-mails and pages.
func (v *Vehicle) DisplayName() string {
	return fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model)
}

type VehicleRepository interface {
	Create(ctx context.Context, v *Vehicle) error
	FindByID(ctx context.Context, id string) (*Vehicle, error)
	List(ctx context.Context) ([]Vehicle, error)
	Update(ctx context.Context, v *Vehicle) error
	SetQRCode(ctx context.Context, id, dataURL string) error
	Delete(ctx context.Context, id string) error
}

func NewVehicle(year int, brand, model, vehicleNumber, consultantID string) (*Vehicle, error) {
	now := time.Now()
	v := &Vehicle{
		ID:            uuid.New().String(),
		Year:          year,
		Make:          strings.TrimSpace(brand),
		Model:         strings.TrimSpace(model),
		VehicleNumber: strings.TrimSpace(vehicleNumber),
		ConsultantID:  consultantID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Vehicle) Validate() error {
	if v.Year < MinVehicleYear || v.Year > MaxVehicleYear {
		return fmt.Errorf("%w: year must be between %d and %d", ErrValidation, MinVehicleYear, MaxVehicleYear)
	}
	if v.Make == "" {
		return fmt.Errorf("%w: make is required", ErrValidation)
	}
	if v.Model == "" {
		return fmt.Errorf("%w: model is required", ErrValidation)
	}
	if v.ConsultantID == "" {
		return fmt.Errorf("%w: consultantId is required", ErrValidation)
	}
	return nil
}
