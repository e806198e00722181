package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/xavierca1/qrleads/internal/entity"
)

type CreateVehicleUseCase struct {
	Repo        entity.VehicleRepository
	Consultants entity.ConsultantRepository
	QR          QRGenerator
	AppURL      string
}

func NewCreateVehicleUseCase(repo entity.VehicleRepository, consultants entity.ConsultantRepository, qr QRGenerator, appURL string) *CreateVehicleUseCase {
	return &CreateVehicleUseCase{Repo: repo, Consultants: consultants, QR: qr, AppURL: strings.TrimRight(appURL, "/")}
}

// Execute inserts the vehicle and attaches a QR code pointing at its lead
// page. If the QR step fails the vehicle is removed again.
func (uc *CreateVehicleUseCase) Execute(ctx context.Context, input VehicleInput) (*entity.Vehicle, error) {
	if errs := ValidateVehicleInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	consultant, err := uc.Consultants.FindByID(ctx, input.ConsultantID)
	if err != nil {
		return nil, classify(err, CodeDatabase, "consultant")
	}

	vehicle, err := entity.NewVehicle(input.Year, input.Make, input.Model, input.VehicleNumber, input.ConsultantID)
	if err != nil {
		return nil, classify(err, CodeValidation, "vehicle")
	}
	vehicle.Consultant = consultant

	tx := NewTransaction()
	tx.AddStep("insert vehicle",
		func(ctx context.Context) error { return uc.Repo.Create(ctx, vehicle) },
		func(ctx context.Context) error { return uc.Repo.Delete(ctx, vehicle.ID) },
	)
	tx.AddStep("attach qr code",
		func(ctx context.Context) error {
			dataURL, err := uc.QR.DataURL(VehicleURL(uc.AppURL, vehicle.ID))
			if err != nil {
				return err
			}
			if err := uc.Repo.SetQRCode(ctx, vehicle.ID, dataURL); err != nil {
				return err
			}
			vehicle.QRCodeURL = dataURL
			return nil
		},
		nil,
	)

	if err := tx.Execute(ctx); err != nil {
		return nil, classify(err, CodeQRCode, "failed to create vehicle")
	}
	slog.Info("vehicle created", "vehicle_id", vehicle.ID, "consultant_id", vehicle.ConsultantID)
	return vehicle, nil
}

type UpdateVehicleUseCase struct {
	Repo        entity.VehicleRepository
	Consultants entity.ConsultantRepository
}

func (uc *UpdateVehicleUseCase) Execute(ctx context.Context, id string, input VehicleInput) (*entity.Vehicle, error) {
	if errs := ValidateVehicleInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}
	vehicle, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, classify(err, CodeDatabase, "vehicle")
	}
	consultant, err := uc.Consultants.FindByID(ctx, input.ConsultantID)
	if err != nil {
		return nil, classify(err, CodeDatabase, "consultant")
	}

	vehicle.Year = input.Year
	vehicle.Make = strings.TrimSpace(input.Make)
	vehicle.Model = strings.TrimSpace(input.Model)
	vehicle.VehicleNumber = strings.TrimSpace(input.VehicleNumber)
	vehicle.ConsultantID = consultant.ID
	vehicle.Consultant = consultant

	if err := uc.Repo.Update(ctx, vehicle); err != nil {
		return nil, classify(err, CodeDatabase, "failed to update vehicle")
	}
	return vehicle, nil
}

func VehicleURL(appURL, vehicleID string) string {
	return strings.TrimRight(appURL, "/") + "/vehicle/" + vehicleID
}
