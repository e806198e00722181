package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/xavierca1/qrleads/internal/entity"
)

type CreateQRCodeUseCase struct {
	Repo      entity.QRCodeRepository
	Campaigns entity.CampaignRepository
	Vehicles  entity.VehicleRepository
	QR        QRGenerator
	AppURL    string
}

func NewCreateQRCodeUseCase(repo entity.QRCodeRepository, campaigns entity.CampaignRepository, vehicles entity.VehicleRepository, qr QRGenerator, appURL string) *CreateQRCodeUseCase {
	return &CreateQRCodeUseCase{Repo: repo, Campaigns: campaigns, Vehicles: vehicles, QR: qr, AppURL: strings.TrimRight(appURL, "/")}
}

func (uc *CreateQRCodeUseCase) Execute(ctx context.Context, input CreateQRCodeInput) (*entity.QRCode, error) {
	if errs := ValidateQRCodeInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}
	if _, err := uc.Campaigns.FindByID(ctx, input.CampaignID); err != nil {
		return nil, classify(err, CodeDatabase, "campaign")
	}
	if input.VehicleID != "" {
		if _, err := uc.Vehicles.FindByID(ctx, input.VehicleID); err != nil {
			return nil, classify(err, CodeDatabase, "vehicle")
		}
	}

	target := LandingURL(uc.AppURL, input.LandingPageSlug)
	dataURL, err := uc.QR.DataURL(target)
	if err != nil {
		return nil, &TechnicalError{Code: CodeQRCode, Message: "failed to generate QR code", Err: err}
	}

	qr, err := entity.NewQRCode(input.CampaignID, input.Name, target, dataURL)
	if err != nil {
		return nil, classify(err, CodeValidation, "qr code")
	}
	qr.LandingPageSlug = input.LandingPageSlug
	qr.VehicleID = optional(input.VehicleID)

	if err := uc.Repo.Create(ctx, qr); err != nil {
		return nil, classify(err, CodeDatabase, "failed to create qr code")
	}
	slog.Info("qr code created", "qr_code_id", qr.ID, "target", target)
	return qr, nil
}

// LandingURL is the public address a QR code points at. Without a slug it
// falls back to the default landing page.
func LandingURL(appURL, slug string) string {
	if slug == "" {
		slug = "default"
	}
	return strings.TrimRight(appURL, "/") + "/landing/" + slug
}
