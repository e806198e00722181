package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/landing"
)

const (
	SourceDirect    = "direct"
	SourceVehicleQR = "vehicle_qr"
)

type CaptureLeadUseCase struct {
	Repo      entity.LeadRepository
	Campaigns entity.CampaignRepository
	Pages     entity.LandingPageRepository
	Vehicles  entity.VehicleRepository
	Notifier  LeadNotifier
	Mapping   LeadMapping
}

func NewCaptureLeadUseCase(
	repo entity.LeadRepository,
	campaigns entity.CampaignRepository,
	pages entity.LandingPageRepository,
	vehicles entity.VehicleRepository,
	notifier LeadNotifier,
) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{
		Repo:      repo,
		Campaigns: campaigns,
		Pages:     pages,
		Vehicles:  vehicles,
		Notifier:  notifier,
	}
}

// Execute stores a lead and hands it to the notifier. A notification failure
// does not fail the capture; the sweeper picks the lead up later.
func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CaptureLeadInput) (*entity.Lead, error) {
	input.Email = strings.TrimSpace(input.Email)
	if errs := ValidateLeadInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	if input.LandingPageID != "" {
		page, err := uc.Pages.FindByID(ctx, input.LandingPageID)
		if err != nil {
			return nil, classify(err, CodeDatabase, "landing page")
		}
		// a campanha vem sempre da página
		input.CampaignID = page.CampaignID
	} else if input.CampaignID != "" {
		if _, err := uc.Campaigns.FindByID(ctx, input.CampaignID); err != nil {
			return nil, classify(err, CodeDatabase, "campaign")
		}
	}
	if input.VehicleID != "" {
		if _, err := uc.Vehicles.FindByID(ctx, input.VehicleID); err != nil {
			return nil, classify(err, CodeDatabase, "vehicle")
		}
	}

	source := input.Source
	if source == "" {
		source = SourceDirect
		if input.VehicleID != "" {
			source = SourceVehicleQR
		}
	}

	lead := entity.NewLead(input.Email, source)
	lead.CampaignID = optional(input.CampaignID)
	lead.LandingPageID = optional(input.LandingPageID)
	lead.VehicleID = optional(input.VehicleID)
	lead.Name = input.Name
	lead.Phone = input.Phone
	lead.Address = input.Address
	lead.Message = input.Message
	for k, v := range input.Metadata {
		lead.Metadata[k] = v
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, classify(err, CodeDatabase, "failed to create lead")
	}
	slog.Info("lead captured", "lead_id", lead.ID, "source", lead.Source)

	if uc.Notifier != nil {
		if err := uc.Notifier.Notify(ctx, lead); err != nil {
			slog.Warn("lead notification deferred", "lead_id", lead.ID, "error", err)
		}
	}
	return lead, nil
}

// CreateLead lets a landing page form submit straight into the use case.
func (uc *CaptureLeadUseCase) CreateLead(ctx context.Context, payload landing.LeadPayload) error {
	_, err := uc.Execute(ctx, uc.Mapping.FromFields(payload.Flatten()))
	return err
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
