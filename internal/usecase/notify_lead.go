package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/infra/queue"
)

var ErrQueueUnavailable = errors.New("notification queue unavailable")

// NotifyLeadUseCase resolves who should hear about a lead and publishes the
// notification. The vehicle's consultant wins over FallbackRecipient.
type NotifyLeadUseCase struct {
	Leads             entity.LeadRepository
	Campaigns         entity.CampaignRepository
	Pages             entity.LandingPageRepository
	Vehicles          entity.VehicleRepository
	Queue             QueueProducerInterface
	FallbackRecipient string
	Now               func() time.Time
}

func (uc *NotifyLeadUseCase) Notify(ctx context.Context, lead *entity.Lead) error {
	if uc.Queue == nil {
		return ErrQueueUnavailable
	}
	payload := uc.buildPayload(ctx, lead)

	if payload.To == "" {
		slog.Warn("no consultant e-mail for lead, notification skipped", "lead_id", lead.ID)
	} else if err := uc.Queue.PublishLeadNotification(ctx, payload); err != nil {
		return &TechnicalError{Code: CodeQueue, Message: "failed to publish lead notification", Err: err}
	}

	now := time.Now
	if uc.Now != nil {
		now = uc.Now
	}
	if err := uc.Leads.MarkNotificationQueued(ctx, lead.ID, now()); err != nil {
		return classify(err, CodeDatabase, "failed to mark lead notification")
	}
	return nil
}

func (uc *NotifyLeadUseCase) buildPayload(ctx context.Context, lead *entity.Lead) queue.LeadNotificationPayload {
	p := queue.LeadNotificationPayload{
		LeadID:   lead.ID,
		To:       uc.FallbackRecipient,
		Source:   lead.Source,
		Email:    lead.Email,
		Name:     lead.Name,
		Phone:    lead.Phone,
		Address:  lead.Address,
		Message:  lead.Message,
		Metadata: lead.Metadata,
	}

	// lookups opcionais: sem eles o e-mail sai com menos contexto
	if lead.CampaignID != nil {
		if c, err := uc.Campaigns.FindByID(ctx, *lead.CampaignID); err == nil {
			p.CampaignName = c.Name
		}
	}
	if lead.LandingPageID != nil {
		if page, err := uc.Pages.FindByID(ctx, *lead.LandingPageID); err == nil {
			p.LandingPageName = page.Name
		}
	}
	if lead.VehicleID != nil {
		if v, err := uc.Vehicles.FindByID(ctx, *lead.VehicleID); err == nil {
			p.VehicleName = v.DisplayName()
			if v.Consultant != nil && v.Consultant.Email != "" {
				p.To = v.Consultant.Email
				p.ConsultantName = v.Consultant.Name
			}
		}
	}
	return p
}
