package main

import (
	"context"
	"log/slog"

	"github.com/xavierca1/qrleads/internal/infra/http/middleware"
	"github.com/xavierca1/qrleads/internal/infra/integration/kommo"
	"github.com/xavierca1/qrleads/internal/infra/queue"
)

// meteredMailer counts notification outcomes.
type meteredMailer struct {
	next queue.LeadMailer
}

func (m meteredMailer) SendLeadNotification(ctx context.Context, p queue.LeadNotificationPayload) error {
	if err := m.next.SendLeadNotification(ctx, p); err != nil {
		middleware.RecordNotification("failed")
		return err
	}
	middleware.RecordNotification("sent")
	return nil
}

// crmExporter copies each notified lead into Kommo once the consultant
// e-mail went out. CRM failures are logged and never requeue the message.
type crmExporter struct {
	next queue.LeadMailer
	crm  *kommo.Client
}

func (c crmExporter) SendLeadNotification(ctx context.Context, p queue.LeadNotificationPayload) error {
	if err := c.next.SendLeadNotification(ctx, p); err != nil {
		return err
	}
	_, err := c.crm.CreateLead(ctx, kommo.LeadInput{
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		Source:  p.Source,
		Title:   crmTitle(p),
		Details: crmDetails(p),
	})
	if err != nil {
		slog.Warn("kommo export failed", "lead_id", p.LeadID, "error", err)
	}
	return nil
}

func crmTitle(p queue.LeadNotificationPayload) string {
	who := p.Name
	if who == "" {
		who = p.Email
	}
	switch {
	case p.VehicleName != "":
		return p.VehicleName + ": " + who
	case p.CampaignName != "":
		return p.CampaignName + ": " + who
	}
	return who
}

func crmDetails(p queue.LeadNotificationPayload) map[string]string {
	details := map[string]string{
		"address":     p.Address,
		"message":     p.Message,
		"landingPage": p.LandingPageName,
		"consultant":  p.ConsultantName,
	}
	for k, v := range p.Metadata {
		details[k] = v
	}
	return details
}
