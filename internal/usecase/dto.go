package usecase

import (
	"github.com/xavierca1/qrleads/internal/landing"
)

type CreateCampaignInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateLandingPageInput struct {
	CampaignID string           `json:"campaignId"`
	Name       string           `json:"name"`
	Slug       string           `json:"slug"`
	Template   string           `json:"template"`
	Content    *landing.Content `json:"content"`
}

type UpdateLandingPageInput struct {
	ID          string           `json:"-"`
	Name        *string          `json:"name"`
	Content     *landing.Content `json:"content"`
	IsPublished *bool            `json:"isPublished"`
}

type CaptureLeadInput struct {
	CampaignID    string            `json:"campaignId"`
	LandingPageID string            `json:"landingPageId"`
	VehicleID     string            `json:"vehicleId"`
	Email         string            `json:"email"`
	Name          string            `json:"name"`
	Phone         string            `json:"phone"`
	Address       string            `json:"address"`
	Message       string            `json:"message"`
	Source        string            `json:"source"`
	Metadata      map[string]string `json:"metadata"`
}

type VehicleInput struct {
	Year          int    `json:"year"`
	Make          string `json:"make"`
	Model         string `json:"model"`
	VehicleNumber string `json:"vehicleNumber"`
	ConsultantID  string `json:"consultantId"`
}

type CreateQRCodeInput struct {
	CampaignID      string `json:"campaignId"`
	Name            string `json:"name"`
	LandingPageSlug string `json:"landingPageSlug"`
	VehicleID       string `json:"vehicleId"`
}

// EditLandingPageInput drives one round of the editor: start from Content
// (or the stored document when nil), apply Actions, optionally save.
type EditLandingPageInput struct {
	PageID      string
	Content     *landing.Content
	IsPublished *bool
	Actions     []landing.Action
	Save        bool
}

type EditLandingPageOutput struct {
	Content     landing.Content   `json:"content"`
	IsPublished bool              `json:"isPublished"`
	PreviewHTML string            `json:"previewHtml"`
	Warnings    []landing.Warning `json:"warnings"`
	Notice      *landing.Notice   `json:"notice,omitempty"`
}
