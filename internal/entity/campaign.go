package entity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Campaign struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CampaignSummary is a campaign with the counts shown in the admin list.
type CampaignSummary struct {
	Campaign
	QRCodes      int `json:"qrCodes"`
	LandingPages int `json:"landingPages"`
	Leads        int `json:"leads"`
}

type CampaignRepository interface {
	Create(ctx context.Context, c *Campaign) error
	FindByID(ctx context.Context, id string) (*Campaign, error)
	List(ctx context.Context) ([]CampaignSummary, error)
}

func NewCampaign(name, description string) (*Campaign, error) {
	now := time.Now()
	c := &Campaign{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if c.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	return c, nil
}
