package entity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type QRCode struct {
	ID              string    `json:"id"`
	CampaignID      string    `json:"campaignId"`
	Name            string    `json:"name"`
	TargetURL       string    `json:"targetUrl"`
	LandingPageSlug string    `json:"landingPageSlug,omitempty"`
	VehicleID       *string   `json:"vehicleId,omitempty"`
	ImageDataURL    string    `json:"imageDataUrl"`
	Scans           int       `json:"scans"`
	CreatedAt       time.Time `json:"createdAt"`
}

type QRCodeRepository interface {
	Create(ctx context.Context, q *QRCode) error
	ListByCampaign(ctx context.Context, campaignID string) ([]QRCode, error)
	// IncrementScans bumps the counter and returns the new value.
	IncrementScans(ctx context.Context, id string) (int, error)
}

func NewQRCode(campaignID, name, targetURL, imageDataURL string) (*QRCode, error) {
	q := &QRCode{
		ID:           uuid.New().String(),
		CampaignID:   campaignID,
		Name:         strings.TrimSpace(name),
		TargetURL:    targetURL,
		ImageDataURL: imageDataURL,
		CreatedAt:    time.Now(),
	}
	if q.CampaignID == "" {
		return nil, fmt.Errorf("%w: campaignId is required", ErrValidation)
	}
	if q.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	return q, nil
}
