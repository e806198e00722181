package entity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Lead struct {
	ID            string            `json:"id"`
	CampaignID    *string           `json:"campaignId,omitempty"`
	LandingPageID *string           `json:"landingPageId,omitempty"`
	VehicleID     *string           `json:"vehicleId,omitempty"`
	Email         string            `json:"email"`
	Name          string            `json:"name,omitempty"`
	Phone         string            `json:"phone,omitempty"`
	Address       string            `json:"address,omitempty"`
	Message       string            `json:"message,omitempty"`
	Source        string            `json:"source"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	// NotificationQueuedAt is set once the consultant e-mail was handed to the queue.
	NotificationQueuedAt *time.Time `json:"notificationQueuedAt,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
}

type LeadRepository interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, campaignID string) ([]Lead, error)
	MarkNotificationQueued(ctx context.Context, id string, at time.Time) error
	// ListUnnotified returns leads older than olderThan that never reached the queue.
	ListUnnotified(ctx context.Context, olderThan time.Time, limit int) ([]Lead, error)
}

func NewLead(email, source string) *Lead {
	return &Lead{
		ID:        uuid.New().String(),
		Email:     email,
		Source:    source,
		Metadata:  map[string]string{},
		CreatedAt: time.Now(),
	}
}

func (l *Lead) Validate() error {
	if l.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if l.CampaignID == nil && l.LandingPageID == nil && l.VehicleID == nil {
		return fmt.Errorf("%w: a lead must reference a campaign, landing page or vehicle", ErrValidation)
	}
	return nil
}
