package entity

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/qrleads/internal/landing"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

type LandingPage struct {
	ID          string          `json:"id"`
	CampaignID  string          `json:"campaignId"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Content     landing.Content `json:"content"`
	IsPublished bool            `json:"isPublished"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type LandingPageRepository interface {
	Create(ctx context.Context, p *LandingPage) error
	FindByID(ctx context.Context, id string) (*LandingPage, error)
	FindBySlug(ctx context.Context, slug string) (*LandingPage, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]LandingPage, error)
	Update(ctx context.Context, p *LandingPage) error
	// SaveContent replaces the document and the published flag in one write.
	SaveContent(ctx context.Context, id string, content landing.Content, isPublished bool) error
	Delete(ctx context.Context, id string) error
}

func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

// NewLandingPage builds an unpublished page.
func NewLandingPage(campaignID, name, slug string, content landing.Content) (*LandingPage, error) {
	now := time.Now()
	p := &LandingPage{
		ID:         uuid.New().String(),
		CampaignID: campaignID,
		Name:       strings.TrimSpace(name),
		Slug:       slug,
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *LandingPage) Validate() error {
	if p.CampaignID == "" {
		return fmt.Errorf("%w: campaignId is required", ErrValidation)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !ValidSlug(p.Slug) {
		return fmt.Errorf("%w: slug must contain only lowercase letters, numbers, and hyphens", ErrValidation)
	}
	return nil
}
