package usecase

import (
	"context"
	"log/slog"

	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/landing"
	"github.com/xavierca1/qrleads/internal/util"
)

type CreateLandingPageUseCase struct {
	Repo      entity.LandingPageRepository
	Campaigns entity.CampaignRepository
}

func NewCreateLandingPageUseCase(repo entity.LandingPageRepository, campaigns entity.CampaignRepository) *CreateLandingPageUseCase {
	return &CreateLandingPageUseCase{Repo: repo, Campaigns: campaigns}
}

// Execute creates an unpublished page. Content comes from input.Content when
// given, otherwise from the named template (default when blank).
func (uc *CreateLandingPageUseCase) Execute(ctx context.Context, input CreateLandingPageInput) (*entity.LandingPage, error) {
	if input.Slug == "" {
		input.Slug = util.Slugify(input.Name)
	}
	if errs := ValidateCreateLandingPageInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}
	if input.Slug == "" {
		return nil, validationFailed([]ValidationError{{"slug", "could not be derived from name"}})
	}

	if _, err := uc.Campaigns.FindByID(ctx, input.CampaignID); err != nil {
		return nil, classify(err, CodeDatabase, "campaign")
	}

	var content landing.Content
	if input.Content != nil {
		content = input.Content.Clone()
	} else {
		name := input.Template
		if name == "" {
			name = landing.DefaultTemplate
		}
		tmpl, err := landing.GetTemplate(name)
		if err != nil {
			return nil, classify(err, CodeUnknownTemplate, "template")
		}
		content = tmpl
	}

	page, err := entity.NewLandingPage(input.CampaignID, input.Name, input.Slug, content)
	if err != nil {
		return nil, classify(err, CodeValidation, "landing page")
	}
	if err := uc.Repo.Create(ctx, page); err != nil {
		return nil, classify(err, CodeDatabase, "failed to create landing page")
	}

	slog.Info("landing page created", "landing_page_id", page.ID, "slug", page.Slug, "warnings", len(landing.Validate(content)))
	return page, nil
}
