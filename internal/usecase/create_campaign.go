package usecase

import (
	"context"
	"log/slog"

	"github.com/xavierca1/qrleads/internal/entity"
)

type CreateCampaignUseCase struct {
	Repo entity.CampaignRepository
}

func NewCreateCampaignUseCase(repo entity.CampaignRepository) *CreateCampaignUseCase {
	return &CreateCampaignUseCase{Repo: repo}
}

func (uc *CreateCampaignUseCase) Execute(ctx context.Context, input CreateCampaignInput) (*entity.Campaign, error) {
	campaign, err := entity.NewCampaign(input.Name, input.Description)
	if err != nil {
		return nil, validationFailed([]ValidationError{{"name", "is required"}})
	}
	if err := uc.Repo.Create(ctx, campaign); err != nil {
		return nil, classify(err, CodeDatabase, "failed to create campaign")
	}
	slog.Info("campaign created", "campaign_id", campaign.ID)
	return campaign, nil
}
