package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/landing"
)

type UpdateLandingPageUseCase struct {
	Repo  entity.LandingPageRepository
	Cache PageCache
}

func NewUpdateLandingPageUseCase(repo entity.LandingPageRepository, cache PageCache) *UpdateLandingPageUseCase {
	return &UpdateLandingPageUseCase{Repo: repo, Cache: cache}
}

// Execute applies a partial update. Content, when present, replaces the
// whole document.
func (uc *UpdateLandingPageUseCase) Execute(ctx context.Context, input UpdateLandingPageInput) (*entity.LandingPage, error) {
	page, err := uc.Repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, classify(err, CodeDatabase, "landing page")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, validationFailed([]ValidationError{{"name", "is required"}})
		}
		page.Name = name
	}
	if input.Content != nil {
		page.Content = input.Content.Clone()
	}
	if input.IsPublished != nil {
		page.IsPublished = *input.IsPublished
	}

	if err := uc.Repo.Update(ctx, page); err != nil {
		return nil, classify(err, CodeDatabase, "failed to update landing page")
	}
	uc.invalidate(ctx, page.Slug)
	return page, nil
}

// SaveLandingPage is the editor's persistence boundary.
func (uc *UpdateLandingPageUseCase) SaveLandingPage(ctx context.Context, pageID string, content landing.Content, isPublished bool) error {
	page, err := uc.Repo.FindByID(ctx, pageID)
	if err != nil {
		return classify(err, CodeDatabase, "landing page")
	}
	if err := uc.Repo.SaveContent(ctx, pageID, content, isPublished); err != nil {
		return classify(err, CodeDatabase, "failed to save landing page")
	}
	uc.invalidate(ctx, page.Slug)
	slog.Info("landing page saved", "landing_page_id", pageID, "published", isPublished)
	return nil
}

func (uc *UpdateLandingPageUseCase) Delete(ctx context.Context, id string) error {
	page, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return classify(err, CodeDatabase, "landing page")
	}
	if err := uc.Repo.Delete(ctx, id); err != nil {
		return classify(err, CodeDatabase, "failed to delete landing page")
	}
	uc.invalidate(ctx, page.Slug)
	return nil
}

func (uc *UpdateLandingPageUseCase) invalidate(ctx context.Context, slug string) {
	if uc.Cache == nil {
		return
	}
	if err := uc.Cache.Invalidate(ctx, slug); err != nil {
		slog.Warn("page cache invalidation failed", "slug", slug, "error", err)
	}
}
