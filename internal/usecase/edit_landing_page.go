package usecase

import (
	"context"

	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/landing"
)

// EditLandingPageUseCase backs the editor screen. The browser keeps the
// working document and sends it with each round of actions.
type EditLandingPageUseCase struct {
	Repo     entity.LandingPageRepository
	Saver    landing.PageSaver
	Renderer *landing.Renderer
}

func NewEditLandingPageUseCase(repo entity.LandingPageRepository, saver landing.PageSaver, renderer *landing.Renderer) *EditLandingPageUseCase {
	return &EditLandingPageUseCase{Repo: repo, Saver: saver, Renderer: renderer}
}

// Execute returns the editor state even when saving fails; the error then
// carries the save failure.
func (uc *EditLandingPageUseCase) Execute(ctx context.Context, input EditLandingPageInput) (*EditLandingPageOutput, error) {
	page, err := uc.Repo.FindByID(ctx, input.PageID)
	if err != nil {
		return nil, classify(err, CodeDatabase, "landing page")
	}

	content := page.Content
	if input.Content != nil {
		content = *input.Content
	}
	published := page.IsPublished
	if input.IsPublished != nil {
		published = *input.IsPublished
	}

	notices := &landing.NoticeRecorder{}
	editor := landing.NewEditor(page.ID, content, published, uc.Saver, notices, uc.Renderer)
	for _, action := range input.Actions {
		if err := editor.Dispatch(action); err != nil {
			return nil, classify(err, CodeInvalidContent, "invalid editor action")
		}
	}

	out := &EditLandingPageOutput{
		Warnings: landing.Validate(editor.Content()),
	}
	// falha no save ainda devolve o estado do editor junto com o aviso
	var saveErr error
	if input.Save {
		res, err := editor.Save(ctx)
		out.Warnings = res.Warnings
		if err != nil {
			saveErr = classify(err, CodeDatabase, "failed to save landing page")
		}
	}
	out.Notice = notices.Last
	out.Content = editor.Content()
	out.IsPublished = editor.IsPublished()

	preview, err := uc.Renderer.RenderString(out.Content, landing.RenderContext{
		CampaignID:    page.CampaignID,
		LandingPageID: page.ID,
		Slug:          page.Slug,
		Title:         page.Name,
	}, landing.RenderOptions{Preview: true})
	if err != nil {
		return nil, &TechnicalError{Code: "RENDER_ERROR", Message: "failed to render preview", Err: err}
	}
	out.PreviewHTML = preview
	return out, saveErr
}
