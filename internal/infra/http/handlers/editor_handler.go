package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/landing"
	"github.com/xavierca1/qrleads/internal/usecase"
)

const (
	actionUpdateSection = "updateSectionContent"
	actionUpdateTheme   = "updateTheme"
)

type EditorHandler struct {
	EditUC   *usecase.EditLandingPageUseCase
	Repo     entity.LandingPageRepository
	Renderer *landing.Renderer
}

func NewEditorHandler(uc *usecase.EditLandingPageUseCase, repo entity.LandingPageRepository, renderer *landing.Renderer) *EditorHandler {
	return &EditorHandler{EditUC: uc, Repo: repo, Renderer: renderer}
}

type editorAction struct {
	Type      string        `json:"type"`
	SectionID string        `json:"sectionId"`
	Patch     landing.Patch `json:"patch"`
}

type editorRequest struct {
	Content     *landing.Content `json:"content"`
	IsPublished *bool            `json:"isPublished"`
	Actions     []editorAction   `json:"actions"`
	Save        bool             `json:"save"`
}

type editorResponse struct {
	*usecase.EditLandingPageOutput
	Error string `json:"error,omitempty"`
}

func (a editorAction) toAction() (landing.Action, error) {
	switch a.Type {
	case actionUpdateSection:
		if a.SectionID == "" {
			return nil, fmt.Errorf("%s: sectionId is required", a.Type)
		}
		return landing.UpdateSectionContent{SectionID: a.SectionID, Patch: a.Patch}, nil
	case actionUpdateTheme:
		return landing.UpdateTheme{Patch: a.Patch}, nil
	}
	return nil, fmt.Errorf("unknown action %q", a.Type)
}

// Edit handles POST /api/landing-pages/{id}/editor: apply actions to the
// working document, optionally save, and return the new state with a
// preview. A failed save still returns the unsaved state.
func (h *EditorHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req editorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	input := usecase.EditLandingPageInput{
		PageID:      chi.URLParam(r, "id"),
		Content:     req.Content,
		IsPublished: req.IsPublished,
		Save:        req.Save,
	}
	for _, a := range req.Actions {
		action, err := a.toAction()
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidContent, err.Error())
			return
		}
		input.Actions = append(input.Actions, action)
	}

	out, err := h.EditUC.Execute(r.Context(), input)
	if err != nil && out == nil {
		writeError(w, r, err)
		return
	}
	if err != nil {
		status, body := errorStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("landing page save failed", "landing_page_id", input.PageID, "error", err)
		}
		writeJSON(w, status, editorResponse{EditLandingPageOutput: out, Error: body.Error})
		return
	}
	writeJSON(w, http.StatusOK, editorResponse{EditLandingPageOutput: out})
}

type editorSectionView struct {
	ID   string
	Type landing.SectionType
	JSON string
}

type editorPageView struct {
	Name        string
	Endpoint    string
	IsPublished bool
	Content     landing.Content
	Sections    []editorSectionView
	// documento completo, vai no srcdoc do iframe e é escapado como atributo
	Preview string
}

// Page handles GET /admin/landing-pages/{id}/edit.
func (h *EditorHandler) Page(w http.ResponseWriter, r *http.Request) {
	page, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		status, _ := errorStatus(repoError(err, "landing page"))
		http.Error(w, http.StatusText(status), status)
		return
	}

	preview, err := h.Renderer.RenderString(page.Content, renderContext(page), landing.RenderOptions{Preview: true})
	if err != nil {
		writeError(w, r, err)
		return
	}

	view := editorPageView{
		Name:        page.Name,
		Endpoint:    "/api/landing-pages/" + page.ID + "/editor",
		IsPublished: page.IsPublished,
		Content:     page.Content,
		Preview:     preview,
	}
	for _, s := range page.Content.Sections {
		raw, err := json.MarshalIndent(s.Content, "", "  ")
		if err != nil {
			writeError(w, r, err)
			return
		}
		view.Sections = append(view.Sections, editorSectionView{ID: s.ID, Type: s.Type, JSON: string(raw)})
	}
	renderView(w, http.StatusOK, "editor.html", view)
}

func renderContext(page *entity.LandingPage) landing.RenderContext {
	return landing.RenderContext{
		CampaignID:    page.CampaignID,
		LandingPageID: page.ID,
		Slug:          page.Slug,
		Title:         page.Name,
	}
}
