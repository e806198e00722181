package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/landing"
	"github.com/xavierca1/qrleads/internal/usecase"
)

type LandingPageHandler struct {
	CreateUC *usecase.CreateLandingPageUseCase
	UpdateUC *usecase.UpdateLandingPageUseCase
	Repo     entity.LandingPageRepository
}

func NewLandingPageHandler(create *usecase.CreateLandingPageUseCase, update *usecase.UpdateLandingPageUseCase, repo entity.LandingPageRepository) *LandingPageHandler {
	return &LandingPageHandler{CreateUC: create, UpdateUC: update, Repo: repo}
}

func (h *LandingPageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLandingPageInput
	if !decodeJSON(w, r, &input) {
		return
	}
	page, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, page)
}

// List handles GET /api/landing-pages?campaignId=.
func (h *LandingPageHandler) List(w http.ResponseWriter, r *http.Request) {
	pages, err := h.Repo.ListByCampaign(r.Context(), r.URL.Query().Get("campaignId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pages)
}

func (h *LandingPageHandler) Get(w http.ResponseWriter, r *http.Request) {
	page, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, repoError(err, "landing page"))
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *LandingPageHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateLandingPageInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.ID = chi.URLParam(r, "id")
	page, err := h.UpdateUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *LandingPageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.UpdateUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Templates lists the seed documents a page can start from.
func (h *LandingPageHandler) Templates(w http.ResponseWriter, r *http.Request) {
	out := map[string]landing.Content{}
	for _, name := range landing.TemplateNames() {
		doc, err := landing.GetTemplate(name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		out[name] = doc
	}
	writeJSON(w, http.StatusOK, out)
}
