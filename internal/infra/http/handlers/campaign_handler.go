package handlers

import (
	"net/http"

	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/usecase"
)

type CampaignHandler struct {
	CreateUC *usecase.CreateCampaignUseCase
	Repo     entity.CampaignRepository
}

func NewCampaignHandler(uc *usecase.CreateCampaignUseCase, repo entity.CampaignRepository) *CampaignHandler {
	return &CampaignHandler{CreateUC: uc, Repo: repo}
}

func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateCampaignInput
	if !decodeJSON(w, r, &input) {
		return
	}
	campaign, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, campaign)
}

// List returns every campaign with its QR code, landing page and lead counts.
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}
