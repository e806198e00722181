package handlers

import (
	"net/http"

	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/infra/http/middleware"
	"github.com/xavierca1/qrleads/internal/usecase"
)

type LeadHandler struct {
	CaptureUC *usecase.CaptureLeadUseCase
	Repo      entity.LeadRepository
}

func NewLeadHandler(uc *usecase.CaptureLeadUseCase, repo entity.LeadRepository) *LeadHandler {
	return &LeadHandler{CaptureUC: uc, Repo: repo}
}

type CaptureLeadResponse struct {
	Success bool         `json:"success"`
	Lead    *entity.Lead `json:"lead,omitempty"`
}

// CaptureLead handles the public POST /api/leads. The body is one flat JSON
// object; keys that are not lead columns are kept as metadata.
func (h *LeadHandler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if !decodeJSON(w, r, &body) {
		return
	}
	if body == nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}

	lead, err := h.CaptureUC.Execute(r.Context(), h.CaptureUC.Mapping.FromJSON(body))
	if err != nil {
		writeError(w, r, err)
		return
	}
	middleware.RecordLeadCaptured(lead.Source)
	writeJSON(w, http.StatusCreated, CaptureLeadResponse{Success: true, Lead: lead})
}

// List handles GET /api/leads?campaignId=, newest first.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Repo.List(r.Context(), r.URL.Query().Get("campaignId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}
