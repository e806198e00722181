package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/usecase"
)

type QRCodeHandler struct {
	CreateUC *usecase.CreateQRCodeUseCase
	Repo     entity.QRCodeRepository
}

func NewQRCodeHandler(uc *usecase.CreateQRCodeUseCase, repo entity.QRCodeRepository) *QRCodeHandler {
	return &QRCodeHandler{CreateUC: uc, Repo: repo}
}

func (h *QRCodeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateQRCodeInput
	if !decodeJSON(w, r, &input) {
		return
	}
	qr, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, qr)
}

// List handles GET /api/qr?campaignId=.
func (h *QRCodeHandler) List(w http.ResponseWriter, r *http.Request) {
	codes, err := h.Repo.ListByCampaign(r.Context(), r.URL.Query().Get("campaignId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, codes)
}

// Scan handles the public POST /api/qr/{id}/scan.
func (h *QRCodeHandler) Scan(w http.ResponseWriter, r *http.Request) {
	scans, err := h.Repo.IncrementScans(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, repoError(err, "qr code"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "scans": scans})
}
