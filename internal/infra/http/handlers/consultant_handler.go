package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/qrleads/internal/entity"
)

type ConsultantHandler struct {
	Repo entity.ConsultantRepository
}

func NewConsultantHandler(repo entity.ConsultantRepository) *ConsultantHandler {
	return &ConsultantHandler{Repo: repo}
}

type consultantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (h *ConsultantHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ConsultantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req consultantRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := entity.NewConsultant(req.Name, req.Email, req.Phone)
	if err != nil {
		writeError(w, r, repoError(err, "consultant"))
		return
	}
	if err := h.Repo.Create(r.Context(), c); err != nil {
		writeError(w, r, repoError(err, "consultant"))
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *ConsultantHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req consultantRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, repoError(err, "consultant"))
		return
	}
	c.Name = strings.TrimSpace(req.Name)
	c.Email = strings.TrimSpace(req.Email)
	c.Phone = strings.TrimSpace(req.Phone)
	if err := c.Validate(); err != nil {
		writeError(w, r, repoError(err, "consultant"))
		return
	}
	if err := h.Repo.Update(r.Context(), c); err != nil {
		writeError(w, r, repoError(err, "consultant"))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Delete refuses while vehicles still point at the consultant.
func (h *ConsultantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, repoError(err, "consultant"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
