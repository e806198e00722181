package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/landing"
	"github.com/xavierca1/qrleads/internal/usecase"
)

type VehicleHandler struct {
	CreateUC *usecase.CreateVehicleUseCase
	UpdateUC *usecase.UpdateVehicleUseCase
	Repo     entity.VehicleRepository
	Renderer *landing.Renderer
	Leads    landing.LeadSink
}

func NewVehicleHandler(create *usecase.CreateVehicleUseCase, update *usecase.UpdateVehicleUseCase, repo entity.VehicleRepository, renderer *landing.Renderer, leads landing.LeadSink) *VehicleHandler {
	return &VehicleHandler{CreateUC: create, UpdateUC: update, Repo: repo, Renderer: renderer, Leads: leads}
}

// publicVehicle is what the unauthenticated vehicle page may see.
type publicVehicle struct {
	ID         string `json:"id"`
	Year       int    `json:"year"`
	Make       string `json:"make"`
	Model      string `json:"model"`
	Consultant struct {
		Name string `json:"name"`
	} `json:"consultant"`
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// Get handles the public GET /api/vehicles/{id}.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, repoError(err, "vehicle"))
		return
	}
	out := publicVehicle{ID: v.ID, Year: v.Year, Make: v.Make, Model: v.Model}
	if v.Consultant != nil {
		out.Consultant.Name = v.Consultant.Name
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.VehicleInput
	if !decodeJSON(w, r, &input) {
		return
	}
	v, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.VehicleInput
	if !decodeJSON(w, r, &input) {
		return
	}
	v, err := h.UpdateUC.Execute(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, repoError(err, "vehicle"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Page handles GET /vehicle/{id}, the page a vehicle QR code opens.
func (h *VehicleHandler) Page(w http.ResponseWriter, r *http.Request) {
	v, doc, rc, ok := h.vehiclePage(w, r)
	if !ok {
		return
	}
	renderPage(w, r, h.Renderer, doc, rc, landing.RenderOptions{Action: "/vehicle/" + v.ID}, http.StatusOK)
}

// Submit handles POST /vehicle/{id}.
func (h *VehicleHandler) Submit(w http.ResponseWriter, r *http.Request) {
	v, doc, rc, ok := h.vehiclePage(w, r)
	if !ok {
		return
	}
	sink := vehicleLeadSink{next: h.Leads, vehicleID: v.ID}
	submitForm(w, r, h.Renderer, doc, rc, sink, "/vehicle/"+v.ID, usecase.SourceVehicleQR)
}

func (h *VehicleHandler) vehiclePage(w http.ResponseWriter, r *http.Request) (*entity.Vehicle, landing.Content, landing.RenderContext, bool) {
	v, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			writeHTML(w, http.StatusNotFound, []byte(notFoundPage))
		} else {
			writeError(w, r, err)
		}
		return nil, landing.Content{}, landing.RenderContext{}, false
	}
	rc := landing.RenderContext{Title: v.DisplayName()}
	return v, usecase.VehiclePageContent(v), rc, true
}

// vehicleLeadSink tags form submissions with the vehicle they came from.
type vehicleLeadSink struct {
	next      landing.LeadSink
	vehicleID string
}

func (s vehicleLeadSink) CreateLead(ctx context.Context, payload landing.LeadPayload) error {
	fields := make(map[string]string, len(payload.Fields)+1)
	for k, v := range payload.Fields {
		fields[k] = v
	}
	fields["vehicleId"] = s.vehicleID
	payload.Fields = fields
	payload.Source = usecase.SourceVehicleQR
	return s.next.CreateLead(ctx, payload)
}
