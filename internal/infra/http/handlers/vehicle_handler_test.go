package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/landing"
	"github.com/xavierca1/qrleads/internal/usecase"
)

func testVehicle() *entity.Vehicle {
	return &entity.Vehicle{
		ID:            "veh-1",
		Year:          2021,
		Make:          "Ford",
		Model:         "Transit",
		VehicleNumber: "V-07",
		ConsultantID:  "con-1",
		Consultant:    &entity.Consultant{ID: "con-1", Name: "Maria", Email: "maria@example.com", Phone: "555-0100"},
	}
}

func vehicleRouter(repo *MockVehicleRepository, sink landing.LeadSink) http.Handler {
	h := NewVehicleHandler(nil, nil, repo, landing.MustNewRenderer(), sink)
	r := chi.NewRouter()
	r.Get("/api/vehicles/{id}", h.Get)
	r.Delete("/api/vehicles/{id}", h.Delete)
	r.Get("/vehicle/{id}", h.Page)
	r.Post("/vehicle/{id}", h.Submit)
	return r
}

func TestPublicVehicleHidesConsultantContact(t *testing.T) {
	repo := new(MockVehicleRepository)
	repo.On("FindByID", mock.Anything, "veh-1").Return(testVehicle(), nil)

	rec := httptest.NewRecorder()
	vehicleRouter(repo, &recordingSink{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/vehicles/veh-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Ford", body["make"])
	assert.Equal(t, map[string]any{"name": "Maria"}, body["consultant"])
	assert.NotContains(t, rec.Body.String(), "maria@example.com")
	assert.NotContains(t, rec.Body.String(), "555-0100")
}

func TestVehicleNotFound(t *testing.T) {
	repo := new(MockVehicleRepository)
	repo.On("FindByID", mock.Anything, "gone").Return(nil, entity.ErrNotFound)
	repo.On("Delete", mock.Anything, "gone").Return(entity.ErrNotFound)
	router := vehicleRouter(repo, &recordingSink{})

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/vehicles/gone", nil),
		httptest.NewRequest(http.MethodDelete, "/api/vehicles/gone", nil),
		httptest.NewRequest(http.MethodGet, "/vehicle/gone", nil),
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, req.Method+" "+req.URL.Path)
	}
}

func TestVehiclePage(t *testing.T) {
	repo := new(MockVehicleRepository)
	repo.On("FindByID", mock.Anything, "veh-1").Return(testVehicle(), nil)

	rec := httptest.NewRecorder()
	vehicleRouter(repo, &recordingSink{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vehicle/veh-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>2021 Ford Transit</title>")
	assert.Contains(t, body, "Maria")
	assert.Contains(t, body, `action="/vehicle/veh-1"`)
}

func TestVehicleSubmitTagsLead(t *testing.T) {
	repo := new(MockVehicleRepository)
	repo.On("FindByID", mock.Anything, "veh-1").Return(testVehicle(), nil)
	sink := &recordingSink{}

	form := url.Values{
		"formId":      {usecase.VehicleFormID},
		"name":        {"Ann Lee"},
		"address":     {"1 Main St"},
		"phone":       {"555-0199"},
		"email":       {"ann@example.com"},
		"windowCount": {"5-10"},
		"vehicleId":   {"forged"},
	}
	req := httptest.NewRequest(http.MethodPost, "/vehicle/veh-1", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	vehicleRouter(repo, sink).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thank you!")
	require.Len(t, sink.payloads, 1)
	p := sink.payloads[0]
	assert.Equal(t, usecase.SourceVehicleQR, p.Source)
	assert.Equal(t, "veh-1", p.Fields["vehicleId"])
	assert.Equal(t, "5-10", p.Fields["windowCount"])
}
