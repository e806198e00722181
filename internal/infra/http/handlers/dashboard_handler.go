package handlers

import (
	"net/http"

	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/infra/http/middleware"
)

type DashboardHandler struct {
	Campaigns entity.CampaignRepository
	Pages     entity.LandingPageRepository
}

func NewDashboardHandler(campaigns entity.CampaignRepository, pages entity.LandingPageRepository) *DashboardHandler {
	return &DashboardHandler{Campaigns: campaigns, Pages: pages}
}

type dashboardView struct {
	Email     string
	Campaigns []entity.CampaignSummary
	Pages     []entity.LandingPage
}

func (h *DashboardHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	campaigns, err := h.Campaigns.List(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	pages, err := h.Pages.ListByCampaign(ctx, "")
	if err != nil {
		writeError(w, r, err)
		return
	}
	view := dashboardView{Campaigns: campaigns, Pages: pages}
	if claims, ok := middleware.ClaimsFromContext(ctx); ok {
		view.Email = claims.Email
	}
	renderView(w, http.StatusOK, "dashboard.html", view)
}
