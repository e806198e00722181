package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/xavierca1/qrleads/internal/auth"
	"github.com/xavierca1/qrleads/internal/config"
	"github.com/xavierca1/qrleads/internal/infra/http/handlers"
	"github.com/xavierca1/qrleads/internal/infra/http/middleware"
)

type routeHandlers struct {
	auth        *handlers.AuthHandler
	dashboard   *handlers.DashboardHandler
	campaigns   *handlers.CampaignHandler
	pages       *handlers.LandingPageHandler
	editor      *handlers.EditorHandler
	public      *handlers.PublicLandingHandler
	leads       *handlers.LeadHandler
	consultants *handlers.ConsultantHandler
	vehicles    *handlers.VehicleHandler
	qr          *handlers.QRCodeHandler
	health      *handlers.HealthHandler
}

func newRouter(cfg *config.Config, tokens *auth.Tokens, limiter *middleware.RateLimiter, h routeHandlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RealIP(cfg.Proxies()))
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	requireAdmin := middleware.RequireAdmin(tokens)

	// Públicas
	r.Get("/health", h.health.Handle)
	r.Handle("/metrics", middleware.MetricsHandler())
	r.Get("/landing/{slug}", h.public.Show)
	r.With(limiter.Middleware).Post("/landing/{slug}", h.public.Submit)
	r.Get("/vehicle/{id}", h.vehicles.Page)
	r.With(limiter.Middleware).Post("/vehicle/{id}", h.vehicles.Submit)
	r.Get("/admin/login", h.auth.LoginPage)
	r.With(limiter.Middleware).Post("/admin/login", h.auth.LoginForm)

	r.Route("/api", func(r chi.Router) {
		r.With(limiter.Middleware).Post("/auth/login", h.auth.Login)
		r.Post("/auth/logout", h.auth.Logout)
		r.With(limiter.Middleware).Post("/leads", h.leads.CaptureLead)
		r.Post("/qr/{id}/scan", h.qr.Scan)
		r.Get("/vehicles/{id}", h.vehicles.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/auth/me", h.auth.Me)

			r.Get("/campaigns", h.campaigns.List)
			r.Post("/campaigns", h.campaigns.Create)

			r.Get("/landing-pages", h.pages.List)
			r.Post("/landing-pages", h.pages.Create)
			r.Get("/landing-pages/templates", h.pages.Templates)
			r.Get("/landing-pages/{id}", h.pages.Get)
			r.Put("/landing-pages/{id}", h.pages.Update)
			r.Patch("/landing-pages/{id}", h.pages.Update)
			r.Delete("/landing-pages/{id}", h.pages.Delete)
			r.Post("/landing-pages/{id}/editor", h.editor.Edit)

			r.Get("/leads", h.leads.List)

			r.Get("/consultants", h.consultants.List)
			r.Post("/consultants", h.consultants.Create)
			r.Put("/consultants/{id}", h.consultants.Update)
			r.Delete("/consultants/{id}", h.consultants.Delete)

			r.Get("/vehicles", h.vehicles.List)
			r.Post("/vehicles", h.vehicles.Create)
			r.Put("/vehicles/{id}", h.vehicles.Update)
			r.Delete("/vehicles/{id}", h.vehicles.Delete)

			r.Get("/qr", h.qr.List)
			r.Post("/qr", h.qr.Create)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/admin", http.StatusFound)
		})
		r.Get("/admin", h.dashboard.Handle)
		r.Get("/admin/landing-pages/{id}/edit", h.editor.Page)
	})

	return r
}
