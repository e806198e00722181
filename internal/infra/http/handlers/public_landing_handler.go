package handlers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/infra/cache"
	"github.com/xavierca1/qrleads/internal/infra/http/middleware"
	"github.com/xavierca1/qrleads/internal/landing"
	"github.com/xavierca1/qrleads/internal/util"
)

const notFoundPage = `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Page Not Found</title></head>` +
	`<body style="font-family:sans-serif;text-align:center;padding:4rem"><h1>Page Not Found</h1>` +
	`<p>This page is no longer available.</p></body></html>`

// PublicLandingHandler serves published landing pages and their forms.
type PublicLandingHandler struct {
	Pages    entity.LandingPageRepository
	Renderer *landing.Renderer
	Leads    landing.LeadSink
	Cache    cache.PageCache
}

func NewPublicLandingHandler(pages entity.LandingPageRepository, renderer *landing.Renderer, leads landing.LeadSink, pageCache cache.PageCache) *PublicLandingHandler {
	if pageCache == nil {
		pageCache = cache.NoopPageCache{}
	}
	return &PublicLandingHandler{Pages: pages, Renderer: renderer, Leads: leads, Cache: pageCache}
}

// Show handles GET /landing/{slug}. Only published pages are visible.
func (h *PublicLandingHandler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	if html, ok, err := h.Cache.Get(ctx, slug); err != nil {
		slog.Warn("page cache read failed", "slug", slug, "error", err)
	} else if ok {
		middleware.RecordPageView(slug, true)
		writeHTML(w, http.StatusOK, html)
		return
	}

	page, ok := h.published(w, r, slug)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.Renderer.Render(&buf, page.Content, renderContext(page), landing.RenderOptions{}); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Cache.Set(ctx, slug, buf.Bytes()); err != nil {
		slog.Warn("page cache write failed", "slug", slug, "error", err)
	}
	middleware.RecordPageView(slug, false)
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// Submit handles POST /landing/{slug}: one form submission, answered with
// the re-rendered page carrying the outcome.
func (h *PublicLandingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	page, ok := h.published(w, r, chi.URLParam(r, "slug"))
	if !ok {
		return
	}
	submitForm(w, r, h.Renderer, page.Content, renderContext(page), h.Leads, "", landing.SourceLandingPage)
}

func (h *PublicLandingHandler) published(w http.ResponseWriter, r *http.Request, slug string) (*entity.LandingPage, bool) {
	page, err := h.Pages.FindBySlug(r.Context(), slug)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		writeError(w, r, err)
		return nil, false
	}
	if err != nil || !page.IsPublished {
		writeHTML(w, http.StatusNotFound, []byte(notFoundPage))
		return nil, false
	}
	return page, true
}

// submitForm runs one form session for the posted form section and renders
// the page again with values, errors and notice for that form.
func submitForm(w http.ResponseWriter, r *http.Request, renderer *landing.Renderer, doc landing.Content, rc landing.RenderContext, sink landing.LeadSink, action, source string) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	formID, form, ok := findForm(doc, r.PostForm.Get("formId"))
	if !ok {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	notices := &landing.NoticeRecorder{}
	opts := landing.RenderOptions{FormID: formID, Action: action}

	// bots preenchem o campo escondido; respondemos como sucesso sem gravar
	if r.PostForm.Get(landing.HoneypotField) != "" {
		slog.Info("honeypot submission dropped", "landing_page_id", rc.LandingPageID, "ip", util.ClientIP(r))
		opts.Notice = &landing.Notice{Level: landing.NoticeSuccess, Message: landing.MsgLeadSent}
		renderPage(w, r, renderer, doc, rc, opts, http.StatusOK)
		return
	}

	session := landing.NewFormSession(form, rc, sink, notices)
	values := map[string]string{}
	for _, f := range form.Fields {
		values[f.Name] = r.PostForm.Get(f.Name)
	}
	session.Fill(values)

	status := http.StatusOK
	err := session.Submit(context.WithoutCancel(r.Context()))
	var verrs landing.ValidationErrors
	switch {
	case err == nil:
		middleware.RecordLeadCaptured(source)
	case errors.As(err, &verrs):
		status = http.StatusUnprocessableEntity
		opts.Errors = verrs.ByField()
	case isClientError(err):
		status = http.StatusBadRequest
	default:
		slog.Error("lead submission failed", "landing_page_id", rc.LandingPageID, "error", err)
		status = http.StatusInternalServerError
	}
	if status != http.StatusOK {
		opts.Values = session.Values()
	}
	opts.Notice = notices.Last
	renderPage(w, r, renderer, doc, rc, opts, status)
}

func findForm(doc landing.Content, formID string) (string, landing.FormContent, bool) {
	for _, s := range doc.Sections {
		form, ok := s.Content.(landing.FormContent)
		if !ok {
			continue
		}
		if formID == "" || s.ID == formID {
			return s.ID, form, true
		}
	}
	return "", landing.FormContent{}, false
}

func renderPage(w http.ResponseWriter, r *http.Request, renderer *landing.Renderer, doc landing.Content, rc landing.RenderContext, opts landing.RenderOptions, status int) {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, doc, rc, opts); err != nil {
		writeError(w, r, err)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

// isClientError reports sink failures caused by the submission itself, such
// as a landing page deleted while the visitor was filling the form.
func isClientError(err error) bool {
	status, _ := errorStatus(err)
	return status < http.StatusInternalServerError
}
