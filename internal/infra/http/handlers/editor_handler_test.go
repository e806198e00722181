package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/qrleads/internal/landing"
	"github.com/xavierca1/qrleads/internal/usecase"
)

type saverFunc func(ctx context.Context, pageID string, content landing.Content, isPublished bool) error

func (f saverFunc) SaveLandingPage(ctx context.Context, pageID string, content landing.Content, isPublished bool) error {
	return f(ctx, pageID, content, isPublished)
}

type editorState struct {
	Content     landing.Content `json:"content"`
	IsPublished bool            `json:"isPublished"`
	PreviewHTML string          `json:"previewHtml"`
	Notice      *landing.Notice `json:"notice"`
	Error       string          `json:"error"`
}

func editorRouter(t *testing.T, saver landing.PageSaver) http.Handler {
	t.Helper()
	repo := new(MockLandingPageRepository)
	page := publishedPage(t)
	page.IsPublished = false
	repo.On("FindByID", mock.Anything, "lp-1").Return(page, nil)

	renderer := landing.MustNewRenderer()
	h := NewEditorHandler(usecase.NewEditLandingPageUseCase(repo, saver, renderer), repo, renderer)
	r := chi.NewRouter()
	r.Post("/api/landing-pages/{id}/editor", h.Edit)
	r.Get("/admin/landing-pages/{id}/edit", h.Page)
	return r
}

func postEditor(h http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/landing-pages/lp-1/editor", strings.NewReader(body)))
	return rec
}

func TestEditorAppliesActionsAndSaves(t *testing.T) {
	var saved landing.Content
	var savedPublished bool
	saver := saverFunc(func(_ context.Context, _ string, content landing.Content, published bool) error {
		saved, savedPublished = content, published
		return nil
	})

	rec := postEditor(editorRouter(t, saver), `{
		"isPublished": true,
		"save": true,
		"actions": [
			{"type":"updateSectionContent","sectionId":"hero-minimal","patch":{"title":"Fresh Start"}},
			{"type":"updateTheme","patch":{"primaryColor":"#112233"}}
		]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var state editorState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.True(t, state.IsPublished)
	assert.Equal(t, "#112233", state.Content.Theme.PrimaryColor)
	assert.Contains(t, state.PreviewHTML, "Fresh Start")
	require.NotNil(t, state.Notice)
	assert.Equal(t, landing.NoticeSuccess, state.Notice.Level)

	assert.True(t, savedPublished)
	hero, ok := saved.Sections[0].Content.(landing.HeroContent)
	require.True(t, ok)
	assert.Equal(t, "Fresh Start", hero.Title)
}

func TestEditorFailedSaveKeepsState(t *testing.T) {
	saver := saverFunc(func(context.Context, string, landing.Content, bool) error {
		return errors.New("connection reset")
	})

	rec := postEditor(editorRouter(t, saver), `{
		"save": true,
		"actions": [{"type":"updateSectionContent","sectionId":"hero-minimal","patch":{"title":"Unsaved"}}]
	}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var state editorState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "Internal server error", state.Error)
	assert.Contains(t, state.PreviewHTML, "Unsaved")
	require.NotNil(t, state.Notice)
	assert.Equal(t, landing.NoticeError, state.Notice.Level)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestEditorWithoutSaveDoesNotPersist(t *testing.T) {
	saver := saverFunc(func(context.Context, string, landing.Content, bool) error {
		t.Fatal("save must not be called")
		return nil
	})

	rec := postEditor(editorRouter(t, saver), `{"actions":[{"type":"updateTheme","patch":{"fontFamily":"Georgia, serif"}}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var state editorState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "Georgia, serif", state.Content.Theme.FontFamily)
	assert.Nil(t, state.Notice)
}

func TestEditorRejectsBadActions(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown type", body: `{"actions":[{"type":"deleteSection","sectionId":"hero-minimal"}]}`},
		{name: "missing section id", body: `{"actions":[{"type":"updateSectionContent","patch":{"title":"x"}}]}`},
		{name: "wrong field type", body: `{"actions":[{"type":"updateSectionContent","sectionId":"hero-minimal","patch":{"title":42}}]}`},
		{name: "undefined key", body: `{"actions":[{"type":"updateSectionContent","sectionId":"hero-minimal","patch":{"ctaText":"Go"}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postEditor(editorRouter(t, saverFunc(func(context.Context, string, landing.Content, bool) error { return nil })), tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestEditorPage(t *testing.T) {
	rec := httptest.NewRecorder()
	editorRouter(t, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/landing-pages/lp-1/edit", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "/api/landing-pages/lp-1/editor")
	assert.Contains(t, body, "hero-minimal")

	// o preview fica isolado num iframe, com o html escapado no srcdoc
	assert.Contains(t, body, `<iframe id="preview"`)
	assert.Contains(t, body, "&lt;!DOCTYPE html&gt;")
	assert.Contains(t, body, "class=&#34;lp-preview&#34;")
	assert.NotContains(t, body, `<div class="lp-preview">`)
	assert.Equal(t, 1, strings.Count(strings.ToLower(body), "<!doctype html>"))
}
