package landing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrInvalidPatch = errors.New("invalid patch")

// Patch is a shallow set of field overrides keyed by JSON field name.
type Patch map[string]any

// Action is a single editor mutation.
type Action interface {
	apply(Content) (Content, error)
}

// UpdateSectionContent merges Patch into the content of the section with
// SectionID. Keys absent from the patch keep their value. A key the section
// type does not define is rejected with ErrInvalidPatch. An unknown id
// leaves the document unchanged.
type UpdateSectionContent struct {
	SectionID string
	Patch     Patch
}

// UpdateTheme merges Patch into the theme.
type UpdateTheme struct {
	Patch Patch
}

func (a UpdateSectionContent) apply(doc Content) (Content, error) {
	idx := doc.FindSection(a.SectionID)
	if idx < 0 {
		return doc, nil
	}
	section := doc.Sections[idx]
	merged, err := mergeJSON(section.Content, a.Patch)
	if err != nil {
		return doc, err
	}
	content, err := decodeSection(section.Type, merged, true)
	if err != nil {
		return doc, fmt.Errorf("%w: section %q: %v", ErrInvalidPatch, a.SectionID, err)
	}
	doc.Sections[idx].Content = content
	return doc, nil
}

func (a UpdateTheme) apply(doc Content) (Content, error) {
	merged, err := mergeJSON(doc.Theme, a.Patch)
	if err != nil {
		return doc, err
	}
	var theme Theme
	if err := decodeJSON(merged, true, &theme); err != nil {
		return doc, fmt.Errorf("%w: theme: %v", ErrInvalidPatch, err)
	}
	doc.Theme = theme
	return doc, nil
}

// Apply returns the document that results from running action on doc. The
// input document is never modified.
func Apply(doc Content, action Action) (Content, error) {
	next, err := action.apply(doc.Clone())
	if err != nil {
		return doc, err
	}
	return next, nil
}

func mergeJSON(base any, patch Patch) (json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if base != nil {
		raw, err := json.Marshal(base)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
		if fields == nil {
			fields = map[string]json.RawMessage{}
		}
	}
	for k, v := range patch {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPatch, k, err)
		}
		fields[k] = raw
	}
	return json.Marshal(fields)
}

// PageSaver persists the full editor state of one landing page.
type PageSaver interface {
	SaveLandingPage(ctx context.Context, pageID string, content Content, isPublished bool) error
}

// SaveResult carries the non-blocking warnings found at save time.
type SaveResult struct {
	Warnings []Warning `json:"warnings"`
}

const (
	msgSaved      = "Landing page saved successfully!"
	msgSaveFailed = "Failed to save changes"
)

// Editor holds one landing page document being edited. Mutations stay in
// memory until Save. Save calls are not serialized; every save carries the
// whole document, so the last write wins.
type Editor struct {
	pageID    string
	content   Content
	published bool
	saver     PageSaver
	notifier  Notifier
	renderer  *Renderer
}

func NewEditor(pageID string, content Content, isPublished bool, saver PageSaver, notifier Notifier, renderer *Renderer) *Editor {
	if notifier == nil {
		notifier = discardNotifier{}
	}
	return &Editor{
		pageID:    pageID,
		content:   content.Clone(),
		published: isPublished,
		saver:     saver,
		notifier:  notifier,
		renderer:  renderer,
	}
}

func (e *Editor) Content() Content  { return e.content.Clone() }
func (e *Editor) IsPublished() bool { return e.published }

func (e *Editor) SetPublished(published bool) { e.published = published }

func (e *Editor) Dispatch(action Action) error {
	next, err := Apply(e.content, action)
	if err != nil {
		return err
	}
	e.content = next
	return nil
}

func (e *Editor) UpdateSectionContent(sectionID string, patch Patch) error {
	return e.Dispatch(UpdateSectionContent{SectionID: sectionID, Patch: patch})
}

func (e *Editor) UpdateTheme(patch Patch) error {
	return e.Dispatch(UpdateTheme{Patch: patch})
}

// Save sends the whole document and the published flag to the saver. The
// in-memory state is left as is whatever the outcome, so a failed save can
// simply be retried.
func (e *Editor) Save(ctx context.Context) (SaveResult, error) {
	result := SaveResult{Warnings: Validate(e.content)}
	if err := e.saver.SaveLandingPage(ctx, e.pageID, e.content.Clone(), e.published); err != nil {
		e.notifier.Notify(Notice{Level: NoticeError, Message: msgSaveFailed})
		return result, fmt.Errorf("save landing page %s: %w", e.pageID, err)
	}
	e.notifier.Notify(Notice{Level: NoticeSuccess, Message: msgSaved})
	return result, nil
}

// Preview renders the unsaved document in preview mode.
func (e *Editor) Preview(w io.Writer, rc RenderContext) error {
	return e.renderer.Render(w, e.content, rc, RenderOptions{Preview: true})
}
