// Package landing holds the landing page content model: the typed section
// document, the template catalog, the editor reducer and the HTML renderer.
package landing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

type SectionType string

const (
	SectionHero     SectionType = "hero"
	SectionForm     SectionType = "form"
	SectionFeatures SectionType = "features"
	SectionFooter   SectionType = "footer"
)

// Form field types understood by the renderer. Anything else is rendered as
// a plain typed input.
const (
	FieldTypeText     = "text"
	FieldTypeEmail    = "email"
	FieldTypeTel      = "tel"
	FieldTypeTextarea = "textarea"
	FieldTypeRadio    = "radio"
	FieldTypeSelect   = "select"
	FieldTypeNumber   = "number"
	FieldTypeDate     = "date"
)

var ErrInvalidContent = errors.New("invalid landing page content")

// Content is one landing page document. Section order is rendering order.
type Content struct {
	Sections []Section `json:"sections"`
	Theme    Theme     `json:"theme"`
}

type Theme struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	FontFamily     string `json:"fontFamily"`
}

// Section is a tagged union keyed by Type. Content holds one of HeroContent,
// FormContent, FeaturesContent, FooterContent or UnknownContent.
type Section struct {
	ID      string
	Type    SectionType
	Content SectionContent
}

// SectionContent is implemented by every section variant.
type SectionContent interface {
	clone() SectionContent
}

type HeroContent struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
}

type FormContent struct {
	Heading    string      `json:"heading"`
	SubmitText string      `json:"submitText"`
	Fields     []FormField `json:"fields"`
}

type FormField struct {
	Name     string        `json:"name"`
	Label    string        `json:"label"`
	Type     string        `json:"type"`
	Required bool          `json:"required"`
	Options  []FieldOption `json:"options,omitempty"`
}

type FieldOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type FeaturesContent struct {
	Heading  string    `json:"heading"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type FooterContent struct {
	Text string `json:"text"`
}

// UnknownContent keeps the raw content of a section type this build does not
// know about, so documents written by newer editors survive a save.
type UnknownContent map[string]json.RawMessage

func (c HeroContent) clone() SectionContent   { return c }
func (c FooterContent) clone() SectionContent { return c }

func (c FeaturesContent) clone() SectionContent {
	c.Features = cloneSlice(c.Features)
	return c
}

func (c FormContent) clone() SectionContent {
	if c.Fields == nil {
		return c
	}
	fields := make([]FormField, len(c.Fields))
	for i, f := range c.Fields {
		f.Options = cloneSlice(f.Options)
		fields[i] = f
	}
	c.Fields = fields
	return c
}

func (c UnknownContent) clone() SectionContent {
	if c == nil {
		return c
	}
	out := make(UnknownContent, len(c))
	for k, v := range c {
		out[k] = cloneSlice(v)
	}
	return out
}

func cloneSlice[S ~[]E, E any](s S) S {
	if s == nil {
		return nil
	}
	out := make(S, len(s))
	copy(out, s)
	return out
}

// Clone returns a deep copy that shares no mutable state with c.
func (c Content) Clone() Content {
	out := Content{Theme: c.Theme}
	if c.Sections != nil {
		out.Sections = make([]Section, len(c.Sections))
		for i, s := range c.Sections {
			if s.Content != nil {
				s.Content = s.Content.clone()
			}
			out.Sections[i] = s
		}
	}
	return out
}

// FindSection returns the index of the section with the given id, or -1.
func (c Content) FindSection(id string) int {
	for i, s := range c.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// FormSections returns the form variants in document order.
func (c Content) FormSections() []FormContent {
	var forms []FormContent
	for _, s := range c.Sections {
		if f, ok := s.Content.(FormContent); ok {
			forms = append(forms, f)
		}
	}
	return forms
}

type sectionJSON struct {
	ID      string          `json:"id"`
	Type    SectionType     `json:"type"`
	Content json.RawMessage `json:"content"`
}

func (s Section) MarshalJSON() ([]byte, error) {
	raw := json.RawMessage("{}")
	if s.Content != nil {
		b, err := json.Marshal(s.Content)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", s.ID, err)
		}
		raw = b
	}
	return json.Marshal(sectionJSON{ID: s.ID, Type: s.Type, Content: raw})
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var aux sectionJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	content, err := decodeContent(aux.Type, aux.Content)
	if err != nil {
		return fmt.Errorf("section %q: %w", aux.ID, err)
	}
	s.ID = aux.ID
	s.Type = aux.Type
	s.Content = content
	return nil
}

// decodeContent builds the variant for t. Missing or null content decodes to
// the zero value of the variant.
func decodeContent(t SectionType, raw json.RawMessage) (SectionContent, error) {
	return decodeSection(t, raw, false)
}

// decodeSection is decodeContent with an optional rejection of keys the
// known variants do not define. Unknown section types accept any key.
func decodeSection(t SectionType, raw json.RawMessage, strict bool) (SectionContent, error) {
	empty := len(raw) == 0 || string(raw) == "null"
	switch t {
	case SectionHero:
		var c HeroContent
		if err := decodeInto(raw, empty, strict, &c); err != nil {
			return nil, err
		}
		return c, nil
	case SectionForm:
		var c FormContent
		if err := decodeInto(raw, empty, strict, &c); err != nil {
			return nil, err
		}
		return c, nil
	case SectionFeatures:
		var c FeaturesContent
		if err := decodeInto(raw, empty, strict, &c); err != nil {
			return nil, err
		}
		return c, nil
	case SectionFooter:
		var c FooterContent
		if err := decodeInto(raw, empty, strict, &c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		c := UnknownContent{}
		if empty {
			return c, nil
		}
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
		}
		return c, nil
	}
}

func decodeInto[T any](raw json.RawMessage, empty, strict bool, dst *T) error {
	if empty {
		return nil
	}
	if err := decodeJSON(raw, strict, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	return nil
}

func decodeJSON(raw []byte, strict bool, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if strict {
		dec.DisallowUnknownFields()
	}
	return dec.Decode(dst)
}

// ParseContent decodes a stored content document.
func ParseContent(data []byte) (Content, error) {
	var c Content
	if err := json.Unmarshal(data, &c); err != nil {
		return Content{}, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	return c, nil
}
