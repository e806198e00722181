package landing

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"regexp"
	"strings"
)

//go:embed views/*.html
var viewFS embed.FS

// RenderContext identifies the page a form submission belongs to.
type RenderContext struct {
	CampaignID    string
	LandingPageID string
	Slug          string
	Title         string
}

// RenderOptions carries per-view state into the page.
type RenderOptions struct {
	// Preview disables the form and wraps the page for the editor pane.
	Preview bool
	Values  map[string]string
	Errors  map[string]string
	Notice  *Notice
	// Action overrides the form target, which defaults to /landing/{slug}.
	Action string
	// FormID is the form section the values, errors and notice belong to.
	// Empty means the first form on the page.
	FormID string
}

const (
	fallbackPrimary   = "#333333"
	fallbackSecondary = "#666666"
	fallbackFont      = "sans-serif"
	HoneypotField     = "_website"
)

var (
	colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{3,20}|rgba?\(\s*[0-9.]+%?\s*(,\s*[0-9.]+%?\s*){2,3}\))$`)
	fontPattern  = regexp.MustCompile(`^[a-zA-Z0-9 ,'"_-]{1,200}$`)
	cssURLEscape = strings.NewReplacer(
		`"`, "%22", `'`, "%27", `(`, "%28", `)`, "%29", `\`, "%5C",
		" ", "%20", "\n", "", "\r", "", "\t", "",
	)
	inputTypes = map[string]bool{
		FieldTypeText:   true,
		FieldTypeEmail:  true,
		FieldTypeTel:    true,
		FieldTypeNumber: true,
		FieldTypeDate:   true,
	}
)

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("page.html").ParseFS(viewFS, "views/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse landing views: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func MustNewRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

type pageView struct {
	Title      string
	FontFamily template.CSS
	Secondary  template.CSS
	Preview    bool
	Sections   []sectionView
}

type sectionView struct {
	ID       string
	Kind     SectionType
	Hero     *heroView
	Form     *formView
	Features *FeaturesContent
	Footer   *footerView
}

type heroView struct {
	Title      string
	Subtitle   string
	Background template.CSS
}

type formView struct {
	SectionID     string
	Notice        *Notice
	Heading       string
	SubmitText    string
	Action        string
	CampaignID    string
	LandingPageID string
	Disabled      bool
	Primary       template.CSS
	Honeypot      string
	Fields        []fieldView
}

type fieldView struct {
	ID        string
	Name      string
	Label     string
	Control   string
	InputType string
	Required  bool
	Value     string
	Error     string
	Options   []optionView
}

type optionView struct {
	ID      string
	Value   string
	Label   string
	Checked bool
}

type footerView struct {
	Text       string
	Background template.CSS
}

// Render writes the HTML page for content. Sections are emitted in document
// order; section types the renderer does not know are skipped. Output is
// buffered, so nothing is written when rendering fails.
func (r *Renderer) Render(w io.Writer, content Content, rc RenderContext, opts RenderOptions) error {
	view := buildPageView(content, rc, opts)
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "page.html", view); err != nil {
		return fmt.Errorf("render landing page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// RenderString is Render into a string.
func (r *Renderer) RenderString(content Content, rc RenderContext, opts RenderOptions) (string, error) {
	var sb strings.Builder
	if err := r.Render(&sb, content, rc, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func buildPageView(content Content, rc RenderContext, opts RenderOptions) pageView {
	primary := safeColor(content.Theme.PrimaryColor, fallbackPrimary)
	secondary := safeColor(content.Theme.SecondaryColor, fallbackSecondary)

	action := opts.Action
	if action == "" {
		action = "/landing/" + url.PathEscape(rc.Slug)
	}

	view := pageView{
		Title:      rc.Title,
		FontFamily: template.CSS(safeFont(content.Theme.FontFamily)),
		Secondary:  template.CSS(secondary),
		Preview:    opts.Preview,
	}
	target := opts.FormID
	if target == "" {
		for _, s := range content.Sections {
			if _, ok := s.Content.(FormContent); ok {
				target = s.ID
				break
			}
		}
	}

	for _, s := range content.Sections {
		sv := sectionView{ID: s.ID, Kind: s.Type}
		switch c := s.Content.(type) {
		case HeroContent:
			sv.Hero = &heroView{
				Title:      c.Title,
				Subtitle:   c.Subtitle,
				Background: heroBackground(c.BackgroundImage, primary, secondary),
			}
			if view.Title == "" {
				view.Title = c.Title
			}
		case FormContent:
			formOpts := opts
			if s.ID != target {
				formOpts.Values, formOpts.Errors, formOpts.Notice = nil, nil, nil
			}
			sv.Form = buildFormView(s.ID, c, rc, formOpts, action, primary)
		case FeaturesContent:
			f := c
			sv.Features = &f
		case FooterContent:
			sv.Footer = &footerView{Text: c.Text, Background: template.CSS(secondary)}
		default:
			continue
		}
		view.Sections = append(view.Sections, sv)
	}
	return view
}

func buildFormView(sectionID string, c FormContent, rc RenderContext, opts RenderOptions, action, primary string) *formView {
	fv := &formView{
		SectionID:     sectionID,
		Notice:        opts.Notice,
		Heading:       c.Heading,
		SubmitText:    c.SubmitText,
		Action:        action,
		CampaignID:    rc.CampaignID,
		LandingPageID: rc.LandingPageID,
		Disabled:      opts.Preview,
		Primary:       template.CSS(primary),
		Honeypot:      HoneypotField,
	}
	if fv.SubmitText == "" {
		fv.SubmitText = "Submit"
	}
	for _, f := range c.Fields {
		field := fieldView{
			ID:        sectionID + "-" + f.Name,
			Name:      f.Name,
			Label:     f.Label,
			Required:  f.Required,
			Value:     opts.Values[f.Name],
			Error:     opts.Errors[f.Name],
			InputType: FieldTypeText,
		}
		switch {
		case f.Type == FieldTypeTextarea:
			field.Control = "textarea"
		case f.Type == FieldTypeRadio && len(f.Options) > 0:
			field.Control = "radio"
		case f.Type == FieldTypeSelect && len(f.Options) > 0:
			field.Control = "select"
		default:
			field.Control = "input"
			if inputTypes[f.Type] {
				field.InputType = f.Type
			}
		}
		for i, o := range f.Options {
			field.Options = append(field.Options, optionView{
				ID:      fmt.Sprintf("%s-%d", field.ID, i),
				Value:   o.Value,
				Label:   o.Label,
				Checked: field.Value != "" && field.Value == o.Value,
			})
		}
		fv.Fields = append(fv.Fields, field)
	}
	return fv
}

func safeColor(v, fallback string) string {
	v = strings.TrimSpace(v)
	if colorPattern.MatchString(v) {
		return v
	}
	return fallback
}

func safeFont(v string) string {
	v = strings.TrimSpace(v)
	if fontPattern.MatchString(v) {
		return v
	}
	return fallbackFont
}

// safeImageURL accepts absolute http(s) URLs and percent-encodes the
// characters that could end a CSS url("...") token.
func safeImageURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	return cssURLEscape.Replace(u.String()), true
}

func heroBackground(image, primary, secondary string) template.CSS {
	if u, ok := safeImageURL(image); ok {
		return template.CSS(fmt.Sprintf(
			`linear-gradient(rgba(0,0,0,0.5), rgba(0,0,0,0.5)), url("%s") center / cover no-repeat`, u))
	}
	return template.CSS(fmt.Sprintf("linear-gradient(135deg, %s 0%%, %s 100%%)", primary, secondary))
}
