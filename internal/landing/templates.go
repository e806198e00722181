package landing

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownTemplate = errors.New("unknown landing page template")

const DefaultTemplate = "default"

var templates = map[string]Content{
	"default": {
		Sections: []Section{
			{
				ID:   "hero-1",
				Type: SectionHero,
				Content: HeroContent{
					Title:    "Custom Window Treatments for Your Home",
					Subtitle: "Free In-Home Consultation • We Bring the Showroom to You",
				},
			},
			{
				ID:   "form-1",
				Type: SectionForm,
				Content: FormContent{
					Heading: "Schedule Your Free Consultation",
					Fields: []FormField{
						{Name: "name", Label: "Full Name", Type: FieldTypeText, Required: true},
						{Name: "address", Label: "Address", Type: FieldTypeText, Required: true},
						{Name: "phone", Label: "Phone Number", Type: FieldTypeTel, Required: true},
						{Name: "email", Label: "Email Address", Type: FieldTypeEmail, Required: true},
						{
							Name:     "windowCount",
							Label:    "How many windows do you have?",
							Type:     FieldTypeRadio,
							Required: true,
							Options: []FieldOption{
								{Value: "1-5", Label: "1-5 windows"},
								{Value: "5-10", Label: "5-10 windows"},
								{Value: "10+", Label: "10+ windows"},
							},
						},
					},
					SubmitText: "Request Free Consultation",
				},
			},
			{
				ID:   "features-1",
				Type: SectionFeatures,
				Content: FeaturesContent{
					Heading: "Why Choose Us",
					Features: []Feature{
						{
							Icon:        "🏠",
							Title:       "In-Home Service",
							Description: "We bring our showroom to you for a convenient, pressure-free consultation",
						},
						{
							Icon:        "✂️",
							Title:       "Custom Made",
							Description: "Blinds, shades, shutters, and draperies crafted to your exact specifications",
						},
						{
							Icon:        "🔧",
							Title:       "Full Service",
							Description: "Professional measuring, manufacturing, and installation - all included",
						},
					},
				},
			},
			{
				ID:      "footer-1",
				Type:    SectionFooter,
				Content: FooterContent{Text: "© 2026 Custom Window Treatments. 40 Years of Excellence."},
			},
		},
		Theme: Theme{
			PrimaryColor:   "#8b4513",
			SecondaryColor: "#654321",
			FontFamily:     "Inter, sans-serif",
		},
	},
	"minimal": {
		Sections: []Section{
			{
				ID:   "hero-minimal",
				Type: SectionHero,
				Content: HeroContent{
					Title:    "Start Your Project Today",
					Subtitle: "Simple. Fast. Professional.",
				},
			},
			{
				ID:   "form-minimal",
				Type: SectionForm,
				Content: FormContent{
					Heading: "Contact Us",
					Fields: []FormField{
						{Name: "email", Label: "Email", Type: FieldTypeEmail, Required: true},
						{Name: "name", Label: "Name", Type: FieldTypeText, Required: true},
					},
					SubmitText: "Submit",
				},
			},
		},
		Theme: Theme{
			PrimaryColor:   "#000000",
			SecondaryColor: "#333333",
			FontFamily:     "Arial, sans-serif",
		},
	},
}

// GetTemplate returns a fresh copy of the named seed document.
func GetTemplate(name string) (Content, error) {
	tmpl, ok := templates[name]
	if !ok {
		return Content{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return tmpl.Clone(), nil
}

// TemplateNames lists the catalog in a stable order.
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
