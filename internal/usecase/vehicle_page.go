package usecase

import (
	"fmt"

	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/landing"
)

const VehicleFormID = "vehicle-form"

// VehiclePageContent builds the page a vehicle QR code lands on. It reuses
// the default theme and lead form, personalised with the consultant name.
func VehiclePageContent(v *entity.Vehicle) landing.Content {
	consultant := "Our consultant"
	if v.Consultant != nil && v.Consultant.Name != "" {
		consultant = v.Consultant.Name
	}

	base, _ := landing.GetTemplate(landing.DefaultTemplate)
	var fields []landing.FormField
	if forms := base.FormSections(); len(forms) > 0 {
		fields = forms[0].Fields
	}

	return landing.Content{
		Sections: []landing.Section{
			{
				ID:   "vehicle-hero",
				Type: landing.SectionHero,
				Content: landing.HeroContent{
					Title:    "Transform Your Windows",
					Subtitle: "Beautiful blinds, shades, shutters, and drapes, professionally measured and installed.",
				},
			},
			{
				ID:   "vehicle-services",
				Type: landing.SectionFeatures,
				Content: landing.FeaturesContent{
					Heading: "Our Services",
					Features: []landing.Feature{
						{Icon: "🪟", Title: "Blinds", Description: "Custom blinds in wood, faux wood, and aluminum. Perfect light control for any room."},
						{Icon: "☀️", Title: "Shades", Description: "Roller, cellular, and Roman shades. Elegant style with energy-efficient designs."},
						{Icon: "🚪", Title: "Shutters", Description: "Plantation and traditional shutters. Timeless elegance and lasting durability."},
						{Icon: "🧵", Title: "Drapes", Description: "Custom drapery panels and curtains. Luxurious fabrics tailored to your style."},
					},
				},
			},
			{
				ID:   VehicleFormID,
				Type: landing.SectionForm,
				Content: landing.FormContent{
					Heading:    fmt.Sprintf("Get Your Free Quote. %s will reach out to schedule your consultation.", consultant),
					Fields:     fields,
					SubmitText: "Get My Free Quote",
				},
			},
			{
				ID:      "vehicle-footer",
				Type:    landing.SectionFooter,
				Content: landing.FooterContent{Text: "Free Consultation • Professional Install • Satisfaction Guaranteed"},
			},
		},
		Theme: base.Theme,
	}
}
