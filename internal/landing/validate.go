package landing

import "fmt"

const (
	WarnNoFormSection        = "no_form_section"
	WarnMultipleFormSections = "multiple_form_sections"
	WarnDuplicateSectionID   = "duplicate_section_id"
	WarnDuplicateFieldName   = "duplicate_field_name"
	WarnFormMissingEmail     = "form_missing_email"
)

// Warning describes a structural problem that does not block saving.
type Warning struct {
	Code      string `json:"code"`
	SectionID string `json:"sectionId,omitempty"`
	Message   string `json:"message"`
}

// Validate inspects a document for problems the renderer tolerates but an
// editor should be told about.
func Validate(c Content) []Warning {
	warnings := []Warning{}

	forms := 0
	seen := make(map[string]bool, len(c.Sections))
	for _, s := range c.Sections {
		if seen[s.ID] {
			warnings = append(warnings, Warning{
				Code:      WarnDuplicateSectionID,
				SectionID: s.ID,
				Message:   fmt.Sprintf("section id %q is used more than once", s.ID),
			})
		}
		seen[s.ID] = true

		form, ok := s.Content.(FormContent)
		if !ok {
			continue
		}
		forms++
		names := make(map[string]bool, len(form.Fields))
		for _, f := range form.Fields {
			if names[f.Name] {
				warnings = append(warnings, Warning{
					Code:      WarnDuplicateFieldName,
					SectionID: s.ID,
					Message:   fmt.Sprintf("field name %q is used more than once", f.Name),
				})
			}
			names[f.Name] = true
		}
		// sem email o lead não chega ao consultor nem ao CRM
		if !names["email"] {
			warnings = append(warnings, Warning{
				Code:      WarnFormMissingEmail,
				SectionID: s.ID,
				Message:   `form has no "email" field, leads will have no contact address`,
			})
		}
	}

	switch {
	case forms == 0:
		warnings = append(warnings, Warning{
			Code:    WarnNoFormSection,
			Message: "page has no form section and cannot capture leads",
		})
	case forms > 1:
		warnings = append(warnings, Warning{
			Code:    WarnMultipleFormSections,
			Message: fmt.Sprintf("page has %d form sections, each submits on its own", forms),
		})
	}
	return warnings
}
