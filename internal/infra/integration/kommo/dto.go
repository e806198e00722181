package kommo

// LeadInput is one captured lead as the CRM should see it.
type LeadInput struct {
	Name    string
	Email   string
	Phone   string
	Source  string
	Title   string
	Details map[string]string
}

type idRef struct {
	ID int `json:"id"`
}

type embeddedIDs struct {
	Embedded struct {
		Leads    []idRef `json:"leads"`
		Contacts []idRef `json:"contacts"`
	} `json:"_embedded"`
}

type customField struct {
	FieldCode string       `json:"field_code"`
	Values    []fieldValue `json:"values"`
}

type fieldValue struct {
	Value    string `json:"value"`
	EnumCode string `json:"enum_code,omitempty"`
}

type tag struct {
	Name string `json:"name"`
}

type contactRequest struct {
	Name         string        `json:"name"`
	CustomFields []customField `json:"custom_fields_values,omitempty"`
}

type leadRequest struct {
	Name     string `json:"name"`
	StatusID int    `json:"status_id,omitempty"`
	Embedded struct {
		Tags     []tag   `json:"tags,omitempty"`
		Contacts []idRef `json:"contacts"`
	} `json:"_embedded"`
}

type noteRequest struct {
	EntityID int    `json:"entity_id"`
	NoteType string `json:"note_type"`
	Params   struct {
		Text string `json:"text"`
	} `json:"params"`
}
