package mail

type LeadEmailData struct {
	ConsultantName  string
	CampaignName    string
	LandingPageName string
	VehicleName     string
	Source          string
	Email           string
	Name            string
	Phone           string
	Address         string
	Message         string
	Extra           []LeadEmailField
}

// LeadEmailField is one metadata entry shown below the standard fields.
type LeadEmailField struct {
	Label string
	Value string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	Dialer   Dialer
}
