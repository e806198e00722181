package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html"
	"html/template"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/xavierca1/qrleads/internal/infra/queue"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var leadTemplate = template.Must(template.ParseFS(templateFS, "templates/lead_notification.html"))

// Lead values come straight from public forms; strip any markup before
// they reach the template.
var stripAll = bluemonday.StrictPolicy()

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		Dialer:   gomail.NewDialer(host, port, user, password),
	}
}

func (s *EmailSender) SendLeadNotification(ctx context.Context, p queue.LeadNotificationPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.To == "" {
		return fmt.Errorf("lead %s: no notification recipient", p.LeadID)
	}

	data := BuildLeadEmailData(p)
	body, err := RenderLeadEmail(data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", p.To)
	if data.Email != "" && !strings.ContainsAny(data.Email, "\r\n") {
		m.SetHeader("Reply-To", data.Email)
	}
	m.SetHeader("Subject", LeadSubject(data))
	m.SetBody("text/html", body)

	if err := s.Dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

func BuildLeadEmailData(p queue.LeadNotificationPayload) LeadEmailData {
	data := LeadEmailData{
		ConsultantName:  clean(p.ConsultantName),
		CampaignName:    clean(p.CampaignName),
		LandingPageName: clean(p.LandingPageName),
		VehicleName:     clean(p.VehicleName),
		Source:          clean(p.Source),
		Email:           clean(p.Email),
		Name:            clean(p.Name),
		Phone:           clean(p.Phone),
		Address:         clean(p.Address),
		Message:         clean(p.Message),
	}
	keys := make([]string, 0, len(p.Metadata))
	for k := range p.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		data.Extra = append(data.Extra, LeadEmailField{Label: clean(k), Value: clean(p.Metadata[k])})
	}
	return data
}

func RenderLeadEmail(data LeadEmailData) (string, error) {
	var body bytes.Buffer
	if err := leadTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}

func LeadSubject(data LeadEmailData) string {
	who := data.Name
	if who == "" {
		who = data.Email
	}
	subject := "New lead: " + who
	if data.VehicleName != "" {
		subject += " (" + data.VehicleName + ")"
	}
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(subject)
}

// clean drops tags; the template escapes the rest, so entities produced by
// the sanitizer are decoded first.
func clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(stripAll.Sanitize(s)))
}
