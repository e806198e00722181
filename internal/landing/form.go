package landing

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"sync"
)

const SourceLandingPage = "landing_page"

const (
	MsgLeadSent   = "Thank you! We'll be in touch soon."
	MsgLeadFailed = "Something went wrong. Please try again."
)

var (
	ErrSubmissionInFlight = errors.New("form submission already in progress")
	ErrFormCompleted      = errors.New("form already submitted")
)

type FormStatus int

const (
	FormEmpty FormStatus = iota
	FormFilling
	FormSubmitting
	FormSucceeded
)

func (s FormStatus) String() string {
	switch s {
	case FormEmpty:
		return "empty"
	case FormFilling:
		return "filling"
	case FormSubmitting:
		return "submitting"
	case FormSucceeded:
		return "succeeded"
	}
	return "unknown"
}

// FieldError is a client-side validation failure for one form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// ByField indexes the first message per field name.
func (v ValidationErrors) ByField() map[string]string {
	out := make(map[string]string, len(v))
	for _, e := range v {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

// LeadPayload is what a landing page form hands to the lead sink.
type LeadPayload struct {
	CampaignID    string
	LandingPageID string
	Source        string
	Fields        map[string]string
}

// Flatten returns the payload as the single flat object posted to the leads
// API. Fixed keys win over form fields with the same name.
func (p LeadPayload) Flatten() map[string]string {
	out := make(map[string]string, len(p.Fields)+3)
	for k, v := range p.Fields {
		out[k] = v
	}
	out["campaignId"] = p.CampaignID
	out["landingPageId"] = p.LandingPageID
	out["source"] = p.Source
	return out
}

type LeadSink interface {
	CreateLead(ctx context.Context, payload LeadPayload) error
}

// Collect validates values against the form definition and returns the
// fields to submit. Values are trimmed. Optional fields left blank are left
// out. Values for names the form does not define are ignored.
func Collect(form FormContent, values map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(form.Fields))
	var errs ValidationErrors
	for _, f := range form.Fields {
		v := strings.TrimSpace(values[f.Name])
		if v == "" {
			if f.Required {
				errs = append(errs, FieldError{Field: f.Name, Message: fmt.Sprintf("%s is required", labelOf(f))})
			}
			continue
		}
		if msg := checkValue(f, v); msg != "" {
			errs = append(errs, FieldError{Field: f.Name, Message: msg})
			continue
		}
		out[f.Name] = v
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func labelOf(f FormField) string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

func checkValue(f FormField, v string) string {
	switch f.Type {
	case FieldTypeEmail:
		addr, err := mail.ParseAddress(v)
		if err != nil || addr.Address != v {
			return fmt.Sprintf("%s must be a valid email address", labelOf(f))
		}
	case FieldTypeNumber:
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return fmt.Sprintf("%s must be a number", labelOf(f))
		}
	case FieldTypeRadio, FieldTypeSelect:
		if len(f.Options) == 0 {
			return ""
		}
		for _, o := range f.Options {
			if o.Value == v {
				return ""
			}
		}
		return fmt.Sprintf("%s has an invalid choice", labelOf(f))
	}
	return ""
}

// FormSession is the state of one form within one page view.
type FormSession struct {
	form     FormContent
	rc       RenderContext
	sink     LeadSink
	notifier Notifier

	mu     sync.Mutex
	status FormStatus
	values map[string]string
}

func NewFormSession(form FormContent, rc RenderContext, sink LeadSink, notifier Notifier) *FormSession {
	if notifier == nil {
		notifier = discardNotifier{}
	}
	return &FormSession{
		form:     form,
		rc:       rc,
		sink:     sink,
		notifier: notifier,
		values:   map[string]string{},
	}
}

func (s *FormSession) Status() FormStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *FormSession) Values() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Set records a field value. Input is ignored while a submission is in
// flight or after the form succeeded.
func (s *FormSession) Set(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == FormSubmitting || s.status == FormSucceeded {
		return
	}
	s.values[name] = value
	s.status = FormFilling
}

// Fill sets several values at once.
func (s *FormSession) Fill(values map[string]string) {
	for k, v := range values {
		s.Set(k, v)
	}
}

// Submit validates the current values and sends them to the sink. Validation
// failures never reach the sink. On success the values are cleared; on a
// sink failure they are kept so the visitor can retry.
func (s *FormSession) Submit(ctx context.Context) error {
	s.mu.Lock()
	switch s.status {
	case FormSubmitting:
		s.mu.Unlock()
		return ErrSubmissionInFlight
	case FormSucceeded:
		s.mu.Unlock()
		return ErrFormCompleted
	}
	fields, err := Collect(s.form, s.values)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.status = FormSubmitting
	s.mu.Unlock()

	payload := LeadPayload{
		CampaignID:    s.rc.CampaignID,
		LandingPageID: s.rc.LandingPageID,
		Source:        SourceLandingPage,
		Fields:        fields,
	}
	sinkErr := s.sink.CreateLead(ctx, payload)

	s.mu.Lock()
	if sinkErr != nil {
		s.status = FormFilling
		s.mu.Unlock()
		s.notifier.Notify(Notice{Level: NoticeError, Message: MsgLeadFailed})
		return fmt.Errorf("submit lead: %w", sinkErr)
	}
	s.status = FormSucceeded
	s.values = map[string]string{}
	s.mu.Unlock()
	s.notifier.Notify(Notice{Level: NoticeSuccess, Message: MsgLeadSent})
	return nil
}
