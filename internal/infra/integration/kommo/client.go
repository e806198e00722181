package kommo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("kommo not configured")

// Client pushes captured leads into a Kommo CRM pipeline.
type Client struct {
	BaseURL  string
	Token    string
	StatusID int
	HTTP     *http.Client
}

func NewClient(baseURL, token string, statusID int) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Token:    token,
		StatusID: statusID,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.BaseURL != "" && c.Token != ""
}

// CreateLead finds or creates the contact, then opens a lead linked to it
// with the collected answers as a note. Returns the Kommo lead id.
func (c *Client) CreateLead(ctx context.Context, input LeadInput) (int, error) {
	if !c.Configured() {
		return 0, ErrNotConfigured
	}

	contactID, err := c.findOrCreateContact(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("kommo contact: %w", err)
	}

	lead := leadRequest{Name: input.Title, StatusID: c.StatusID}
	if lead.Name == "" {
		lead.Name = input.Email
	}
	if input.Source != "" {
		lead.Embedded.Tags = []tag{{Name: input.Source}}
	}
	lead.Embedded.Contacts = []idRef{{ID: contactID}}

	var created embeddedIDs
	if err := c.do(ctx, http.MethodPost, "/leads", []leadRequest{lead}, &created); err != nil {
		return 0, fmt.Errorf("kommo lead: %w", err)
	}
	if len(created.Embedded.Leads) == 0 {
		return 0, errors.New("kommo lead: empty response")
	}
	leadID := created.Embedded.Leads[0].ID

	// a nota é best effort; o lead já existe
	if text := noteText(input.Details); text != "" {
		note := noteRequest{EntityID: leadID, NoteType: "common"}
		note.Params.Text = text
		if err := c.do(ctx, http.MethodPost, "/leads/notes", []noteRequest{note}, nil); err != nil {
			slog.Warn("kommo note not created", "kommo_lead_id", leadID, "error", err)
		}
	}

	slog.Info("kommo lead created", "kommo_lead_id", leadID, "contact_id", contactID)
	return leadID, nil
}

func (c *Client) findOrCreateContact(ctx context.Context, input LeadInput) (int, error) {
	var found embeddedIDs
	err := c.do(ctx, http.MethodGet, "/contacts?query="+url.QueryEscape(input.Email), nil, &found)
	if err != nil {
		return 0, err
	}
	if len(found.Embedded.Contacts) > 0 {
		return found.Embedded.Contacts[0].ID, nil
	}

	contact := contactRequest{Name: input.Name}
	if contact.Name == "" {
		contact.Name = input.Email
	}
	contact.CustomFields = append(contact.CustomFields, customField{
		FieldCode: "EMAIL",
		Values:    []fieldValue{{Value: input.Email, EnumCode: "WORK"}},
	})
	if input.Phone != "" {
		contact.CustomFields = append(contact.CustomFields, customField{
			FieldCode: "PHONE",
			Values:    []fieldValue{{Value: input.Phone, EnumCode: "WORK"}},
		})
	}

	var created embeddedIDs
	if err := c.do(ctx, http.MethodPost, "/contacts", []contactRequest{contact}, &created); err != nil {
		return 0, err
	}
	if len(created.Embedded.Contacts) == 0 {
		return 0, errors.New("empty response")
	}
	return created.Embedded.Contacts[0].ID, nil
}

// do sends one API call. A 204 (Kommo's "nothing found") leaves out untouched.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode >= 300:
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(raw)))
	case out == nil:
		return nil
	}
	return json.Unmarshal(raw, out)
}

func noteText(details map[string]string) string {
	keys := make([]string, 0, len(details))
	for k, v := range details {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+": "+details[k])
	}
	return strings.Join(lines, "\n")
}
