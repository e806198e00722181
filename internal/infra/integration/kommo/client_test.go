package kommo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKommo struct {
	mu       sync.Mutex
	contacts int
	bodies   map[string]string
}

func (f *fakeKommo) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	record := func(r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.bodies[r.URL.Path] = string(raw)
		f.mu.Unlock()
	}
	mux.HandleFunc("GET /contacts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		if f.contacts == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(`{"_embedded":{"contacts":[{"id":7}]}}`))
	})
	mux.HandleFunc("POST /contacts", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		_, _ = w.Write([]byte(`{"_embedded":{"contacts":[{"id":9}]}}`))
	})
	mux.HandleFunc("POST /leads", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		_, _ = w.Write([]byte(`{"_embedded":{"leads":[{"id":101}]}}`))
	})
	mux.HandleFunc("POST /leads/notes", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		_, _ = w.Write([]byte(`{}`))
	})
	return mux
}

func TestCreateLeadNewContact(t *testing.T) {
	fake := &fakeKommo{bodies: map[string]string{}}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "tok", 55)
	id, err := c.CreateLead(context.Background(), LeadInput{
		Name:    "Ann Lee",
		Email:   "ann@example.com",
		Phone:   "555-0199",
		Source:  "landing_page",
		Title:   "Spring campaign: Ann Lee",
		Details: map[string]string{"windowCount": "5-10", "empty": ""},
	})
	require.NoError(t, err)
	assert.Equal(t, 101, id)

	var contacts []contactRequest
	require.NoError(t, json.Unmarshal([]byte(fake.bodies["/contacts"]), &contacts))
	require.Len(t, contacts, 1)
	assert.Equal(t, "Ann Lee", contacts[0].Name)
	assert.Len(t, contacts[0].CustomFields, 2)

	var leads []leadRequest
	require.NoError(t, json.Unmarshal([]byte(fake.bodies["/leads"]), &leads))
	require.Len(t, leads, 1)
	assert.Equal(t, 55, leads[0].StatusID)
	assert.Equal(t, []idRef{{ID: 9}}, leads[0].Embedded.Contacts)
	assert.Equal(t, []tag{{Name: "landing_page"}}, leads[0].Embedded.Tags)

	assert.Contains(t, fake.bodies["/leads/notes"], "windowCount: 5-10")
	assert.NotContains(t, fake.bodies["/leads/notes"], "empty")
}

func TestCreateLeadExistingContact(t *testing.T) {
	fake := &fakeKommo{contacts: 1, bodies: map[string]string{}}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	_, err := NewClient(srv.URL, "tok", 0).CreateLead(context.Background(), LeadInput{Email: "ann@example.com"})
	require.NoError(t, err)

	_, created := fake.bodies["/contacts"]
	assert.False(t, created)
	var leads []leadRequest
	require.NoError(t, json.Unmarshal([]byte(fake.bodies["/leads"]), &leads))
	assert.Equal(t, "ann@example.com", leads[0].Name)
	assert.Equal(t, []idRef{{ID: 7}}, leads[0].Embedded.Contacts)
	_, noted := fake.bodies["/leads/notes"]
	assert.False(t, noted)
}

func TestCreateLeadErrors(t *testing.T) {
	_, err := NewClient("", "", 0).CreateLead(context.Background(), LeadInput{Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	}))
	defer srv.Close()
	_, err = NewClient(srv.URL, "tok", 0).CreateLead(context.Background(), LeadInput{Email: "a@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
