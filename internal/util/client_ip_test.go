package util

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrustedProxies(t *testing.T) {
	p, err := ParseTrustedProxies([]string{"10.0.0.0/8", " 192.0.2.10 ", "", "::1"})
	require.NoError(t, err)
	assert.Len(t, p, 3)
	assert.True(t, p.Contains("10.1.2.3"))
	assert.True(t, p.Contains("192.0.2.10"))
	assert.False(t, p.Contains("192.0.2.11"))
	assert.True(t, p.Contains("::1"))

	_, err = ParseTrustedProxies([]string{"not-an-ip"})
	assert.Error(t, err)
	_, err = ParseTrustedProxies([]string{"10.0.0.0/99"})
	assert.Error(t, err)
}

func TestResolveIgnoresHeadersFromUntrustedPeers(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "198.51.100.4:5555"
	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	r.Header.Set("X-Real-IP", "192.0.2.7")

	assert.Equal(t, "198.51.100.4", TrustedProxies(nil).Resolve(r))

	p, err := ParseTrustedProxies([]string{"10.0.0.0/8"})
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.4", p.Resolve(r))
}

func TestResolveBehindTrustedProxy(t *testing.T) {
	p, err := ParseTrustedProxies([]string{"10.0.0.0/8"})
	require.NoError(t, err)

	tests := []struct {
		name string
		xff  string
		xri  string
		want string
	}{
		{name: "single hop", xff: "203.0.113.9", want: "203.0.113.9"},
		{name: "spoofed left entry", xff: "1.2.3.4, 203.0.113.9", want: "203.0.113.9"},
		{name: "trusted hops skipped", xff: "203.0.113.9, 10.0.0.7", want: "203.0.113.9"},
		{name: "all trusted", xff: "10.0.0.8, 10.0.0.7", want: "10.0.0.8"},
		{name: "garbage hop", xff: "203.0.113.9, junk", want: "10.0.0.1"},
		{name: "real ip header", xri: "192.0.2.7", want: "192.0.2.7"},
		{name: "no headers", want: "10.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = "10.0.0.1:5555"
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			assert.Equal(t, tt.want, p.Resolve(r))
		})
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "10.0.0.1", ClientIP(r))

	r.RemoteAddr = "10.0.0.1"
	assert.Equal(t, "10.0.0.1", ClientIP(r))
}
