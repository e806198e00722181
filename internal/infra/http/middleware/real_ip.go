package middleware

import (
	"net/http"

	"github.com/xavierca1/qrleads/internal/util"
)

// RealIP rewrites RemoteAddr to the client address when the request came
// through one of the trusted proxies. With no trusted proxies the
// forwarding headers are ignored.
func RealIP(proxies util.TrustedProxies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(proxies) > 0 {
				r.RemoteAddr = proxies.Resolve(r)
			}
			next.ServeHTTP(w, r)
		})
	}
}
