package http

import (
	"net/http"
	"strings"
)

// The API only ever answers JSON, so the policy forbids every kind of
// subresource and framing.
const apiContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'"

var securityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "no-referrer"},
	{"Content-Security-Policy", apiContentSecurityPolicy},
	{"Cross-Origin-Resource-Policy", "same-origin"},
}

// SecurityHeadersMiddleware sets the static hardening headers. Responses
// under /api/ are also marked no-store because login replies carry tokens
// and note lists change on every write.
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for _, kv := range securityHeaders {
			h.Set(kv[0], kv[1])
		}
		if strings.HasPrefix(r.URL.Path, "/api/") {
			h.Set("Cache-Control", "no-store")
		}
		next.ServeHTTP(w, r)
	})
}
