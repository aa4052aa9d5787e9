package http

import (
	"net/http"
	"strings"
)

// CORSPolicy lists browser origins allowed to call the API. An empty policy
// allows any origin.
type CORSPolicy struct {
	AllowedOrigins        []string
	AllowedOriginSuffixes []string
}

func (p *CORSPolicy) allows(origin string) bool {
	if p == nil || (len(p.AllowedOrigins) == 0 && len(p.AllowedOriginSuffixes) == 0) {
		return true
	}
	for _, candidate := range p.AllowedOrigins {
		if candidate == "*" || strings.EqualFold(candidate, origin) {
			return true
		}
	}
	if !strings.HasPrefix(origin, "https://") {
		return false
	}
	for _, suffix := range p.AllowedOriginSuffixes {
		if suffix != "" && strings.HasSuffix(origin, suffix) {
			return true
		}
	}
	return false
}

// WithCORS adds CORS headers for allowed origins and answers pre-flight
// (OPTIONS) requests directly.
func WithCORS(policy *CORSPolicy, next http.Handler) http.Handler {
	if next == nil {
		return nil
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowed := origin == "" || policy.allows(origin)
		if origin != "" && allowed {
			// Reflect the Origin to support credentialed requests.
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin, Access-Control-Request-Headers, Access-Control-Request-Method")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
			w.Header().Set("Access-Control-Max-Age", "600")
		}

		if r.Method == http.MethodOptions && origin != "" {
			if !allowed {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
