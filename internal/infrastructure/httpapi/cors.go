package httpapi

import (
	"net/http"
	"strings"
)

// originMatcher accepts exact origins and wildcard patterns of the form
// "https://*.example.dev", where the star covers exactly one DNS label.
type originMatcher struct {
	exact    map[string]bool
	prefixes []string
	suffixes []string
}

func newOriginMatcher(origins []string) *originMatcher {
	m := &originMatcher{exact: make(map[string]bool, len(origins))}
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			continue
		}
		if i := strings.Index(o, "*."); i >= 0 {
			m.prefixes = append(m.prefixes, o[:i])
			m.suffixes = append(m.suffixes, o[i+1:])
			continue
		}
		m.exact[o] = true
	}
	return m
}

func (m *originMatcher) allowed(origin string) bool {
	if origin == "" {
		return false
	}
	if m.exact[origin] {
		return true
	}
	for i, prefix := range m.prefixes {
		if len(origin) <= len(prefix)+len(m.suffixes[i]) ||
			!strings.HasPrefix(origin, prefix) || !strings.HasSuffix(origin, m.suffixes[i]) {
			continue
		}
		label := origin[len(prefix) : len(origin)-len(m.suffixes[i])]
		if label != "" && !strings.ContainsAny(label, "./:") {
			return true
		}
	}
	return false
}

// CORSMiddleware sets CORS headers for allowed origins. Requests from other
// origins are served without CORS headers, so browsers block the response.
func CORSMiddleware(allowedOrigins ...string) func(http.Handler) http.Handler {
	m := newOriginMatcher(allowedOrigins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if m.allowed(origin) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
