package middleware

import (
	"net/http"

	"smart-menu/internal/config"
)

// APIKeyAuth validates the api_key header against the configured
// admin keys. Customer-facing routes are not guarded; only the admin
// subtree mounts this middleware.
func APIKeyAuth(cfg config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("api_key")

			if apiKey == "" {
				http.Error(w, "Unauthorized: API key required", http.StatusUnauthorized)
				return
			}

			valid := false
			for _, validKey := range cfg.APIKeys {
				if apiKey == validKey {
					valid = true
					break
				}
			}

			if !valid {
				http.Error(w, "Forbidden: Invalid API key", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
