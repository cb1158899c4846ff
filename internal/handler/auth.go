package handler

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// requireAdmin checks HTTP basic auth against the configured bcrypt hash.
// With no hash configured every request passes.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	if len(h.config.AdminPasswordHash) == 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, password, ok := r.BasicAuth()
		if !ok {
			h.unauthorized(w, r)
			return
		}
		if err := bcrypt.CompareHashAndPassword(h.config.AdminPasswordHash, []byte(password)); err != nil {
			slog.Warn("admin authentication failed", "user", user, "remote", r.RemoteAddr)
			h.unauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) unauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", `Basic realm="commenter"`)
	writeError(w, r, http.StatusUnauthorized, "Unauthorized", nil)
}
