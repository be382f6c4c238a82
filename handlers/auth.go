package handlers

import (
	"net/http"

	"seteam/middleware"
)

type AuthHandler struct {
	*base
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if !h.config.AuthEnabled() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "login", map[string]interface{}{
		"Error": r.URL.Query().Get("error"),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.config.AuthEnabled() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/login?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	if !middleware.CheckPassword(h.config.AuthPasswordHash, r.PostFormValue("password")) {
		h.logger(r).Warn("failed login attempt")
		http.Redirect(w, r, "/login?error=Invalid+password", http.StatusSeeOther)
		return
	}

	token, err := middleware.GenerateToken(h.config.SessionExpiration)
	if err != nil {
		h.logger(r).WithField("error", err.Error()).Error("failed to generate session token")
		http.Redirect(w, r, "/login?error=Failed+to+generate+token", http.StatusSeeOther)
		return
	}
	middleware.SetSessionCookie(w, token, h.config.SessionExpiration)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
