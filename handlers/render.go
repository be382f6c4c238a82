package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"seteam/config"
	"seteam/logger"
	"seteam/middleware"
	"seteam/models"
	"seteam/repository"
)

// base carries what every handler needs.
type base struct {
	config    *config.Config
	templates map[string]*template.Template
	store     *repository.Store
	log       logger.Logger
	now       repository.Clock
}

func (b *base) today() time.Time {
	return models.DateOf(b.now())
}

// render executes page inside base.html. Common keys are added to data.
func (b *base) render(w http.ResponseWriter, r *http.Request, status int, page string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = middleware.PopFlash(w, r)
	}
	data["Enums"] = allEnums
	data["Path"] = r.URL.Path
	data["RequestURI"] = r.URL.RequestURI()
	data["AuthEnabled"] = b.config.AuthEnabled()
	data["Today"] = b.today()

	tmpl, ok := b.templates[page]
	if !ok {
		b.logger(r).WithField("page", page).Error("unknown template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		b.logger(r).WithField("page", page).WithField("error", err.Error()).Error("template execution failed")
	}
}

func (b *base) logger(r *http.Request) logger.Logger {
	return middleware.LoggerFromContext(r.Context(), b.log)
}

// fail renders the error page with the status matching err and sends the
// browser back to the originating view after a short pause.
func (b *base) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := http.StatusInternalServerError
	message := "Something went wrong. Please try again."

	var ve models.ValidationError
	var nf *models.ErrNotFound
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
		message = ve.Message
		b.logger(r).WithField("error", err.Error()).Debug("validation failed")
	case errors.As(err, &nf):
		status = http.StatusNotFound
		message = nf.Error()
		b.logger(r).WithField("error", err.Error()).Debug("record not found")
	default:
		b.logger(r).WithFields(map[string]interface{}{
			"error":  err.Error(),
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
	}

	back := b.backTarget(r, fallback)
	b.render(w, r, status, "error", map[string]interface{}{
		"Flash":  &middleware.Flash{Kind: middleware.FlashError, Message: message},
		"Status": status,
		"Back":   back,
	})
}

// done sets a success notice and redirects to next, or fallback when next
// is missing or unsafe.
func (b *base) done(w http.ResponseWriter, r *http.Request, fallback, message string) {
	target := safeNext(r.PostFormValue("next"))
	if target == "" {
		target = fallback
	}
	middleware.SetFlash(w, middleware.FlashSuccess, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// backTarget is where a failed POST returns to: next, the referring page
// on this host, or fallback.
func (b *base) backTarget(r *http.Request, fallback string) string {
	if r.Method == http.MethodPost {
		if next := safeNext(r.PostFormValue("next")); next != "" {
			return next
		}
	}
	if ref := sameHostReferer(r); ref != "" {
		return ref
	}
	return fallback
}

// safeNext accepts only local absolute paths such as "/team?x=1".
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return u.RequestURI()
}

func sameHostReferer(r *http.Request) string {
	ref := r.Referer()
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != r.Host) {
		return ""
	}
	if u.Path == r.URL.Path && r.Method == http.MethodPost {
		return ""
	}
	return safeNext(u.RequestURI())
}

// withQuery builds path?key=value for non-empty pairs.
func withQuery(path string, pairs ...string) string {
	q := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			q.Set(pairs[i], pairs[i+1])
		}
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func parseForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return models.NewValidationError("invalid form data")
	}
	return nil
}
