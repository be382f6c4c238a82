package handlers

import (
	"net/http"

	"seteam/config"
	"seteam/logger"
	"seteam/middleware"
	"seteam/reports"
	"seteam/repository"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter parses the templates and wires every route. now is the clock
// used for "today" in views and for report timestamps.
func NewRouter(cfg *config.Config, store *repository.Store, log logger.Logger, now repository.Clock) (http.Handler, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	middleware.SetJWTSecret(cfg.SecretKey)

	b := &base{
		config:    cfg,
		templates: templates,
		store:     store,
		log:       log,
		now:       now,
	}
	authHandler := &AuthHandler{base: b}
	dashboardHandler := &DashboardHandler{base: b}
	teamHandler := &TeamHandler{base: b}
	meetingHandler := &OneOnOneHandler{base: b}
	opportunityHandler := &OpportunityHandler{base: b}
	caseHandler := &SupportCaseHandler{base: b}
	followUpHandler := &FollowUpHandler{base: b}
	noteHandler := &NoteHandler{base: b}
	skillHandler := &SkillMatrixHandler{base: b}
	reportHandler := &ReportHandler{base: b, builder: reports.NewBuilder(store, now)}

	router := chi.NewRouter()
	router.Use(middleware.RequestLogger(log))
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)

	// Public routes
	router.Get("/login", authHandler.LoginPage)
	router.Post("/login", authHandler.Login)
	router.Get("/logout", authHandler.Logout)

	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.AuthEnabled()))

		r.Get("/", dashboardHandler.Dashboard)

		r.Get("/team", teamHandler.List)
		r.Post("/team/add", teamHandler.Create)
		r.Post("/team/edit/{id:[0-9]+}", teamHandler.Update)
		r.Post("/team/delete/{id:[0-9]+}", teamHandler.Delete)

		r.Get("/one-on-ones", meetingHandler.List)
		r.Post("/one-on-ones/add", meetingHandler.Create)
		r.Post("/one-on-ones/edit/{id:[0-9]+}", meetingHandler.Update)
		r.Post("/one-on-ones/delete/{id:[0-9]+}", meetingHandler.Delete)

		r.Get("/opportunities", opportunityHandler.List)
		r.Post("/opportunities/add", opportunityHandler.Create)
		r.Post("/opportunities/edit/{id:[0-9]+}", opportunityHandler.Update)
		r.Post("/opportunities/comment/{id:[0-9]+}", opportunityHandler.Comment)
		r.Post("/opportunities/delete/{id:[0-9]+}", opportunityHandler.Delete)

		r.Get("/support-cases", caseHandler.List)
		r.Post("/support-cases/add", caseHandler.Create)
		r.Post("/support-cases/edit/{id:[0-9]+}", caseHandler.Update)
		r.Post("/support-cases/comment/{id:[0-9]+}", caseHandler.Comment)
		r.Post("/support-cases/delete/{id:[0-9]+}", caseHandler.Delete)

		r.Get("/follow-ups", followUpHandler.List)
		r.Post("/follow-ups/add", followUpHandler.Create)
		r.Post("/follow-ups/edit/{id:[0-9]+}", followUpHandler.Update)
		r.Post("/follow-ups/complete/{id:[0-9]+}", followUpHandler.Complete)
		r.Post("/follow-ups/delete/{id:[0-9]+}", followUpHandler.Delete)

		r.Get("/notes", noteHandler.List)
		r.Post("/notes/add", noteHandler.Create)
		r.Post("/notes/edit/{id:[0-9]+}", noteHandler.Update)
		r.Post("/notes/delete/{id:[0-9]+}", noteHandler.Delete)

		r.Get("/skill-matrix", skillHandler.Matrix)
		r.Post("/skill-matrix/update", skillHandler.Update)

		r.Get("/reports", reportHandler.Page)
		r.Post("/reports/generate", reportHandler.Generate)
	})

	return router, nil
}
