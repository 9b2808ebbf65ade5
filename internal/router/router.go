package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/auth"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/handler"
	mw "github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/middleware"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	Vessels     *handler.VesselHandler
	Manuals     *handler.ManualHandler
	Templates   *handler.TemplateHandler
	Submissions *handler.SubmissionHandler
	Uploads     *handler.UploadHandler
	Dashboard   *handler.DashboardHandler
}

type Options struct {
	JWTSecret   string
	Users       auth.UserLookup
	UploadDir   string
	CORSOrigins []string
}

func New(opts Options, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(opts.CORSOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Uploaded files
	if opts.UploadDir != "" {
		r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(opts.UploadDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/login", h.Auth.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(opts.JWTSecret, opts.Users))

			// Auth
			r.Get("/auth/me", h.Auth.Me)

			// Dashboard
			r.Get("/dashboard", h.Dashboard.Dashboard)

			// Ships and users
			r.Get("/ships", h.Vessels.List)
			r.Get("/ships/{shipId}", h.Vessels.Get)
			r.Get("/users", h.Auth.ListUsers)
			r.With(auth.RequireRole(models.RoleStaff)).Post("/ships", h.Vessels.Create)
			r.With(auth.RequireRole(models.RoleStaff)).Post("/users", h.Auth.CreateUser)

			// Documents
			r.Route("/documents", func(r chi.Router) {
				r.Get("/manuals", h.Manuals.List)
				r.Post("/manuals", h.Manuals.Create)

				r.Get("/templates", h.Templates.List)
				r.Post("/templates", h.Templates.Create)
				r.Get("/templates/{templateId}", h.Templates.Get)
				r.Put("/templates/{templateId}", h.Templates.Update)

				r.Post("/trigger-work", h.Submissions.TriggerWork)
				r.Get("/submissions", h.Submissions.List)
				r.Get("/submissions/export", h.Submissions.Export)
				r.Get("/submissions/{subId}", h.Submissions.Get)
				r.Put("/submissions/{subId}", h.Submissions.Update)
				r.With(auth.RequireRole(models.RoleMaster)).Post("/submissions/{subId}/approve", h.Submissions.Approve)
				r.With(auth.RequireRole(models.RoleMaster)).Post("/submissions/{subId}/reject", h.Submissions.Reject)
			})

			// Uploads
			r.Post("/uploads", h.Uploads.Upload)
		})
	})

	return r
}
