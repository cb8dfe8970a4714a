package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Pinger reports database reachability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	Env            string
	Version        string
	AllowedOrigins []string
	// StaticDir, when set, is served at / for the frontend build.
	StaticDir string
}

type Handlers struct {
	Auth           AuthHandler
	User           UserHandler
	Absence        AbsenceHandler
	Sickness       SicknessHandler
	Dashboard      DashboardHandler
	Calendar       CalendarHandler
	GoogleCalendar GoogleCalendarHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, db Pinger, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-management"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			slog.Error("Health check database ping failed", "error", err)
			response.ServiceUnavailable(w, "Database unreachable")
			return
		}
		response.Success(w, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/token", h.Auth.Token)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
				r.Get("/me", h.Auth.Me)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.Auth.Me)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.User.List)
					r.Post("/", h.User.Create)
					r.Get("/{id}", h.User.Get)
					r.Put("/{id}", h.User.Update)
					r.Delete("/{id}", h.User.Delete)
					r.Get("/{id}/absence-summary", h.User.AbsenceSummary)
				})
			})

			r.Route("/absence-requests", func(r chi.Router) {
				r.Get("/", h.Absence.List)
				r.Post("/", h.Absence.Create)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/pending-count", h.Absence.PendingCount)
					r.Post("/admin", h.Absence.AdminCreate)
					r.Put("/admin/{id}", h.Absence.AdminUpdate)
					r.Delete("/admin/{id}", h.Absence.AdminDelete)
					r.Put("/{id}/status", h.Absence.UpdateStatus)
				})

				r.Get("/{id}", h.Absence.Get)
				r.Put("/{id}", h.Absence.Update)
				r.Delete("/{id}", h.Absence.Delete)
			})

			r.Route("/sickness-declarations", func(r chi.Router) {
				r.Get("/", h.Sickness.List)
				r.Post("/", h.Sickness.Create)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/admin/unviewed-count", h.Sickness.UnviewedCount)
					r.Post("/{id}/mark-viewed", h.Sickness.MarkViewed)
					r.Post("/{id}/resend-email", h.Sickness.ResendEmail)
				})

				r.Get("/{id}", h.Sickness.Get)
				r.Get("/{id}/pdf", h.Sickness.Document)
			})

			r.Get("/dashboard", h.Dashboard.Get)

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/user", h.Calendar.User)
				r.Get("/summary", h.Calendar.Summary)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/admin", h.Calendar.Admin)
					r.Get("/summary/users/{id}", h.Calendar.UserSummary)
				})
			})

			r.Route("/google-calendar", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/status", h.GoogleCalendar.Status)
				r.Post("/sync", h.GoogleCalendar.Sync)
			})
		})
	})

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return r
}
