package http

import (
	"log/slog"
	"os"

	"github.com/consite-erp/consite-backend-go/internal/domain/routing"
	"github.com/consite-erp/consite-backend-go/internal/handler/http/middleware"
	"github.com/consite-erp/consite-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	invitationHandler InvitationHandler,
	sessionHandler SessionHandler,
	frontendURL string,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "consite-tender"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/invitations", func(r chi.Router) {

				// Admin assignment screens
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRoute(routing.RouteAdminAssignment))
					r.Post("/", invitationHandler.Issue)
					r.Post("/{token}/complete", invitationHandler.Complete)
				})

				// Engineer submission screens
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRoute(routing.RouteEngineerSubmission))
					r.Get("/my", invitationHandler.ListMine)
					r.Post("/{token}/accept", invitationHandler.Accept)
				})

				// Binding inside the service decides who may see the
				// invitation, so no role gate here.
				r.Get("/{token}", invitationHandler.GetByToken)
			})

			r.Route("/session", func(r chi.Router) {
				r.Get("/landing", sessionHandler.Landing)
			})
		})
	})
	return r
}
