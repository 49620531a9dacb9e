package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/shiftlog-hr/timeclock-backend-go/internal/config"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/shiftlog-hr/timeclock-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	stampHandler StampHandler,
	attendanceHandler AttendanceHandler,
	workerHandler WorkerHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.App.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Post("/stamps", stampHandler.Stamp)
			r.Route("/shift", func(r chi.Router) {
				r.Post("/begin", stampHandler.BeginShift)
				r.Post("/end", stampHandler.EndShift)
			})
			r.Route("/break", func(r chi.Router) {
				r.Post("/begin", stampHandler.BeginBreak)
				r.Post("/end", stampHandler.EndBreak)
			})
			r.Get("/status", stampHandler.Status)

			r.Get("/attendances", attendanceHandler.Daily)

			r.Route("/workers", func(r chi.Router) {
				r.Get("/", workerHandler.List)
				r.Route("/{workerID}", func(r chi.Router) {
					r.Get("/", workerHandler.GetByID)
					r.Get("/attendances", attendanceHandler.Monthly)
				})
			})
		})
	})
	return r
}
